package episodecache

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	feed_id    TEXT    NOT NULL,
	episode_id INTEGER NOT NULL,
	uuid       TEXT    NOT NULL,
	payload    TEXT    NOT NULL,
	PRIMARY KEY (feed_id, episode_id)
);

CREATE TABLE IF NOT EXISTS feed_refresh (
	feed_id      TEXT PRIMARY KEY,
	refreshed_at TEXT NOT NULL
);
`

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("episodecache: init schema: %w", err)
	}
	return nil
}
