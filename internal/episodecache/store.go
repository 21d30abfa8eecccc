package episodecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"snapadmin/internal/config"
	"snapadmin/internal/snapcast"
)

// ErrCacheEmpty reports that no episode list has been cached for the feed.
var ErrCacheEmpty = errors.New("episode cache is empty; run `snapadmin list` online first")

// Store manages cached episode lists backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the cache database under the configured
// cache directory, acquiring the single-writer lock.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("episodecache: config is required")
	}
	dir := cfg.Cache.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("episodecache: create cache directory %q: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, "cache.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("episodecache: acquire cache lock: %w", err)
	}
	if !locked {
		return nil, errors.New("episodecache: another snapadmin invocation holds the cache lock")
	}

	dbPath := filepath.Join(dir, "episodes.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("episodecache: open sqlite db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("episodecache: apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the cache database location.
func (s *Store) Path() string {
	return s.path
}

// Replace atomically swaps the cached episode list for the feed and stamps
// the refresh time.
func (s *Store) Replace(ctx context.Context, feedID string, episodes []snapcast.Episode) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("episodecache: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM episodes WHERE feed_id = ?", feedID); err != nil {
		return fmt.Errorf("episodecache: clear feed %q: %w", feedID, err)
	}
	for i := range episodes {
		payload, err := json.Marshal(episodes[i])
		if err != nil {
			return fmt.Errorf("episodecache: encode episode %d: %w", episodes[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO episodes (feed_id, episode_id, uuid, payload) VALUES (?, ?, ?, ?)",
			feedID, episodes[i].ID, episodes[i].UUID, string(payload),
		); err != nil {
			return fmt.Errorf("episodecache: store episode %d: %w", episodes[i].ID, err)
		}
	}

	refreshedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO feed_refresh (feed_id, refreshed_at) VALUES (?, ?) ON CONFLICT(feed_id) DO UPDATE SET refreshed_at = excluded.refreshed_at",
		feedID, refreshedAt,
	); err != nil {
		return fmt.Errorf("episodecache: stamp refresh: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("episodecache: commit: %w", err)
	}
	return nil
}

// Episodes returns the cached list for the feed along with its refresh
// time. An unseen feed yields ErrCacheEmpty.
func (s *Store) Episodes(ctx context.Context, feedID string) ([]snapcast.Episode, time.Time, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx,
		"SELECT refreshed_at FROM feed_refresh WHERE feed_id = ?", feedID,
	).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrCacheEmpty
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("episodecache: read refresh stamp: %w", err)
	}
	refreshedAt, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("episodecache: parse refresh stamp %q: %w", stamp, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM episodes WHERE feed_id = ? ORDER BY episode_id", feedID,
	)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("episodecache: query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []snapcast.Episode
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, time.Time{}, fmt.Errorf("episodecache: scan episode: %w", err)
		}
		var episode snapcast.Episode
		if err := json.Unmarshal([]byte(payload), &episode); err != nil {
			return nil, time.Time{}, fmt.Errorf("episodecache: decode episode: %w", err)
		}
		episodes = append(episodes, episode)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("episodecache: iterate episodes: %w", err)
	}
	return episodes, refreshedAt, nil
}
