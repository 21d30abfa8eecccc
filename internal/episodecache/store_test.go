package episodecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapadmin/internal/config"
	"snapadmin/internal/snapcast"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleEpisodes() []snapcast.Episode {
	return []snapcast.Episode{
		{
			ID:            1,
			Title:         "First",
			UUID:          "uuid-1",
			MediaDuration: 90 * time.Second,
			PubDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            2,
			Title:         "Second",
			UUID:          "uuid-2",
			MediaDuration: 2 * time.Hour,
			PubDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestReplaceAndEpisodes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, "42", sampleEpisodes()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	episodes, refreshedAt, err := store.Episodes(ctx, "42")
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(episodes))
	}
	if episodes[0].Title != "First" || episodes[1].Title != "Second" {
		t.Fatalf("unexpected order: %+v", episodes)
	}
	if episodes[1].MediaDuration != 2*time.Hour {
		t.Fatalf("duration lost: %s", episodes[1].MediaDuration)
	}
	if time.Since(refreshedAt) > time.Minute {
		t.Fatalf("refresh stamp too old: %s", refreshedAt)
	}
}

func TestEpisodesEmptyFeed(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Episodes(context.Background(), "unseen")
	if !errors.Is(err, ErrCacheEmpty) {
		t.Fatalf("expected ErrCacheEmpty, got %v", err)
	}
}

func TestReplaceOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, "42", sampleEpisodes()); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := store.Replace(ctx, "42", sampleEpisodes()[:1]); err != nil {
		t.Fatalf("Replace again: %v", err)
	}

	episodes, _, err := store.Episodes(ctx, "42")
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected overwrite to 1 episode, got %d", len(episodes))
	}
}

func TestFeedsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, "42", sampleEpisodes()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	_, _, err := store.Episodes(ctx, "43")
	if !errors.Is(err, ErrCacheEmpty) {
		t.Fatalf("expected ErrCacheEmpty for other feed, got %v", err)
	}
}
