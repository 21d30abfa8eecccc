package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"snapadmin/internal/config"
	"snapadmin/internal/snapcast"
	"snapadmin/internal/storage"
)

const (
	testToken = "test-token"
	testFeed  = "feed1"
)

// fakeHost serves the podcast host REST surface for one feed.
type fakeHost struct {
	mu       sync.Mutex
	episodes []snapcast.Episode
	patches  []map[string]any
	deleted  []string
	media    map[string][]byte
}

func (h *fakeHost) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		body, ok := h.media[strings.TrimPrefix(r.URL.Path, "/media/")]
		h.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	})
	mux.HandleFunc("/"+testFeed+"/episodes", func(w http.ResponseWriter, r *http.Request) {
		if !h.authorized(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.mu.Lock()
		defer h.mu.Unlock()
		json.NewEncoder(w).Encode(h.episodes)
	})
	mux.HandleFunc("/"+testFeed+"/episode/", func(w http.ResponseWriter, r *http.Request) {
		ref := strings.TrimPrefix(r.URL.Path, "/"+testFeed+"/episode/")
		switch r.Method {
		case http.MethodGet:
			h.mu.Lock()
			episode := h.resolve(ref)
			h.mu.Unlock()
			if episode == nil {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(episode)
		case http.MethodPatch:
			if !h.authorized(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			var patch map[string]any
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			h.mu.Lock()
			h.patches = append(h.patches, patch)
			h.mu.Unlock()
		case http.MethodDelete:
			if !h.authorized(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			h.mu.Lock()
			h.deleted = append(h.deleted, ref)
			h.mu.Unlock()
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func (h *fakeHost) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+testToken
}

// resolve mirrors the host's reference rules: -1 is the latest episode,
// otherwise the reference matches an episode number or UUID.
func (h *fakeHost) resolve(ref string) *snapcast.Episode {
	if ref == "-1" {
		if len(h.episodes) == 0 {
			return nil
		}
		latest := h.episodes[len(h.episodes)-1]
		return &latest
	}
	for _, ep := range h.episodes {
		if strconv.FormatInt(ep.ID, 10) == ref || ep.UUID == ref {
			found := ep
			return &found
		}
	}
	return nil
}

// fakeObjectStore records purge calls instead of talking to B2.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects []storage.Object
	purged  []string
}

func (s *fakeObjectStore) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []storage.Object
	for _, obj := range s.objects {
		if strings.HasPrefix(obj.Name, prefix) {
			matched = append(matched, obj)
		}
	}
	return matched, nil
}

func (s *fakeObjectStore) DeleteAllVersions(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purged = append(s.purged, name)
	return nil
}

func (s *fakeObjectStore) purgedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.purged...)
}

type cliTestEnv struct {
	host       *fakeHost
	server     *httptest.Server
	store      *fakeObjectStore
	configPath string
	cacheDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	// Neutralize overrides the developer machine may carry.
	t.Setenv("SNADMIN_TOKEN", "")
	t.Setenv("SNADMIN_FEED_ID", "")
	t.Setenv("SNADMIN_B2_KEY_ID", "")
	t.Setenv("SNADMIN_B2_APP_KEY", "")
	t.Setenv("XDG_CACHE_HOME", "")

	host := &fakeHost{media: map[string][]byte{}}
	server := httptest.NewServer(host.handler())
	t.Cleanup(server.Close)
	host.episodes = sampleEpisodes(server.URL)
	host.media["episode-101.mp3"] = []byte("mp3 bytes for episode 101")
	host.media["episode-102.mp3"] = []byte("mp3 bytes for episode 102, a bit longer")

	store := &fakeObjectStore{objects: []storage.Object{
		{Name: "episode-101.mp3", Size: 25, UploadedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{Name: "episode-102.mp3", Size: 39, UploadedAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)},
		{Name: "cover.jpg", Size: 10, UploadedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)},
	}}
	previousFactory := defaultStoreFactory
	defaultStoreFactory = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ObjectStore, error) {
		return store, nil
	}
	t.Cleanup(func() { defaultStoreFactory = previousFactory })

	cacheDir := filepath.Join(base, "cache")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[server]
base_url = %q
feed_id = %q
token = %q

[storage]
key_id = "unused"
app_key = "unused"
bucket = "test-bucket"

[cache]
enabled = true
dir = %q

[logging]
level = "error"
format = "console"
`, server.URL, testFeed, testToken, cacheDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		host:       host,
		server:     server,
		store:      store,
		configPath: configPath,
		cacheDir:   cacheDir,
	}
}

// sampleEpisodes deliberately orders episode numbers against publication
// dates so the two list sort keys produce different output.
func sampleEpisodes(baseURL string) []snapcast.Episode {
	return []snapcast.Episode{
		{
			ID:            102,
			Title:         "Winter Special",
			MediaURL:      baseURL + "/media/episode-102.mp3",
			MediaSize:     39,
			MediaType:     "audio/mpeg",
			MediaDuration: 31*time.Minute + 5*time.Second,
			PubDate:       time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
			UUID:          "5f0c30f4-9bb2-4bb4-b972-3b59f8f2c002",
			PodcastUUID:   "0a8dc8f1-6f0e-4b89-b1fb-b0e0a3b5d001",
		},
		{
			ID:            101,
			Title:         "Spring Catchup",
			MediaURL:      baseURL + "/media/episode-101.mp3",
			MediaSize:     25,
			MediaType:     "audio/mpeg",
			MediaDuration: 58*time.Minute + 42*time.Second,
			PubDate:       time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC),
			UUID:          "5f0c30f4-9bb2-4bb4-b972-3b59f8f2c001",
			PodcastUUID:   "0a8dc8f1-6f0e-4b89-b1fb-b0e0a3b5d001",
		},
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func runCLIWithInput(t *testing.T, env *cliTestEnv, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
