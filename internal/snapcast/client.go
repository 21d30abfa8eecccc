package snapcast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snapadmin/internal/logging"
)

const defaultHTTPTimeout = 10 * time.Second

// Config describes the podcast host client configuration.
type Config struct {
	BaseURL    string
	FeedID     string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Snapcast podcast host REST API for one feed.
type Client struct {
	baseURL *url.URL
	feedID  string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client from the supplied configuration. The token may be
// empty; operations that need authentication report its absence.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("snapcast: base URL is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("snapcast: parse base url: %w", err)
	}
	feedID := strings.TrimSpace(cfg.FeedID)
	if feedID == "" {
		return nil, errors.New("snapcast: feed ID is required (set server.feed_id or SNADMIN_FEED_ID)")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		feedID:  feedID,
		token:   strings.TrimSpace(cfg.Token),
		http:    client,
		logger:  logger,
	}, nil
}

// ListEpisodes retrieves every episode of the feed.
func (c *Client) ListEpisodes(ctx context.Context) ([]Episode, error) {
	endpoint := c.baseURL.JoinPath(c.feedID, "episodes")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("snapcast: build list request: %w", err)
	}
	if err := c.applyAuth(req); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapcast: list episodes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, statusError("list episodes", resp)
	}

	var episodes []Episode
	if err := json.NewDecoder(resp.Body).Decode(&episodes); err != nil {
		return nil, fmt.Errorf("snapcast: decode episode list: %w", err)
	}
	c.logger.Debug("listed episodes", "feed", c.feedID, "count", len(episodes))
	return episodes, nil
}

// GetEpisode resolves an episode reference. The host accepts an integer
// episode number, a UUID, or -1 for the latest episode; a 404 yields
// *InvalidIDError.
func (c *Client) GetEpisode(ctx context.Context, ref string) (*Episode, error) {
	ref = strings.TrimSpace(ref)
	if err := ValidateRef(ref); err != nil {
		return nil, err
	}

	endpoint := c.baseURL.JoinPath(c.feedID, "episode", ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("snapcast: build episode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapcast: fetch episode: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, &InvalidIDError{Ref: ref}
	}
	if resp.StatusCode >= 400 {
		return nil, statusError("fetch episode", resp)
	}

	var episode Episode
	if err := json.NewDecoder(resp.Body).Decode(&episode); err != nil {
		return nil, fmt.Errorf("snapcast: decode episode: %w", err)
	}
	return &episode, nil
}

// UpdateEpisode patches one database field of an episode. The value must
// already be converted with ConvertFieldValue.
func (c *Client) UpdateEpisode(ctx context.Context, episode *Episode, field string, value any) error {
	if episode == nil || episode.UUID == "" {
		return errors.New("snapcast: episode with UUID required for update")
	}
	if !IsDatabaseField(field) {
		return fmt.Errorf("snapcast: %q is not an updatable field", field)
	}

	payload, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return fmt.Errorf("snapcast: encode update: %w", err)
	}

	endpoint := c.baseURL.JoinPath(c.feedID, "episode", episode.UUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("snapcast: build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.applyAuth(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("snapcast: update episode: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return statusError("update episode", resp)
	}
	c.logger.Debug("updated episode", "uuid", episode.UUID, "field", field)
	return nil
}

// DeleteEpisode removes an episode from the host. Media object cleanup is
// the caller's concern.
func (c *Client) DeleteEpisode(ctx context.Context, episode *Episode) error {
	if episode == nil || episode.UUID == "" {
		return errors.New("snapcast: episode with UUID required for delete")
	}

	endpoint := c.baseURL.JoinPath(c.feedID, "episode", episode.UUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("snapcast: build delete request: %w", err)
	}
	if err := c.applyAuth(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("snapcast: delete episode: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return statusError("delete episode", resp)
	}
	c.logger.Debug("deleted episode", "uuid", episode.UUID)
	return nil
}

func (c *Client) applyAuth(req *http.Request) error {
	if c.token == "" {
		return errors.New("snapcast: server.token is required (set it in the config or export SNADMIN_TOKEN)")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}
