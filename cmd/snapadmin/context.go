package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"snapadmin/internal/config"
	"snapadmin/internal/episodecache"
	"snapadmin/internal/logging"
	"snapadmin/internal/snapcast"
	"snapadmin/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger

	// storeFactory is replaced in tests with a fake ObjectStore.
	storeFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ObjectStore, error)
}

// defaultStoreFactory is swapped in tests for a fake ObjectStore.
var defaultStoreFactory = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ObjectStore, error) {
	return storage.NewB2Store(ctx, cfg, logger)
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		storeFactory: defaultStoreFactory,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger returns the diagnostic logger. Command output never flows through
// it; diagnostics go to stderr so stdout stays scriptable.
func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg, os.Stderr)
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		c.log = logger
	})
	return c.log
}

func (c *commandContext) apiClient() (*snapcast.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return snapcast.New(snapcast.Config{
		BaseURL: cfg.Server.BaseURL,
		FeedID:  cfg.Server.FeedID,
		Token:   cfg.Server.Token,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		},
		Logger: c.logger(),
	})
}

func (c *commandContext) objectStore(ctx context.Context) (storage.ObjectStore, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.storeFactory(ctx, cfg, c.logger())
}

func (c *commandContext) openCache() (*episodecache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return episodecache.Open(cfg)
}

// refreshCache is best-effort: a broken cache never fails an online
// listing.
func (c *commandContext) refreshCache(ctx context.Context, episodes []snapcast.Episode) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.Cache.Enabled {
		return
	}
	store, err := c.openCache()
	if err != nil {
		c.logger().Warn("skipping cache refresh", "error", err)
		return
	}
	defer store.Close()
	if err := store.Replace(ctx, cfg.Server.FeedID, episodes); err != nil {
		c.logger().Warn("cache refresh failed", "error", err)
	}
}
