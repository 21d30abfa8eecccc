package config

import (
	"os"
	"strings"
)

// Environment variables that override file values. SNADMIN_TOKEN and
// SNADMIN_FEED_ID predate the config file and keep working for existing
// deployments.
const (
	envToken   = "SNADMIN_TOKEN"
	envFeedID  = "SNADMIN_FEED_ID"
	envB2KeyID = "SNADMIN_B2_KEY_ID"
	envB2Key   = "SNADMIN_B2_APP_KEY"
)

func (c *Config) normalize() error {
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	c.Server.FeedID = strings.TrimSpace(c.Server.FeedID)
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	c.Storage.KeyID = strings.TrimSpace(c.Storage.KeyID)
	c.Storage.AppKey = strings.TrimSpace(c.Storage.AppKey)
	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	applyEnvOverride(&c.Server.Token, envToken)
	applyEnvOverride(&c.Server.FeedID, envFeedID)
	applyEnvOverride(&c.Storage.KeyID, envB2KeyID)
	applyEnvOverride(&c.Storage.AppKey, envB2Key)

	if strings.TrimSpace(c.Cache.Dir) == "" {
		c.Cache.Dir = defaultCacheDir()
	}
	expanded, err := expandPath(c.Cache.Dir)
	if err != nil {
		return err
	}
	c.Cache.Dir = expanded
	return nil
}

func applyEnvOverride(target *string, name string) {
	if value, ok := os.LookupEnv(name); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
}
