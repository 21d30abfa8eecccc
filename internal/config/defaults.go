package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultBaseURL        = "https://www.peanut.one/snapcast"
	defaultRequestTimeout = 10
	defaultBucket         = "jbc-external"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Storage: Storage{
			Bucket: defaultBucket,
		},
		Cache: Cache{
			Enabled: true,
			Dir:     defaultCacheDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "snapadmin")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/snapadmin"
	}
	return filepath.Join(home, ".cache", "snapadmin")
}
