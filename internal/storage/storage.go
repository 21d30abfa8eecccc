package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// Object describes one stored media object.
type Object struct {
	Name       string
	Size       int64
	UploadedAt time.Time
}

// ObjectStore abstracts the bucket operations used by the admin tool.
type ObjectStore interface {
	// List returns the objects whose names start with prefix. An empty
	// prefix lists the whole bucket.
	List(ctx context.Context, prefix string) ([]Object, error)
	// DeleteAllVersions removes every version of the named object. A name
	// with no remaining versions is not an error.
	DeleteAllVersions(ctx context.Context, name string) error
}

// ObjectNameFromURL extracts the bucket object name from an episode media
// URL. Media URLs end in the percent-encoded object name.
func ObjectNameFromURL(mediaURL string) (string, error) {
	trimmed := strings.TrimSpace(mediaURL)
	if trimmed == "" {
		return "", fmt.Errorf("media URL is empty")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse media URL %q: %w", mediaURL, err)
	}
	// Work on the escaped form so the name is decoded exactly once; taking
	// the base of the decoded path would re-decode names like 100%25.mp3.
	base := path.Base(parsed.EscapedPath())
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("media URL %q has no object name", mediaURL)
	}
	name, err := url.PathUnescape(base)
	if err != nil {
		return "", fmt.Errorf("decode object name %q: %w", base, err)
	}
	return name, nil
}
