// Package download streams episode media files to local disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ProgressFunc receives the total byte count (or -1 when unknown) and
// returns a writer that observes downloaded bytes. Returning nil disables
// progress reporting.
type ProgressFunc func(total int64) io.Writer

// Fetch downloads mediaURL to dest. The file is written to a .partial
// sibling and renamed into place only after the body has been fully
// received and synced, so an interrupted download never leaves a
// plausible-looking media file behind.
func Fetch(ctx context.Context, client *http.Client, mediaURL, dest string, progress ProgressFunc) error {
	if strings.TrimSpace(mediaURL) == "" {
		return fmt.Errorf("download: media URL is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return fmt.Errorf("download: build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download: fetch %s: %w", mediaURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("download: fetch %s: host returned %s", mediaURL, resp.Status)
	}

	partial := dest + ".partial"
	file, err := os.OpenFile(partial, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("download: create %s: %w", partial, err)
	}

	var writer io.Writer = file
	if progress != nil {
		if pw := progress(resp.ContentLength); pw != nil {
			writer = io.MultiWriter(file, pw)
		}
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		file.Close()
		_ = os.Remove(partial)
		return fmt.Errorf("download: write %s: %w", partial, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		_ = os.Remove(partial)
		return fmt.Errorf("download: sync %s: %w", partial, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("download: close %s: %w", partial, err)
	}

	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("download: move into place: %w", err)
	}
	return nil
}
