package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Backblaze/blazer/b2"

	"snapadmin/internal/config"
	"snapadmin/internal/logging"
)

// B2Store implements ObjectStore on a Backblaze B2 bucket.
type B2Store struct {
	bucket *b2.Bucket
	logger *slog.Logger
}

var _ ObjectStore = (*B2Store)(nil)

// NewB2Store authorizes against B2 and binds to the configured bucket.
func NewB2Store(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*B2Store, error) {
	if cfg == nil {
		return nil, errors.New("storage: config is required")
	}
	keyID := strings.TrimSpace(cfg.Storage.KeyID)
	appKey := strings.TrimSpace(cfg.Storage.AppKey)
	if keyID == "" || appKey == "" {
		return nil, errors.New("storage: B2 credentials are required (set storage.key_id and storage.app_key, or SNADMIN_B2_KEY_ID and SNADMIN_B2_APP_KEY)")
	}
	bucketName := strings.TrimSpace(cfg.Storage.Bucket)
	if bucketName == "" {
		return nil, errors.New("storage: storage.bucket must be set")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := b2.NewClient(ctx, keyID, appKey)
	if err != nil {
		return nil, fmt.Errorf("storage: authorize B2 account: %w", err)
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open bucket %q: %w", bucketName, err)
	}
	return &B2Store{bucket: bucket, logger: logger}, nil
}

// List returns the current version of every object under prefix.
func (s *B2Store) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	iter := s.bucket.List(ctx, b2.ListPrefix(prefix))
	for iter.Next() {
		obj := iter.Object()
		attrs, err := obj.Attrs(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: read attrs for %q: %w", obj.Name(), err)
		}
		objects = append(objects, Object{
			Name:       attrs.Name,
			Size:       attrs.Size,
			UploadedAt: attrs.UploadTimestamp,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("storage: list objects: %w", err)
	}
	return objects, nil
}

// DeleteAllVersions removes every version of the named object, hidden
// versions included. Deleting a name with no versions succeeds.
func (s *B2Store) DeleteAllVersions(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("storage: object name is required")
	}

	deleted := 0
	iter := s.bucket.List(ctx, b2.ListPrefix(name), b2.ListHidden())
	for iter.Next() {
		obj := iter.Object()
		// The prefix listing may surface longer names that merely share
		// the prefix; only exact matches are versions of this object.
		if obj.Name() != name {
			continue
		}
		if err := obj.Delete(ctx); err != nil {
			if b2.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("storage: delete version of %q: %w", name, err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("storage: list versions of %q: %w", name, err)
	}
	s.logger.Debug("deleted object versions", "name", name, "versions", deleted)
	return nil
}
