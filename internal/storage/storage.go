package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/andresuchdata/retail-ops/pkg/logger"
)

var log = logger.Component("storage")

// ObjectInfo represents metadata for a remote fixture object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations fixture
// syncing needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, key string, destPath string) error
	UploadObject(ctx context.Context, key string, data []byte) error
}

// SyncFixtures downloads every object under prefix into destDir, keeping
// the object's base name. Returns the number of files written.
func SyncFixtures(ctx context.Context, client ObjectStorage, prefix, destDir string) (int, error) {
	objects, err := client.ListObjects(ctx, prefix)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, obj := range objects {
		dest := filepath.Join(destDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(ctx, obj.Key, dest); err != nil {
			return synced, err
		}
		log.Debug().Str("key", obj.Key).Str("dest", dest).Int64("size", obj.Size).Msg("fixture synced")
		synced++
	}
	return synced, nil
}

// PublishFixtures uploads every file in srcDir under prefix. Used by the
// seed tool to push generated datasets to the bucket.
func PublishFixtures(ctx context.Context, client ObjectStorage, srcDir, prefix string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(srcDir, entry.Name()))
		if err != nil {
			return published, err
		}
		key := filepath.Join(prefix, entry.Name())
		if err := client.UploadObject(ctx, key, data); err != nil {
			return published, err
		}
		log.Debug().Str("key", key).Int("size", len(data)).Msg("fixture published")
		published++
	}
	return published, nil
}
