package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"report-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckFiles returns the files missing from the bucket.
func CheckFiles(ctx context.Context, client storage.Client, bucket string, files []string) ([]string, error) {
	if err := checkBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range files {
		opts := minio.ListObjectsOptions{
			Prefix:    key,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == key {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// CheckLocalFiles returns the files missing under root.
func CheckLocalFiles(root string, files []string) ([]string, error) {
	var missing []string
	for _, file := range files {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(file)))
		switch {
		case errors.Is(err, os.ErrNotExist):
			missing = append(missing, file)
		case err != nil:
			return nil, fmt.Errorf("failed to inspect %s: %w", file, err)
		case info.IsDir():
			return nil, fmt.Errorf("%s is a folder", file)
		}
	}
	return missing, nil
}
