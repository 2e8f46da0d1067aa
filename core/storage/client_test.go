package storage_test

import (
	"context"
	"testing"

	"report-reconciler/core/storage"
	"report-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "reports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{Endpoint: endpoint, UseSSL: true})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client, endpoint)
		}
	})
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "acme/test_files/output", storage.Join("acme", "/test_files/", "output"))
	assert.Equal(t, "acme/file.xlsx", storage.Join(".", "acme", "", `file.xlsx`))
	assert.Equal(t, "a/b", storage.Join(`a\b`))
}

func TestExists(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "acme/test_files/column_mapping.xlsx"}
		close(ch)
		client.On("ListObjects", mock.Anything, "reports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "acme/test_files/column_mapping.xlsx" && opts.MaxKeys == 1
		})).Return((<-chan minio.ObjectInfo)(ch))

		assert.True(t, storage.Exists(context.Background(), client, "reports", "acme/test_files/column_mapping.xlsx"))
	})

	t.Run("Empty listing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(nil)

		assert.False(t, storage.Exists(context.Background(), client, "reports", "missing/"))
	})

	t.Run("Listing error", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: assert.AnError}
		close(ch)
		client.On("ListObjects", mock.Anything, "reports", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		assert.False(t, storage.Exists(context.Background(), client, "reports", "x"))
	})
}
