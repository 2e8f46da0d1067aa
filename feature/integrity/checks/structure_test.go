package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"report-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var folders = []string{
	"acme/test_files/rpm_files_manual",
	"acme/test_files/rpm_files_automation",
	"acme/test_files/output",
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func listing(key string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: key}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "reports", folders)
		assert.ErrorIs(t, err, ErrBucketNotFound)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(emptyListing())

		missing, err := CheckStructure(context.Background(), mockClient, "reports", folders)
		assert.NoError(t, err)
		assert.Equal(t, folders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		for _, folder := range folders {
			prefix := folder + "/"
			mockClient.On("ListObjects", mock.Anything, "reports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == prefix
			})).Return(listing(prefix))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "reports", folders)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()
	mockClient := new(mocks.Client)

	mockClient.On("PutObject", mock.Anything, "reports", "acme/test_files/output/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "reports", logger, []string{"acme/test_files/output"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Creates missing bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "reports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, EnsureBucket(context.Background(), mockClient, "reports", "eu-west-1", zap.NewNop()))
		mockClient.AssertExpectations(t)
	})

	t.Run("Keeps existing bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		require.NoError(t, EnsureBucket(context.Background(), mockClient, "reports", "", zap.NewNop()))
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLocalStructure(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "acme", "test_files", "output"), 0o755))

	missing, err := CheckLocalStructure(root, folders)
	require.NoError(t, err)
	assert.Equal(t, folders[:2], missing)

	require.NoError(t, FixLocalStructure(root, zap.NewNop(), missing))
	missing, err = CheckLocalStructure(root, folders)
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, os.WriteFile(filepath.Join(root, "acme", "file"), nil, 0o644))
	_, err = CheckLocalStructure(root, []string{"acme/file"})
	assert.ErrorContains(t, err, "not a folder")
}

func TestCheckFiles(t *testing.T) {
	key := "acme/test_files/column_mapping.xlsx"

	t.Run("Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(listing(key + ".bak")).Once()

		missing, err := CheckFiles(context.Background(), mockClient, "reports", []string{key})
		require.NoError(t, err)
		assert.Equal(t, []string{key}, missing)
	})

	t.Run("Local", func(t *testing.T) {
		root := t.TempDir()
		missing, err := CheckLocalFiles(root, []string{key})
		require.NoError(t, err)
		assert.Equal(t, []string{key}, missing)

		require.NoError(t, os.MkdirAll(filepath.Join(root, "acme", "test_files"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(key)), []byte("x"), 0o644))
		missing, err = CheckLocalFiles(root, []string{key})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}
