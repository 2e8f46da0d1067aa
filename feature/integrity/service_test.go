package integrity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"report-reconciler/core/storage"
	"report-reconciler/core/storage/mocks"
	"report-reconciler/feature/loader"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func layoutConfig(root string) loader.Config {
	return loader.Config{
		Root:         root,
		TestDir:      "test_files",
		ManualDir:    "rpm_files_manual",
		AutomatedDir: "rpm_files_automation",
		OutputDir:    "output",
		MappingFile:  "column_mapping.xlsx",
	}
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Local(t *testing.T) {
	root := t.TempDir()
	svc := NewService(layoutConfig(root), zap.NewNop())

	t.Run("Reports everything missing", func(t *testing.T) {
		report, err := svc.Check(context.Background(), "acme", false)
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Len(t, report.MissingFolders, 3)
		assert.Equal(t, []string{"acme/test_files/column_mapping.xlsx"}, report.MissingFiles)
		assert.Len(t, report.TableData().Rows, 4)
	})

	t.Run("Fix creates folders", func(t *testing.T) {
		report, err := svc.Check(context.Background(), "acme", true)
		require.NoError(t, err)
		assert.Len(t, report.Created, 3)
		assert.Empty(t, report.MissingFolders)
		assert.DirExists(t, filepath.Join(root, "acme", "test_files", "rpm_files_manual"))
	})

	t.Run("Complete layout", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "acme", "test_files", "column_mapping.xlsx"), []byte("x"), 0o644))

		report, err := svc.Check(context.Background(), "acme", false)
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Equal(t, [][]string{{root, "layout", "ok"}}, report.TableData().Rows)
	})

	t.Run("Vendor required", func(t *testing.T) {
		_, err := svc.Check(context.Background(), " ", false)
		assert.Error(t, err)
	})
}

func TestService_Bucket(t *testing.T) {
	storageCfg := storage.Config{Bucket: "reports"}

	t.Run("Missing bucket without fix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		svc := NewBucketService(layoutConfig("."), mockClient, storageCfg, zap.NewNop())

		_, err := svc.Check(context.Background(), "acme", false)
		assert.ErrorContains(t, err, "bucket does not exist")
	})

	t.Run("Missing bucket with fix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil).Twice()
		mockClient.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil)
		mockClient.On("PutObject", mock.Anything, "reports", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "reports", mock.Anything).Return(emptyListing())
		svc := NewBucketService(layoutConfig("."), mockClient, storageCfg, zap.NewNop())

		report, err := svc.Check(context.Background(), "acme", true)
		require.NoError(t, err)
		assert.Equal(t, "s3://reports", report.Target)
		assert.Len(t, report.Created, 3)
		assert.Len(t, report.MissingFiles, 1)
		mockClient.AssertNumberOfCalls(t, "PutObject", 3)
		mockClient.AssertCalled(t, "PutObject", mock.Anything, "reports", "acme/test_files/output/", mock.Anything, int64(0), mock.Anything)
	})
}
