// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations the
// reconciler performs against a bucket: fetching input reports, uploading the run log
// and output workbook, and checking the vendor folder layout. This abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Layout
//
// Object keys mirror the local layout: "<vendor>/test_files/rpm_files_manual/<file>m.xlsx".
// Folders are zero-byte objects whose key ends in "/". Join builds keys from path segments
// and Exists checks a key or prefix with a single-item listing.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "reports")
//	found := storage.Exists(ctx, client, "reports", storage.Join("acme", "test_files", "output/"))
package storage
