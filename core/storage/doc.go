// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that catalog exports can be read from, and
// reconciled results written to, AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket before results are uploaded.
//   - PutObject: Uploads the reconciled table.
//   - GetObject: Retrieves an export as a stream.
//   - ListObjects: Used by LatestObject to pick the newest export under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	key, err := storage.LatestObject(ctx, client, "exports", "supplier/")
package storage
