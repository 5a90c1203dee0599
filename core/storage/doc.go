// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go SDK behind the Client interface so the receipt archive
// and the integrity checks can be tested with the mock in storage/mocks.
//
// # Configuration
//
// Storage is optional. When storage.enabled is false the inventory feature runs
// without archiving raw receipt payloads.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ok, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
