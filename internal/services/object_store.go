package services

import (
	"context"
)

// ObjectStore is the storage collaborator for media assets: a key→bytes map
// with URL issuance. Implemented by S3Service; tests use an in-memory fake.
// It is always constructor-injected, never ambient state.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
