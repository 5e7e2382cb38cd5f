package repositories

import (
	"context"
	"time"
)

// ObjectStorage abstracts the durable audio store. Source recordings are
// downloaded by path, synthesized audio is uploaded under a user-scoped
// path, and playback goes through time-limited signed URLs rather than
// permanent public ones.
type ObjectStorage interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, path string) error
}
