package model

import (
	"context"
	"time"
)

// CoverStorage resolves object keys of book covers and avatars to URLs.
type CoverStorage interface {
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
