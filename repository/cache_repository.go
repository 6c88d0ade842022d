package repository

import (
	"context"
	"time"
)

// CacheRepository stores encoded simulation results by key. A miss is
// reported as ok == false with a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
