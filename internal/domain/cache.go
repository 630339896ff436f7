package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the port for the read-side cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
