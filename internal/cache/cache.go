package cache

import (
	"context"
	"time"
)

// Cache fronts the rarely-changing catalog reads (role list, categories).
// A miss is never an error; callers always fall through to Postgres.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
