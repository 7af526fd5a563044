// Package redisx holds the Redis key layout shared by the console's caches.
package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Resolved session user: dining:session:{sha256(token)} -> User JSON
	KeySession = "dining:session:%s"

	// Data snapshot per user and generation: dining:data:{gen}:{user_id} -> Snapshot JSON
	KeySnapshot = "dining:data:%d:%d"

	// Snapshot generation, bumped on every domain event: dining:data:gen -> int
	KeyDataGen = "dining:data:gen"
)

var (
	TTLSession  = 5 * time.Minute
	TTLSnapshot = 30 * time.Second
)

// Generation returns the current snapshot generation, 0 when unset.
func Generation(ctx context.Context, rdb *redis.Client) (int64, error) {
	n, err := rdb.Get(ctx, KeyDataGen).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
