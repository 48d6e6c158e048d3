package dedupe

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 24 * time.Hour

// RedisDeduper shares seen IDs between replicas through SET NX with a TTL.
type RedisDeduper struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisDeduper stores keys as prefix+"submission:"+id.
func NewRedisDeduper(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisDeduper {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	return &RedisDeduper{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisDeduper) key(id string) string {
	return r.prefix + "submission:" + id
}

// SeenAndRecord implements Deduper.
func (r *RedisDeduper) SeenAndRecord(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(id), 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return !ok, nil
}

// Unrecord implements Deduper.
func (r *RedisDeduper) Unrecord(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

// Size counts tracked IDs with a SCAN over the prefix. It returns -1 when
// redis is unreachable.
func (r *RedisDeduper) Size() int64 {
	ctx := context.Background()
	var n int64
	iter := r.client.Scan(ctx, 0, r.key("*"), 0).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if iter.Err() != nil {
		return -1
	}
	return n
}
