package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/shared"
)

const batchKey = "insights:batch:v1"

// Cache keeps the raw fetched batch in Redis so a process restart inside the
// TTL window skips the object-store round trip. Redis is optional: a Cache
// around a nil client is a no-op and every method stays safe to call.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.redis != nil
}

func (c *Cache) Get(ctx context.Context) (*dataset.Batch, error) {
	if !c.Enabled() {
		return nil, shared.ErrNotFound
	}
	data, err := c.redis.Get(ctx, batchKey).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var batch dataset.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (c *Cache) Put(ctx context.Context, batch *dataset.Batch) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, batchKey, data, c.ttl).Err()
}

func (c *Cache) Drop(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Del(ctx, batchKey).Err()
}

// Ping checks connectivity for readiness probes.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}
