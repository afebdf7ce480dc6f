package role

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redisClient, ttl: ttl}
}

func CacheKey(userID string) string {
	return "roles:" + userID
}

// Get reports ok=false on a miss or an unreadable entry.
func (c *Cache) Get(ctx context.Context, userID string) ([]Role, bool, error) {
	data, err := c.redis.Get(ctx, CacheKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var roles []Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, false, nil
	}
	return roles, true, nil
}

func (c *Cache) Set(ctx context.Context, userID string, roles []Role) error {
	if roles == nil {
		roles = []Role{}
	}
	data, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, CacheKey(userID), data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	return c.redis.Del(ctx, CacheKey(userID)).Err()
}
