package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nkp491/surehelp/internal/shared"
	"github.com/redis/go-redis/v9"
)

const (
	snapshotTTL  = 35 * 24 * time.Hour
	selectionTTL = 90 * 24 * time.Hour
	selectionKey = "selection"
	customIndex  = "custom_keys"
)

type RedisRepository struct {
	redis *redis.Client
}

func NewRedisRepository(redisClient *redis.Client) *RedisRepository {
	return &RedisRepository{redis: redisClient}
}

func SnapshotRedisKey(userID, key string) string {
	return "metrics:" + userID + ":" + key
}

func (r *RedisRepository) Load(ctx context.Context, userID, key string) (*Record, error) {
	data, err := r.redis.Get(ctx, SnapshotRedisKey(userID, key)).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, key, err)
	}
	if !validSnapshot(rec.Snapshot) {
		return nil, fmt.Errorf("%w: %s: negative counter", ErrCorruptSnapshot, key)
	}
	return &rec, nil
}

func (r *RedisRepository) Save(ctx context.Context, userID, key string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(key, customPrefix) {
		return r.redis.Set(ctx, SnapshotRedisKey(userID, key), data, snapshotTTL).Err()
	}

	index := SnapshotRedisKey(userID, customIndex)
	_, err = r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, SnapshotRedisKey(userID, key), data, snapshotTTL)
		pipe.SAdd(ctx, index, key)
		pipe.Expire(ctx, index, snapshotTTL)
		return nil
	})
	return err
}

func (r *RedisRepository) DropCustom(ctx context.Context, userID string) error {
	index := SnapshotRedisKey(userID, customIndex)
	keys, err := r.redis.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	redisKeys := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		redisKeys = append(redisKeys, SnapshotRedisKey(userID, key))
	}
	redisKeys = append(redisKeys, index)
	return r.redis.Del(ctx, redisKeys...).Err()
}

func (r *RedisRepository) LoadSelection(ctx context.Context, userID string) (*Selection, error) {
	data, err := r.redis.Get(ctx, SnapshotRedisKey(userID, selectionKey)).Bytes()
	if err == redis.Nil {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSnapshot, selectionKey, err)
	}
	return &sel, nil
}

func (r *RedisRepository) SaveSelection(ctx context.Context, userID string, sel *Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, SnapshotRedisKey(userID, selectionKey), data, selectionTTL).Err()
}

func (r *RedisRepository) Reset(ctx context.Context, userID string) error {
	var keys []string
	iter := r.redis.Scan(ctx, 0, SnapshotRedisKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.redis.Del(ctx, keys...).Err()
}

func validSnapshot(s Snapshot) bool {
	for _, f := range Fields {
		if s.Get(f) < 0 {
			return false
		}
	}
	return true
}
