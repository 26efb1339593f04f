package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ruralplus/companion-api/schema"
)

const (
	redisCacheKey    = "pluscode:cache"
	redisLastSyncKey = "pluscode:last_sync"
)

// RedisStore keeps the Plus Code cache in Redis, surviving companion
// restarts without re-downloading the record set.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, codes []schema.PlusCode, syncedAt time.Time) error {
	data, err := json.Marshal(codes)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisCacheKey, data, 0)
	pipe.Set(ctx, redisLastSyncKey, syncedAt.UTC().Format(time.RFC3339), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Load(ctx context.Context) ([]schema.PlusCode, error) {
	data, err := s.client.Get(ctx, redisCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var codes []schema.PlusCode
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *RedisStore) LastSync(ctx context.Context) (time.Time, error) {
	value, err := s.client.Get(ctx, redisLastSyncKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, redisCacheKey, redisLastSyncKey).Err()
}
