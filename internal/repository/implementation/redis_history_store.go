package implementation

import (
	"context"
	"errors"
	"time"

	"ats-assistant-be/pkg/assistant"

	"github.com/redis/go-redis/v9"
)

// RedisHistoryStore keeps history blobs as plain redis strings so several
// server instances share one view of each owner's history.
type RedisHistoryStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var _ assistant.HistoryStore = &RedisHistoryStore{}

func NewRedisHistoryStore(rdb *redis.Client, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{
		rdb:    rdb,
		prefix: "ats-assistant:",
		ttl:    ttl,
	}
}

func (s *RedisHistoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, assistant.ErrHistoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *RedisHistoryStore) Put(ctx context.Context, key string, blob []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, blob, s.ttl).Err()
}

func (s *RedisHistoryStore) Clear(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
