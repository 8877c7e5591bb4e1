package memory

import (
	"context"
	"time"

	"ats-assistant-be/pkg/assistant"

	"github.com/patrickmn/go-cache"
)

// HistoryStore keeps history blobs in process memory. Blobs expire after
// ttl of inactivity; ttl <= 0 keeps them until the process exits.
type HistoryStore struct {
	cache *cache.Cache
}

var _ assistant.HistoryStore = &HistoryStore{}

func NewHistoryStore(ttl time.Duration) *HistoryStore {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl / 6
	}
	return &HistoryStore{
		cache: cache.New(expiration, cleanup),
	}
}

func (s *HistoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if x, found := s.cache.Get(key); found {
		blob := x.([]byte)
		out := make([]byte, len(blob))
		copy(out, blob)
		return out, nil
	}
	return nil, assistant.ErrHistoryNotFound
}

func (s *HistoryStore) Put(_ context.Context, key string, blob []byte) error {
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.cache.Set(key, stored, cache.DefaultExpiration)
	return nil
}

func (s *HistoryStore) Clear(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
