package assistant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"ats-assistant-be/pkg/jsonx"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

type SearchEntry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchHistory keeps an owner's recent queries. Queries are deduplicated
// case-insensitively and the newest occurrence wins.
type SearchHistory struct {
	store HistoryStore
	limit int
	mu    sync.Mutex
}

func NewSearchHistory(store HistoryStore, limit int) *SearchHistory {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &SearchHistory{store: store, limit: limit}
}

func searchKey(owner string) string {
	return "search:" + owner
}

// load rebuilds the LRU from the stored blob, oldest entry first, so the
// cache evicts the same entries the stored order would.
func (h *SearchHistory) load(ctx context.Context, owner string) (*lru.Cache[string, SearchEntry], error) {
	cache, err := lru.New[string, SearchEntry](h.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to create search history cache: %w", err)
	}

	blob, err := h.store.Get(ctx, searchKey(owner))
	if errors.Is(err, ErrHistoryNotFound) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	var entries []SearchEntry
	if err := jsonx.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode search history: %w", err)
	}
	// stored newest first
	for i := len(entries) - 1; i >= 0; i-- {
		cache.Add(strings.ToLower(entries[i].Query), entries[i])
	}
	return cache, nil
}

// newestFirst lists the cache from most to least recently added.
func newestFirst(cache *lru.Cache[string, SearchEntry]) []SearchEntry {
	entries := cache.Values()
	slices.Reverse(entries)
	return entries
}

// Record stores query and returns the updated history, newest first. Blank
// queries are ignored.
func (h *SearchHistory) Record(ctx context.Context, owner, query string, now time.Time) ([]SearchEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return newestFirst(cache), nil
	}

	key := strings.ToLower(query)
	// Remove first so the re-added entry moves to the newest position.
	cache.Remove(key)
	cache.Add(key, SearchEntry{ID: uuid.NewString(), Query: query, Timestamp: now})

	entries := newestFirst(cache)
	blob, err := jsonx.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search history: %w", err)
	}
	if err := h.store.Put(ctx, searchKey(owner), blob); err != nil {
		return nil, fmt.Errorf("failed to save search history: %w", err)
	}
	return entries, nil
}

// Entries returns the history newest first.
func (h *SearchHistory) Entries(ctx context.Context, owner string) ([]SearchEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache, err := h.load(ctx, owner)
	if err != nil {
		return nil, err
	}
	return newestFirst(cache), nil
}

func (h *SearchHistory) Clear(ctx context.Context, owner string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(ctx, searchKey(owner)); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
