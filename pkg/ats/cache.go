package ats

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
)

// CachedDirectory keeps "list all" answers in an in-memory Ristretto cache
// for a short TTL. Searches, lookups, counts and writes pass through.
// Cached slices are shared: callers must copy before reordering them.
type CachedDirectory struct {
	JobDirectory
	CandidateDirectory
	ApplicationDirectory
	InterviewDirectory

	cache  *ristretto.Cache[string, any]
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedDirectory wraps the given directories. maxCost bounds the number
// of cached rows (default: 100,000), ttl defaults to 30 seconds.
func NewCachedDirectory(dirs Directories, maxCost int64, ttl time.Duration, logger *zap.Logger) (*CachedDirectory, error) {
	if maxCost <= 0 {
		maxCost = 100_000
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	return &CachedDirectory{
		JobDirectory:         dirs.Jobs,
		CandidateDirectory:   dirs.Candidates,
		ApplicationDirectory: dirs.Applications,
		InterviewDirectory:   dirs.Interviews,
		cache:                cache,
		ttl:                  ttl,
		logger:               logger.Named("ats_cache"),
	}, nil
}

func (d *CachedDirectory) ListJobs(ctx context.Context) ([]Job, error) {
	return cachedList(ctx, d, "jobs", d.JobDirectory.ListJobs)
}

func (d *CachedDirectory) ListCandidates(ctx context.Context) ([]Candidate, error) {
	return cachedList(ctx, d, "candidates", d.CandidateDirectory.ListCandidates)
}

func (d *CachedDirectory) ListApplications(ctx context.Context) ([]Application, error) {
	return cachedList(ctx, d, "applications", d.ApplicationDirectory.ListApplications)
}

func (d *CachedDirectory) ListInterviews(ctx context.Context) ([]Interview, error) {
	return cachedList(ctx, d, "interviews", d.InterviewDirectory.ListInterviews)
}

// UpdateJobStatus writes through and drops cached lists so the change is
// visible on the next read.
func (d *CachedDirectory) UpdateJobStatus(ctx context.Context, id int64, status string) error {
	if err := d.JobDirectory.UpdateJobStatus(ctx, id, status); err != nil {
		return err
	}
	d.Invalidate()
	return nil
}

// Directories returns the cached views, with clients passed through.
func (d *CachedDirectory) Directories(clients ClientDirectory) Directories {
	return Directories{
		Jobs:         d,
		Candidates:   d,
		Applications: d,
		Interviews:   d,
		Clients:      clients,
	}
}

// Invalidate drops every cached list.
func (d *CachedDirectory) Invalidate() {
	d.cache.Clear()
}

func (d *CachedDirectory) Close() {
	d.cache.Close()
}

// cachedList is keyed per bearer token so one user's view never answers
// another user's request.
func cachedList[T any](ctx context.Context, d *CachedDirectory, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	key := name + "|" + tokenFrom(ctx)
	if v, ok := d.cache.Get(key); ok {
		if list, ok := v.([]T); ok {
			return list, nil
		}
	}

	list, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if !d.cache.SetWithTTL(key, list, int64(len(list))+1, d.ttl) {
		d.logger.Debug("cache set dropped", zap.String("key", name))
	}
	return list, nil
}
