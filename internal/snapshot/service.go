// Package snapshot owns the load pipeline: fetch the latest batch, merge it,
// compute KPIs, and memoize the result under a TTL. Every page handler goes
// through the service instead of touching shared mutable state.
package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/kpi"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/metrics"
	"github.com/byu-pathway/insights-backend/internal/shared"
)

// Loader is the slice of the dataset fetcher the service needs.
type Loader interface {
	FetchLatest(ctx context.Context) (*dataset.Batch, error)
}

type Service struct {
	loader  Loader
	cache   *Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	current *Snapshot
	failure *LoadFailure
}

func NewService(loader Loader, cache *Cache, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		loader:  loader,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With("component", "snapshot"),
		metrics: m,
	}
}

// Acquire returns the current snapshot, loading one when none exists or the
// TTL has lapsed. Loads run under the service mutex, so concurrent callers
// block until the single in-flight load completes or fails.
func (s *Service) Acquire(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && time.Since(s.current.LoadedAt) < s.ttl {
		return s.current, nil
	}
	return s.loadLocked(ctx, false)
}

// Refresh discards the cached batch and reloads from the object store. It is
// the manual retry path; nothing retries automatically.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Drop(ctx); err != nil {
		s.logger.Warn("dropping cached batch failed", "error", err)
	}
	return s.loadLocked(ctx, true)
}

// Current returns the last successfully built snapshot without triggering a
// load. It may be older than the TTL; ok is false before the first success.
func (s *Service) Current() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// LastFailure returns the most recent failed load, or nil when the last load
// succeeded. Kept for the diagnostic report.
func (s *Service) LastFailure() *LoadFailure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// TTL exposes the configured snapshot lifetime for readiness reporting.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) loadLocked(ctx context.Context, force bool) (*Snapshot, error) {
	batch, fromCache := s.cachedBatch(ctx, force)
	if batch == nil {
		start := time.Now()
		fetched, err := s.loader.FetchLatest(ctx)
		s.metrics.ObserveFetch(time.Since(start), err)
		if err != nil {
			s.fail(err)
			return nil, err
		}
		batch = fetched
		if err := s.cache.Put(ctx, batch); err != nil {
			s.logger.Warn("caching batch failed", "error", err)
		}
	}

	merged, err := merge.Build(batch)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	snap := &Snapshot{
		ID:        shared.NewID("snap_"),
		Batch:     batch,
		Merged:    merged,
		General:   merge.GeneralFeedback(batch),
		KPIs:      kpi.Compute(merged, batch),
		LoadedAt:  time.Now().UTC(),
		FromCache: fromCache,
	}
	if fromCache && !batch.FetchedAt.IsZero() {
		// Anchor the TTL to the original fetch so the cache cannot extend it.
		snap.LoadedAt = batch.FetchedAt
	}

	s.current = snap
	s.failure = nil
	s.metrics.ObserveSnapshot(merged.NumRows())
	s.logger.Info("snapshot loaded", "stamp", batch.Stamp, "rows", merged.NumRows(), "from_cache", fromCache)
	return snap, nil
}

func (s *Service) cachedBatch(ctx context.Context, force bool) (*dataset.Batch, bool) {
	if force || !s.cache.Enabled() {
		return nil, false
	}
	batch, err := s.cache.Get(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("reading cached batch failed", "error", err)
		}
		s.metrics.ObserveCache(false)
		return nil, false
	}
	if batch.FetchedAt.IsZero() || time.Since(batch.FetchedAt) >= s.ttl {
		s.metrics.ObserveCache(false)
		return nil, false
	}
	s.metrics.ObserveCache(true)
	return batch, true
}

func (s *Service) fail(err error) {
	s.failure = &LoadFailure{Err: err, At: time.Now().UTC()}
	s.logger.Error("snapshot load failed", "error", err)
}
