package snapshot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/shared"
)

type fakeLoader struct {
	mu    sync.Mutex
	batch *dataset.Batch
	err   error
	calls int
}

func (f *fakeLoader) FetchLatest(ctx context.Context) (*dataset.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func validBatch() *dataset.Batch {
	return &dataset.Batch{
		Stamp:     "20250114_093000",
		FetchedAt: time.Now().UTC(),
		Tables: map[string]*dataset.Table{
			dataset.DatasetQuestions: {
				Name:    dataset.DatasetQuestions,
				Columns: []string{"trace_id", "input", "timestamp"},
				Rows: [][]string{
					{"t1", "How do I enroll?", "2025-01-13T10:00:00Z"},
				},
			},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(loader Loader, ttl time.Duration) *Service {
	return NewService(loader, NewCache(nil, ttl), ttl, testLogger(), nil)
}

func TestService_Acquire_MemoizesWithinTTL(t *testing.T) {
	loader := &fakeLoader{batch: validBatch()}
	svc := newTestService(loader, time.Hour)

	first, err := svc.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.callCount() != 1 {
		t.Errorf("expected a single fetch, got %d", loader.callCount())
	}
	if first.ID != second.ID {
		t.Error("expected the same snapshot instance within the TTL")
	}
	if first.KPIs.TotalQuestions != 1 {
		t.Errorf("expected KPIs computed, got %+v", first.KPIs)
	}
}

func TestService_Acquire_ReloadsAfterTTL(t *testing.T) {
	loader := &fakeLoader{batch: validBatch()}
	svc := newTestService(loader, 0)

	if _, err := svc.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.callCount() != 2 {
		t.Errorf("expected a reload after expiry, got %d fetches", loader.callCount())
	}
}

func TestService_Refresh_AlwaysRefetches(t *testing.T) {
	loader := &fakeLoader{batch: validBatch()}
	svc := newTestService(loader, time.Hour)

	first, err := svc.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.callCount() != 2 {
		t.Errorf("expected refresh to refetch, got %d fetches", loader.callCount())
	}
	if first.ID == second.ID {
		t.Error("expected refresh to replace the snapshot")
	}
}

func TestService_Acquire_FetchError(t *testing.T) {
	loader := &fakeLoader{err: &shared.FetchError{Op: "list", Err: errors.New("timeout")}}
	svc := newTestService(loader, time.Hour)

	_, err := svc.Acquire(context.Background())
	var fe *shared.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	if _, ok := svc.Current(); ok {
		t.Error("expected no current snapshot after a failed load")
	}
	failure := svc.LastFailure()
	if failure == nil || failure.At.IsZero() {
		t.Fatal("expected the failure to be recorded with a timestamp")
	}
}

func TestService_FailureClearedOnSuccess(t *testing.T) {
	loader := &fakeLoader{err: errors.New("down")}
	svc := newTestService(loader, time.Hour)

	if _, err := svc.Acquire(context.Background()); err == nil {
		t.Fatal("expected first load to fail")
	}

	loader.mu.Lock()
	loader.err = nil
	loader.batch = validBatch()
	loader.mu.Unlock()

	if _, err := svc.Acquire(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.LastFailure() != nil {
		t.Error("expected failure to be cleared after a successful load")
	}
	if _, ok := svc.Current(); !ok {
		t.Error("expected a current snapshot")
	}
}

func TestService_Acquire_MergeError(t *testing.T) {
	batch := validBatch()
	delete(batch.Tables, dataset.DatasetQuestions)
	loader := &fakeLoader{batch: batch}
	svc := newTestService(loader, time.Hour)

	_, err := svc.Acquire(context.Background())
	var me *shared.MergeError
	if !errors.As(err, &me) {
		t.Fatalf("expected merge error, got %v", err)
	}
	if svc.LastFailure() == nil {
		t.Error("expected the failure to be recorded")
	}
}

func TestService_ConcurrentAcquire_SingleLoad(t *testing.T) {
	loader := &fakeLoader{batch: validBatch()}
	svc := newTestService(loader, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Acquire(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if loader.callCount() != 1 {
		t.Errorf("expected concurrent callers to share one load, got %d", loader.callCount())
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(nil, time.Minute)

	if cache.Enabled() {
		t.Error("expected nil-client cache to be disabled")
	}
	if _, err := cache.Get(context.Background()); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := cache.Put(context.Background(), validBatch()); err != nil {
		t.Errorf("expected no-op put, got %v", err)
	}
	if err := cache.Drop(context.Background()); err != nil {
		t.Errorf("expected no-op drop, got %v", err)
	}
	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("expected no-op ping, got %v", err)
	}
}

func TestSnapshot_Accessors(t *testing.T) {
	var s *Snapshot
	if s.Stamp() != "" {
		t.Error("expected empty stamp on nil snapshot")
	}
	if s.Age(time.Now()) != 0 {
		t.Error("expected zero age on nil snapshot")
	}

	now := time.Now().UTC()
	s = &Snapshot{Batch: &dataset.Batch{Stamp: "20250114_093000"}, LoadedAt: now.Add(-time.Minute)}
	if s.Stamp() != "20250114_093000" {
		t.Errorf("unexpected stamp '%s'", s.Stamp())
	}
	if age := s.Age(now); age != time.Minute {
		t.Errorf("expected 1m age, got %v", age)
	}
}
