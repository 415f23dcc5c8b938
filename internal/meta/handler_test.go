package meta

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/auth"
	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/shared"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

type countingLoader struct {
	mu    sync.Mutex
	batch *dataset.Batch
	err   error
	calls int
}

func (f *countingLoader) FetchLatest(ctx context.Context) (*dataset.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func (f *countingLoader) callCount() int {
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
					{"t2", "Where are my grades?", "2025-01-13T11:00:00Z"},
				},
			},
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDashboard() Dashboard {
	return Dashboard{
		Title:   "Question Insights",
		Icon:    "https://example.org/icon.svg",
		Theme:   shared.ThemeDark,
		Version: "2.0.0",
	}
}

func newServer(loader snapshot.Loader) (*echo.Echo, *snapshot.Service) {
	ttl := 5 * time.Minute
	svc := snapshot.NewService(loader, snapshot.NewCache(nil, ttl), ttl, testLogger(), nil)
	e := echo.New()
	h := NewHandler(testDashboard(), svc, testLogger())
	h.RegisterRoutes(e.Group("/v1"), auth.MiddlewareFunc("s3cret"))
	return e, svc
}

func TestMeta(t *testing.T) {
	e, _ := newServer(&countingLoader{batch: validBatch()})
	req := httptest.NewRequest(http.MethodGet, "/v1/meta", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp dto.MetaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Title != "Question Insights" || resp.Theme != "dark" || resp.Version != "2.0.0" {
		t.Errorf("meta = %+v", resp)
	}
	if len(resp.Pages) != 8 {
		t.Fatalf("pages = %d, want 8", len(resp.Pages))
	}
	if resp.Pages[0].ID != "overview" || resp.Pages[0].Path != "/v1/pages/overview" {
		t.Errorf("first page = %+v", resp.Pages[0])
	}
}

func TestRefresh(t *testing.T) {
	loader := &countingLoader{batch: validBatch()}
	e, svc := newServer(loader)

	// prime the snapshot, then refresh must refetch
	if _, err := svc.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	before := loader.callCount()

	req := httptest.NewRequest(http.MethodPost, "/v1/refresh", nil)
	req.Header.Set(auth.TokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if loader.callCount() != before+1 {
		t.Errorf("refresh did not refetch: calls %d -> %d", before, loader.callCount())
	}

	var resp dto.RefreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Stamp != "20250114_093000" || resp.Rows != 2 || resp.Datasets != 1 {
		t.Errorf("refresh response = %+v", resp)
	}
	if resp.FromCache {
		t.Error("refresh must never serve from cache")
	}
}

func TestRefresh_RequiresToken(t *testing.T) {
	e, _ := newServer(&countingLoader{batch: validBatch()})
	req := httptest.NewRequest(http.MethodPost, "/v1/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRefresh_FetchErrorMapsTo502(t *testing.T) {
	e, _ := newServer(&countingLoader{err: &shared.FetchError{Op: "list", Err: errors.New("timeout")}})
	req := httptest.NewRequest(http.MethodPost, "/v1/refresh?token=s3cret", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
