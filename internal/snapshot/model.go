package snapshot

import (
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/kpi"
	"github.com/byu-pathway/insights-backend/internal/merge"
)

// Snapshot is one fully built view of the data: the raw batch, the merged
// table, the typed general feedback, and the KPI summary. It is immutable
// after construction; a refresh replaces it wholesale.
type Snapshot struct {
	ID       string
	Batch    *dataset.Batch
	Merged   *merge.MergedTable
	General  []merge.GeneralFeedbackRecord
	KPIs     kpi.KPISet
	LoadedAt time.Time

	// FromCache marks snapshots rebuilt from the Redis batch cache rather
	// than a fresh object-store fetch.
	FromCache bool
}

// Stamp returns the upload stamp of the underlying batch.
func (s *Snapshot) Stamp() string {
	if s == nil || s.Batch == nil {
		return ""
	}
	return s.Batch.Stamp
}

// Age reports how long ago this snapshot was loaded.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s == nil {
		return 0
	}
	return now.Sub(s.LoadedAt)
}

// LoadFailure records the most recent failed load for the diagnostic report.
type LoadFailure struct {
	Err error
	At  time.Time
}
