package merge

import (
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
)

// Logical column names pages probe for availability before rendering a
// section that depends on them.
const (
	ColTimestamp = "timestamp"
	ColTotalCost = "total_cost"
	ColLatency   = "latency"
	ColSessionID = "session_id"
	ColUserID    = "user_id"
	ColScores    = "scores"
	ColTags      = "tags"
)

// QuestionRecord is one denormalized row per trace after the merge. Cost and
// latency stay nil when the source cell was empty or unparseable; a zero
// timestamp means the row had none.
type QuestionRecord struct {
	TraceID   string
	Input     string
	Timestamp time.Time
	TopicID   string
	TopicName string
	TotalCost *float64
	Latency   *float64
	Scores    []dataset.Score
	Tags      []string
	SessionID string
	UserID    string
}

// HasFeedback reports whether any score or tag was attached to the trace.
func (q *QuestionRecord) HasFeedback() bool {
	return len(q.Scores) > 0 || len(q.Tags) > 0
}

// MergedTable is the single denormalized view every page renders from. It is
// read-only after Build; refresh replaces it wholesale.
type MergedTable struct {
	Questions []QuestionRecord

	availability map[string]bool
}

func (m *MergedTable) NumRows() int {
	if m == nil {
		return 0
	}
	return len(m.Questions)
}

// Available reports whether a logical column was present in the loaded
// datasets and carries at least one non-null value. Pages use it to show an
// informative "not available" section instead of empty charts.
func (m *MergedTable) Available(column string) bool {
	if m == nil {
		return false
	}
	return m.availability[column]
}

// GeneralFeedbackRecord is one free-form submission, kept outside the merged
// question table because it is not tied one-to-one to traces.
type GeneralFeedbackRecord struct {
	ID        string
	TraceID   string
	Timestamp time.Time
	Category  string
	Message   string
}
