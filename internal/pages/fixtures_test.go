package pages

import (
	"testing"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/kpi"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

// testBatch spans two ISO weeks with four traces, one topic flagged new,
// feedback on three traces, and two general submissions.
func testBatch() *dataset.Batch {
	questions := &dataset.Table{
		Name:    dataset.DatasetQuestions,
		Columns: []string{"trace_id", "input", "timestamp", "topic_id", "total_cost", "latency", "session_id", "user_id"},
		Rows: [][]string{
			{"t1", "How do I reset my password?", "2025-01-06T09:00:00Z", "tp1", "0.0010", "1.2", "s1", "u1"},
			{"t2", "Where can I find my grades?", "2025-01-07T15:30:00Z", "tp2", "0.0030", "2.4", "s1", "u1"},
			{"t3", "Como cambio mi contrasena?", "2025-01-13T11:00:00Z", "tp1", "0.0020", "0.8", "s2", "u2"},
			{"t4", "What is the enrollment deadline?", "2025-01-14T08:45:00Z", "tp3", "", "3.5", "s3", "u3"},
		},
	}
	topics := &dataset.Table{
		Name:    dataset.DatasetTopics,
		Columns: []string{"topic_id", "topic_name", "summary", "question_count", "is_new", "first_seen"},
		Rows: [][]string{
			{"tp1", "Password Reset", "Account access problems", "2", "False", "2024-11-01"},
			{"tp2", "Grades", "Grade lookup questions", "1", "False", "2024-12-01"},
			{"tp3", "Enrollment", "Enrollment deadlines", "1", "True", "2025-01-14"},
		},
	}
	feedback := &dataset.Table{
		Name:    dataset.DatasetFeedback,
		Columns: []string{"trace_id", "scores", "tags"},
		Rows: [][]string{
			{"t1", `[{"name":"helpfulness","value":0.9}]`, `["language: English","role: Student"]`},
			{"t3", `[{"name":"helpfulness","value":0.2,"comment":"wrong link"}]`, `["language: Spanish","role: Student"]`},
			{"t4", "[]", `["language: English","role: Mentor"]`},
		},
	}
	general := &dataset.Table{
		Name:    dataset.DatasetGeneralFeedback,
		Columns: []string{"id", "trace_id", "timestamp", "category", "message"},
		Rows: [][]string{
			{"g1", "", "2025-01-10T12:00:00Z", "praise", "Very helpful assistant"},
			{"g2", "t2", "2025-01-12T08:00:00Z", "bug", "The grades link was broken"},
		},
	}

	stamp := "20250114_093000"
	return &dataset.Batch{
		Stamp:     stamp,
		Timestamp: time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC),
		Tables: map[string]*dataset.Table{
			dataset.DatasetQuestions:       questions,
			dataset.DatasetTopics:          topics,
			dataset.DatasetFeedback:        feedback,
			dataset.DatasetGeneralFeedback: general,
		},
		Objects: []dataset.ObjectInfo{
			{Dataset: dataset.DatasetQuestions, Key: "questions_" + stamp + ".csv", Size: 2048},
			{Dataset: dataset.DatasetTopics, Key: "topics_" + stamp + ".csv", Size: 512},
			{Dataset: dataset.DatasetFeedback, Key: "feedback_" + stamp + ".csv", Size: 768},
			{Dataset: dataset.DatasetGeneralFeedback, Key: "general_feedback_" + stamp + ".csv", Size: 256},
		},
		FetchedAt: time.Date(2025, 1, 14, 9, 35, 0, 0, time.UTC),
	}
}

func buildSnapshot(t *testing.T, batch *dataset.Batch) *snapshot.Snapshot {
	t.Helper()
	merged, err := merge.Build(batch)
	if err != nil {
		t.Fatalf("merge.Build() error = %v", err)
	}
	return &snapshot.Snapshot{
		ID:       "snap_test",
		Batch:    batch,
		Merged:   merged,
		General:  merge.GeneralFeedback(batch),
		KPIs:     kpi.Compute(merged, batch),
		LoadedAt: batch.FetchedAt,
	}
}

func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	return buildSnapshot(t, testBatch())
}

// dropColumn rebuilds a table fixture without one column, simulating an
// upload that never produced it.
func dropColumn(t *testing.T, table *dataset.Table, name string) {
	t.Helper()
	idx := table.ColumnIndex(name)
	if idx < 0 {
		t.Fatalf("column %q not present", name)
	}
	table.Columns = append(table.Columns[:idx], table.Columns[idx+1:]...)
	for i, row := range table.Rows {
		table.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
}

func findTab(t *testing.T, tabs []dto.Tab, name string) dto.Tab {
	t.Helper()
	for _, tab := range tabs {
		if tab.Name == name {
			return tab
		}
	}
	t.Fatalf("tab %q not found", name)
	return dto.Tab{}
}

func findCard(t *testing.T, cards []dto.Card, label string) dto.Card {
	t.Helper()
	for _, card := range cards {
		if card.Label == label {
			return card
		}
	}
	t.Fatalf("card %q not found", label)
	return dto.Card{}
}

// firstNotice returns the first notice section, or nil.
func firstNotice(sections []dto.Section) *dto.Notice {
	for _, s := range sections {
		if s.Kind == dto.SectionNotice {
			return s.Notice
		}
	}
	return nil
}

func date(t *testing.T, day string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("bad date %q: %v", day, err)
	}
	return ts
}

func endOfDay(t *testing.T, day string) time.Time {
	t.Helper()
	return date(t, day).Add(24*time.Hour - time.Nanosecond)
}
