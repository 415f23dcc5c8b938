package merge

import (
	"errors"
	"testing"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/shared"
)

func testBatch() *dataset.Batch {
	return &dataset.Batch{
		Stamp: "20250114_093000",
		Tables: map[string]*dataset.Table{
			dataset.DatasetQuestions: {
				Name:    dataset.DatasetQuestions,
				Columns: []string{"trace_id", "input", "timestamp", "topic_id", "total_cost", "latency", "session_id", "user_id"},
				Rows: [][]string{
					{"t1", "How do I enroll?", "2025-01-13T10:00:00Z", "tp1", "0.001", "1.0", "s1", "u1"},
					{"t2", "What is PathwayConnect?", "2025-01-13T11:00:00Z", "tp2", "0.002", "2.0", "s1", "u2"},
					{"t3", "¿Cómo me inscribo?", "2025-01-14T09:00:00Z", "tp9", "0.0", "0.0", "s2", "u1"},
				},
			},
			dataset.DatasetTopics: {
				Name:    dataset.DatasetTopics,
				Columns: []string{"topic_id", "topic_name", "summary", "question_count", "is_new", "first_seen"},
				Rows: [][]string{
					{"tp1", "Enrollment", "Getting started questions", "2", "false", "2024-11-01"},
					{"tp2", "PathwayConnect", "Program structure", "1", "true", "2025-01-10"},
				},
			},
			dataset.DatasetFeedback: {
				Name:    dataset.DatasetFeedback,
				Columns: []string{"trace_id", "scores", "tags"},
				Rows: [][]string{
					{"t1", `[{"name":"relevance","value":0.9}]`, `["language: english"]`},
					{"t2", "", "language: spanish, role: student"},
					{"t999", `[{"name":"relevance","value":0.1}]`, "[]"},
				},
			},
			dataset.DatasetGeneralFeedback: {
				Name:    dataset.DatasetGeneralFeedback,
				Columns: []string{"id", "trace_id", "timestamp", "category", "message"},
				Rows: [][]string{
					{"gf1", "t1", "2025-01-13T12:00:00Z", "praise", "Very helpful"},
					{"gf2", "", "2025-01-14T08:00:00Z", "bug", "Page froze"},
				},
			},
		},
	}
}

func TestBuild_FullMerge(t *testing.T) {
	merged, err := Build(testBatch())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.NumRows() != 3 {
		t.Fatalf("expected 3 merged rows, got %d", merged.NumRows())
	}

	q1 := merged.Questions[0]
	if q1.TopicName != "Enrollment" {
		t.Errorf("expected topic join, got '%s'", q1.TopicName)
	}
	if q1.TotalCost == nil || *q1.TotalCost != 0.001 {
		t.Errorf("expected cost 0.001, got %v", q1.TotalCost)
	}
	if q1.Latency == nil || *q1.Latency != 1.0 {
		t.Errorf("expected latency 1.0, got %v", q1.Latency)
	}
	if len(q1.Scores) != 1 || q1.Scores[0].Name != "relevance" {
		t.Errorf("expected relevance score, got %v", q1.Scores)
	}
	if len(q1.Tags) != 1 || q1.Tags[0] != "language: english" {
		t.Errorf("expected language tag, got %v", q1.Tags)
	}
	want := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	if !q1.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, q1.Timestamp)
	}

	q2 := merged.Questions[1]
	if len(q2.Scores) != 0 {
		t.Errorf("expected no scores for empty cell, got %v", q2.Scores)
	}
	if len(q2.Tags) != 2 {
		t.Errorf("expected comma-split tags, got %v", q2.Tags)
	}

	q3 := merged.Questions[2]
	if q3.TopicName != "Unknown" {
		t.Errorf("expected unknown topic fallback, got '%s'", q3.TopicName)
	}
	if q3.TotalCost == nil || *q3.TotalCost != 0 {
		t.Errorf("expected explicit zero cost to survive, got %v", q3.TotalCost)
	}

	for _, col := range []string{ColTimestamp, ColTotalCost, ColLatency, ColSessionID, ColUserID, ColScores, ColTags} {
		if !merged.Available(col) {
			t.Errorf("expected column %s to be available", col)
		}
	}
}

func TestBuild_RowCountInvariant(t *testing.T) {
	batch := testBatch()
	questionRows := batch.Table(dataset.DatasetQuestions).NumRows()

	merged, err := Build(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.NumRows() != questionRows {
		t.Errorf("expected %d rows regardless of secondary tables, got %d", questionRows, merged.NumRows())
	}
}

func TestBuild_MissingQuestions(t *testing.T) {
	batch := testBatch()
	delete(batch.Tables, dataset.DatasetQuestions)

	_, err := Build(batch)
	var me *shared.MergeError
	if !errors.As(err, &me) {
		t.Fatalf("expected *shared.MergeError, got %T", err)
	}
	if me.Stage != "questions" {
		t.Errorf("expected stage 'questions', got '%s'", me.Stage)
	}
}

func TestBuild_MissingTopics(t *testing.T) {
	batch := testBatch()
	delete(batch.Tables, dataset.DatasetTopics)

	merged, err := Build(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range merged.Questions {
		if q.TopicName != "Unknown" {
			t.Errorf("expected 'Unknown' for all topics, got '%s'", q.TopicName)
		}
	}
}

func TestBuild_MissingFeedback(t *testing.T) {
	batch := testBatch()
	delete(batch.Tables, dataset.DatasetFeedback)

	merged, err := Build(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", merged.NumRows())
	}
	for _, q := range merged.Questions {
		if q.HasFeedback() {
			t.Errorf("expected no feedback for trace %s", q.TraceID)
		}
	}
	if merged.Available(ColScores) || merged.Available(ColTags) {
		t.Error("expected score/tag columns to be unavailable")
	}
}

func TestBuild_AllNullColumn(t *testing.T) {
	batch := testBatch()
	questions := batch.Table(dataset.DatasetQuestions)
	idx := questions.ColumnIndex("latency")
	for _, row := range questions.Rows {
		row[idx] = ""
	}

	merged, err := Build(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Available(ColLatency) {
		t.Error("expected latency to be unavailable when every cell is null")
	}
	if !merged.Available(ColTotalCost) {
		t.Error("expected cost to stay available")
	}
}

func TestBuild_EmptyQuestions(t *testing.T) {
	batch := &dataset.Batch{
		Tables: map[string]*dataset.Table{
			dataset.DatasetQuestions: {
				Name:    dataset.DatasetQuestions,
				Columns: []string{"trace_id", "input", "timestamp"},
			},
		},
	}

	merged, err := Build(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.NumRows() != 0 {
		t.Errorf("expected 0 rows, got %d", merged.NumRows())
	}
	if merged.Available(ColTimestamp) {
		t.Error("expected no availability without rows")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", "2025-01-13T10:00:00Z", time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2025-01-13T10:00:00+02:00", time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)},
		{"naive datetime", "2025-01-13T10:00:00", time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)},
		{"space separated", "2025-01-13 10:00:00", time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)},
		{"micros", "2025-01-13 10:00:00.123456", time.Date(2025, 1, 13, 10, 0, 0, 123456000, time.UTC)},
		{"date only", "2025-01-13", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.raw)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGeneralFeedback(t *testing.T) {
	records := GeneralFeedback(testBatch())
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Category != "praise" || records[0].Message != "Very helpful" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].TraceID != "" {
		t.Errorf("expected empty trace for standalone feedback, got '%s'", records[1].TraceID)
	}

	batch := testBatch()
	delete(batch.Tables, dataset.DatasetGeneralFeedback)
	if got := GeneralFeedback(batch); len(got) != 0 {
		t.Errorf("expected no records without the table, got %d", len(got))
	}
}

func TestQuestionRecord_HasFeedback(t *testing.T) {
	q := QuestionRecord{}
	if q.HasFeedback() {
		t.Error("expected no feedback on empty record")
	}
	q.Tags = []string{"language: english"}
	if !q.HasFeedback() {
		t.Error("expected feedback with tags present")
	}
}
