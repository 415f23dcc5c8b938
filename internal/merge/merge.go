// Package merge joins the raw dataset tables into the one denormalized view
// the pages and KPI calculator consume.
package merge

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/shared"
)

// Build merges a fetched batch. The questions table is the primary: every
// question row yields exactly one merged row, topics join on topic_id with
// an "Unknown" fallback, feedback joins on trace_id with empty fallbacks,
// and secondary rows without a matching question are dropped.
func Build(batch *dataset.Batch) (*MergedTable, error) {
	questions := batch.Table(dataset.DatasetQuestions)
	if questions == nil {
		return nil, &shared.MergeError{Stage: "questions", Err: errors.New("questions dataset missing from batch")}
	}

	topicNames := indexTopics(batch.Table(dataset.DatasetTopics))
	feedback := batch.Table(dataset.DatasetFeedback)
	fbByTrace := indexFeedback(feedback)

	loaded := map[string]bool{
		ColTimestamp: questions.HasColumn(ColTimestamp),
		ColTotalCost: questions.HasColumn(ColTotalCost),
		ColLatency:   questions.HasColumn(ColLatency),
		ColSessionID: questions.HasColumn(ColSessionID),
		ColUserID:    questions.HasColumn(ColUserID),
		ColScores:    feedback.HasColumn(ColScores),
		ColTags:      feedback.HasColumn(ColTags),
	}
	nonNull := make(map[string]bool, len(loaded))

	rows := make([]QuestionRecord, 0, questions.NumRows())
	for i := range questions.Rows {
		rec := QuestionRecord{
			TraceID:   questions.Value(i, "trace_id"),
			Input:     questions.Value(i, "input"),
			TopicID:   questions.Value(i, "topic_id"),
			SessionID: questions.Value(i, ColSessionID),
			UserID:    questions.Value(i, ColUserID),
		}
		rec.Timestamp = ParseTimestamp(questions.Value(i, ColTimestamp))
		rec.TotalCost = parseFloat(questions.Value(i, ColTotalCost))
		rec.Latency = parseFloat(questions.Value(i, ColLatency))

		if name, ok := topicNames[rec.TopicID]; ok && name != "" {
			rec.TopicName = name
		} else {
			rec.TopicName = "Unknown"
		}
		if fb, ok := fbByTrace[rec.TraceID]; ok {
			rec.Scores = fb.scores
			rec.Tags = fb.tags
		}

		nonNull[ColTimestamp] = nonNull[ColTimestamp] || !rec.Timestamp.IsZero()
		nonNull[ColTotalCost] = nonNull[ColTotalCost] || rec.TotalCost != nil
		nonNull[ColLatency] = nonNull[ColLatency] || rec.Latency != nil
		nonNull[ColSessionID] = nonNull[ColSessionID] || rec.SessionID != ""
		nonNull[ColUserID] = nonNull[ColUserID] || rec.UserID != ""
		nonNull[ColScores] = nonNull[ColScores] || len(rec.Scores) > 0
		nonNull[ColTags] = nonNull[ColTags] || len(rec.Tags) > 0

		rows = append(rows, rec)
	}

	availability := make(map[string]bool, len(loaded))
	for col, l := range loaded {
		availability[col] = l && nonNull[col]
	}

	return &MergedTable{Questions: rows, availability: availability}, nil
}

// GeneralFeedback extracts the typed general feedback rows from a batch.
// A missing table yields an empty slice, never an error.
func GeneralFeedback(batch *dataset.Batch) []GeneralFeedbackRecord {
	table := batch.Table(dataset.DatasetGeneralFeedback)
	if table == nil {
		return nil
	}
	out := make([]GeneralFeedbackRecord, 0, table.NumRows())
	for i := range table.Rows {
		out = append(out, GeneralFeedbackRecord{
			ID:        table.Value(i, "id"),
			TraceID:   table.Value(i, "trace_id"),
			Timestamp: ParseTimestamp(table.Value(i, "timestamp")),
			Category:  table.Value(i, "category"),
			Message:   table.Value(i, "message"),
		})
	}
	return out
}

type traceFeedback struct {
	scores []dataset.Score
	tags   []string
}

func indexTopics(topics *dataset.Table) map[string]string {
	names := make(map[string]string, topics.NumRows())
	if topics == nil {
		return names
	}
	for i := range topics.Rows {
		if id := topics.Value(i, "topic_id"); id != "" {
			names[id] = topics.Value(i, "topic_name")
		}
	}
	return names
}

func indexFeedback(feedback *dataset.Table) map[string]traceFeedback {
	byTrace := make(map[string]traceFeedback, feedback.NumRows())
	if feedback == nil {
		return byTrace
	}
	for i := range feedback.Rows {
		trace := feedback.Value(i, "trace_id")
		if trace == "" {
			continue
		}
		byTrace[trace] = traceFeedback{
			scores: dataset.ParseScores(feedback.Value(i, ColScores)),
			tags:   dataset.ParseTags(feedback.Value(i, ColTags)),
		}
	}
	return byTrace
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 shapes the notebook has been seen to
// write. Unparseable input yields the zero time and the row is kept.
func ParseTimestamp(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

func parseFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
