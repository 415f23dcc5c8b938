// Package kpi computes the scalar summary metrics shown on the overview
// cards. Compute is pure: no I/O, no mutation, recomputed on every load.
package kpi

import (
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

// KPISet is the flat metric summary for one snapshot. Pointer fields are nil
// when the backing column is unavailable, which renders as N/A rather than a
// misleading zero.
type KPISet struct {
	TotalQuestions         int        `json:"total_questions"`
	UniqueTopics           int        `json:"unique_topics"`
	NewTopics              int        `json:"new_topics"`
	FirstQuestion          *time.Time `json:"first_question,omitempty"`
	LastQuestion           *time.Time `json:"last_question,omitempty"`
	TotalCost              *float64   `json:"total_cost,omitempty"`
	AvgCostNonZero         *float64   `json:"avg_cost_non_zero,omitempty"`
	TracesWithCost         int        `json:"traces_with_cost"`
	AvgLatencyNonZero      *float64   `json:"avg_latency_non_zero,omitempty"`
	MedianLatency          *float64   `json:"median_latency,omitempty"`
	P95Latency             *float64   `json:"p95_latency,omitempty"`
	FeedbackEntries        int        `json:"feedback_entries"`
	UniqueUsers            int        `json:"unique_users"`
	UniqueSessions         int        `json:"unique_sessions"`
	AvgQuestionsPerSession *float64   `json:"avg_questions_per_session,omitempty"`
	GeneralFeedbackCount   int        `json:"general_feedback_count"`
}

// Compute derives the KPI set from a merged table and its source batch. An
// empty table yields zero counts and nil aggregates, never an error.
func Compute(merged *merge.MergedTable, batch *dataset.Batch) KPISet {
	set := KPISet{
		TotalQuestions:       merged.NumRows(),
		NewTopics:            countNewTopics(batch.Table(dataset.DatasetTopics)),
		GeneralFeedbackCount: batch.Table(dataset.DatasetGeneralFeedback).NumRows(),
	}

	topicIDs := make([]string, 0, merged.NumRows())
	userIDs := make([]string, 0, merged.NumRows())
	sessionIDs := make([]string, 0, merged.NumRows())
	var costs, latencies []float64
	var first, last time.Time
	withSession := 0

	for i := range merged.Questions {
		q := &merged.Questions[i]
		topicIDs = append(topicIDs, q.TopicID)
		userIDs = append(userIDs, q.UserID)
		sessionIDs = append(sessionIDs, q.SessionID)
		if q.SessionID != "" {
			withSession++
		}
		if q.HasFeedback() {
			set.FeedbackEntries++
		}
		if q.TotalCost != nil {
			costs = append(costs, *q.TotalCost)
			if *q.TotalCost > 0 {
				set.TracesWithCost++
			}
		}
		if q.Latency != nil {
			latencies = append(latencies, *q.Latency)
		}
		if !q.Timestamp.IsZero() {
			if first.IsZero() || q.Timestamp.Before(first) {
				first = q.Timestamp
			}
			if last.IsZero() || q.Timestamp.After(last) {
				last = q.Timestamp
			}
		}
	}

	set.UniqueTopics = stats.CountDistinct(topicIDs)
	set.UniqueUsers = stats.CountDistinct(userIDs)
	set.UniqueSessions = stats.CountDistinct(sessionIDs)

	if !first.IsZero() {
		set.FirstQuestion = &first
		set.LastQuestion = &last
	}

	if merged.Available(merge.ColTotalCost) {
		total := stats.Sum(costs)
		set.TotalCost = &total
		if mean, ok := stats.Mean(stats.NonZero(costs)); ok {
			set.AvgCostNonZero = &mean
		}
	}

	if merged.Available(merge.ColLatency) {
		active := stats.NonZero(latencies)
		if mean, ok := stats.Mean(active); ok {
			set.AvgLatencyNonZero = &mean
		}
		if med, ok := stats.Median(active); ok {
			set.MedianLatency = &med
		}
		if p95, ok := stats.Quantile(active, 0.95); ok {
			set.P95Latency = &p95
		}
	}

	if set.UniqueSessions > 0 {
		avg := float64(withSession) / float64(set.UniqueSessions)
		set.AvgQuestionsPerSession = &avg
	}

	return set
}

func countNewTopics(topics *dataset.Table) int {
	n := 0
	for i := 0; i < topics.NumRows(); i++ {
		if dataset.ParseBool(topics.Value(i, "is_new")) {
			n++
		}
	}
	return n
}
