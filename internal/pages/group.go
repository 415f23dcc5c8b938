package pages

import (
	"sort"
	"strings"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// countsByPeriod buckets rows with timestamps into period keys, returning
// labels and counts aligned and sorted chronologically. Day and ISO-week
// keys both sort correctly as strings.
func countsByPeriod(qs []merge.QuestionRecord, period func(time.Time) string) ([]string, []float64) {
	counts := make(map[string]int)
	for i := range qs {
		if qs[i].Timestamp.IsZero() {
			continue
		}
		counts[period(qs[i].Timestamp)]++
	}
	labels := sortedKeys(counts)
	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = float64(counts[l])
	}
	return labels, values
}

// valuesByPeriod collects one numeric column per period for rows that carry
// both a timestamp and a value.
func valuesByPeriod(qs []merge.QuestionRecord, period func(time.Time) string, value func(*merge.QuestionRecord) (float64, bool)) map[string][]float64 {
	out := make(map[string][]float64)
	for i := range qs {
		q := &qs[i]
		if q.Timestamp.IsZero() {
			continue
		}
		v, ok := value(q)
		if !ok {
			continue
		}
		key := period(q.Timestamp)
		out[key] = append(out[key], v)
	}
	return out
}

func costOf(q *merge.QuestionRecord) (float64, bool) {
	if q.TotalCost == nil {
		return 0, false
	}
	return *q.TotalCost, true
}

func latencyOf(q *merge.QuestionRecord) (float64, bool) {
	if q.Latency == nil || *q.Latency == 0 {
		return 0, false
	}
	return *q.Latency, true
}

// languageOf finds the language tag on a trace, normalized to lower case.
func languageOf(q *merge.QuestionRecord) (string, bool) {
	for _, tag := range q.Tags {
		if cat, value, ok := splitTag(tag); ok && cat == "language" {
			return strings.ToLower(value), true
		}
	}
	return "", false
}

// languageWeekly builds one weekly count series per language for the top n
// languages by total volume, all aligned to the same sorted week labels.
func languageWeekly(qs []merge.QuestionRecord, n int) ([]string, []dto.Series) {
	perLang := make(map[string]map[string]int)
	totals := make(map[string]int)
	weekSet := make(map[string]struct{})
	for i := range qs {
		q := &qs[i]
		if q.Timestamp.IsZero() {
			continue
		}
		lang, ok := languageOf(q)
		if !ok {
			continue
		}
		week := stats.WeekKey(q.Timestamp)
		if perLang[lang] == nil {
			perLang[lang] = make(map[string]int)
		}
		perLang[lang][week]++
		totals[lang]++
		weekSet[week] = struct{}{}
	}
	if len(totals) == 0 {
		return nil, nil
	}

	weeks := sortedKeys(weekSet)
	ranked := rankCounts(totals)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	series := make([]dto.Series, 0, len(ranked))
	for _, r := range ranked {
		values := make([]float64, len(weeks))
		for i, w := range weeks {
			values[i] = float64(perLang[r.Key][w])
		}
		series = append(series, dto.Series{Name: displayName(r.Key), Labels: weeks, Values: values})
	}
	return weeks, series
}

type rankedCount struct {
	Key   string
	Count int
}

// rankCounts orders a count map descending, ties broken alphabetically.
func rankCounts(m map[string]int) []rankedCount {
	out := make([]rankedCount, 0, len(m))
	for k, v := range m {
		out = append(out, rankedCount{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
