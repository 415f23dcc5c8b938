package pages

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

type questionsQuery struct {
	Search      string
	Topic       string
	From        time.Time
	To          time.Time
	HasFeedback *bool
	Limit       int
	Offset      int
}

func parseQuestionsQuery(c echo.Context) questionsQuery {
	query := questionsQuery{
		Search: strings.TrimSpace(c.QueryParam("q")),
		Topic:  strings.TrimSpace(c.QueryParam("topic")),
		Limit:  50,
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 && limit <= 500 {
		query.Limit = limit
	}
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil && offset >= 0 {
		query.Offset = offset
	}
	if from, err := time.Parse("2006-01-02", c.QueryParam("from")); err == nil {
		query.From = from
	}
	if to, err := time.Parse("2006-01-02", c.QueryParam("to")); err == nil {
		// inclusive end of day
		query.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if raw := c.QueryParam("has_feedback"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			query.HasFeedback = &b
		}
	}
	return query
}

func buildQuestions(snap *snapshot.Snapshot, query questionsQuery) *dto.QuestionsResponse {
	matched := make([]*merge.QuestionRecord, 0, snap.Merged.NumRows())
	topicSet := make(map[string]struct{})
	needle := strings.ToLower(query.Search)

	for i := range snap.Merged.Questions {
		q := &snap.Merged.Questions[i]
		if q.TopicName != "" {
			topicSet[q.TopicName] = struct{}{}
		}
		if needle != "" && !strings.Contains(strings.ToLower(q.Input), needle) {
			continue
		}
		if query.Topic != "" && q.TopicName != query.Topic {
			continue
		}
		if !query.From.IsZero() && (q.Timestamp.IsZero() || q.Timestamp.Before(query.From)) {
			continue
		}
		if !query.To.IsZero() && (q.Timestamp.IsZero() || q.Timestamp.After(query.To)) {
			continue
		}
		if query.HasFeedback != nil && q.HasFeedback() != *query.HasFeedback {
			continue
		}
		matched = append(matched, q)
	}

	// newest first, rows without timestamps last
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].Timestamp, matched[j].Timestamp
		if a.IsZero() != b.IsZero() {
			return !a.IsZero()
		}
		return a.After(b)
	})

	total := len(matched)
	start := query.Offset
	if start > total {
		start = total
	}
	end := start + query.Limit
	if end > total {
		end = total
	}

	rows := make([]dto.QuestionRow, 0, end-start)
	for _, q := range matched[start:end] {
		row := dto.QuestionRow{
			TraceID:     q.TraceID,
			Input:       q.Input,
			Topic:       q.TopicName,
			Cost:        q.TotalCost,
			Latency:     q.Latency,
			Tags:        q.Tags,
			HasFeedback: q.HasFeedback(),
			SessionID:   q.SessionID,
			UserID:      q.UserID,
		}
		if !q.Timestamp.IsZero() {
			row.Timestamp = q.Timestamp.UTC().Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	topics := make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	return &dto.QuestionsResponse{
		Page:      PageQuestions,
		Title:     "Questions Table",
		Stamp:     snap.Stamp(),
		Total:     total,
		Limit:     query.Limit,
		Offset:    query.Offset,
		Topics:    topics,
		Questions: rows,
	}
}
