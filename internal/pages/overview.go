package pages

import (
	"fmt"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

func buildOverview(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageOverview, "Overview", "Key metrics at a glance")
	k := snap.KPIs

	page.Cards = []dto.Card{
		{Label: "Total Questions", Value: formatInt(k.TotalQuestions)},
		{Label: "Unique Topics", Value: formatInt(k.UniqueTopics)},
		{Label: "New Topics", Value: formatInt(k.NewTopics)},
		{Label: "Total Cost", Value: moneyOrNA(k.TotalCost, 2), Hint: avgCostHint(k.AvgCostNonZero)},
		{Label: "Avg Latency", Value: secondsOrNA(k.AvgLatencyNonZero), Hint: "non-zero traces"},
		{Label: "Feedback Entries", Value: formatInt(k.FeedbackEntries)},
		{Label: "Unique Users", Value: formatInt(k.UniqueUsers)},
		{Label: "Unique Sessions", Value: formatInt(k.UniqueSessions), Hint: sessionHint(k.AvgQuestionsPerSession)},
		{Label: "General Feedback", Value: formatInt(k.GeneralFeedbackCount)},
	}

	inventory := &dto.TableData{Columns: []string{"Dataset", "Rows", "Columns", "Object Key", "Size (bytes)"}}
	for _, name := range dataset.AllDatasets {
		table := snap.Batch.Table(name)
		if table == nil {
			inventory.Rows = append(inventory.Rows, []string{name, "-", "-", "not in batch", "-"})
			continue
		}
		key, size := "", int64(0)
		for _, obj := range snap.Batch.Objects {
			if obj.Dataset == name {
				key, size = obj.Key, obj.Size
			}
		}
		inventory.Rows = append(inventory.Rows, []string{
			name,
			formatInt(table.NumRows()),
			formatInt(table.NumCols()),
			key,
			formatInt(int(size)),
		})
	}

	notes := []string{
		fmt.Sprintf("Upload batch %s, fetched %s.", snap.Batch.Stamp, snap.Batch.FetchedAt.UTC().Format(time.RFC3339)),
	}
	if !snap.Batch.Timestamp.IsZero() {
		notes = append(notes, fmt.Sprintf("Data timestamp: %s.", snap.Batch.Timestamp.Format("2006-01-02 15:04:05 MST")))
	}
	if k.FirstQuestion != nil && k.LastQuestion != nil {
		notes = append(notes, fmt.Sprintf("Questions span %s to %s.",
			k.FirstQuestion.Format("2006-01-02"), k.LastQuestion.Format("2006-01-02")))
	}
	if snap.FromCache {
		notes = append(notes, "Served from the batch cache; use refresh to force a new fetch.")
	}

	page.Tabs = []dto.Tab{{
		Name: "Data",
		Sections: []dto.Section{
			dto.TableSection("Loaded Datasets", inventory),
			dto.NotesSection("Batch", notes...),
		},
	}}
	return page
}

func avgCostHint(avg *float64) string {
	if avg == nil {
		return ""
	}
	return moneyOrNA(avg, 4) + " per question"
}

func sessionHint(avg *float64) string {
	if avg == nil {
		return ""
	}
	return floatOrNA(avg, 1) + " questions per session"
}
