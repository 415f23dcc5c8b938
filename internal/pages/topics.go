package pages

import (
	"sort"
	"strconv"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

type topicRow struct {
	id        string
	name      string
	summary   string
	firstSeen time.Time
	isNew     bool
	questions int
}

func buildTopics(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageTopics, "New Topics", "Newly discovered topics and their share of questions")
	k := snap.KPIs
	page.Cards = []dto.Card{
		{Label: "Unique Topics", Value: formatInt(k.UniqueTopics)},
		{Label: "New Topics", Value: formatInt(k.NewTopics)},
	}

	table := snap.Batch.Table(dataset.DatasetTopics)
	if table.NumRows() == 0 {
		page.Tabs = []dto.Tab{{Name: "All Topics", Sections: []dto.Section{
			dto.NoticeSection("warning", "The topics dataset is not available in this upload."),
		}}}
		return page
	}

	rows := collectTopics(snap, table)

	var newest *topicRow
	newQuestions, totalQuestions := 0, 0
	for i := range rows {
		totalQuestions += rows[i].questions
		if !rows[i].isNew {
			continue
		}
		newQuestions += rows[i].questions
		if newest == nil || rows[i].firstSeen.After(newest.firstSeen) {
			newest = &rows[i]
		}
	}
	if newest != nil {
		hint := ""
		if !newest.firstSeen.IsZero() {
			hint = "first seen " + newest.firstSeen.Format("2006-01-02")
		}
		page.Cards = append(page.Cards, dto.Card{Label: "Newest Topic", Value: newest.name, Hint: hint})
	}
	if totalQuestions > 0 {
		share := float64(newQuestions) / float64(totalQuestions) * 100
		page.Cards = append(page.Cards, dto.Card{
			Label: "Questions in New Topics",
			Value: formatInt(newQuestions),
			Hint:  formatPercent(share) + " of all questions",
		})
	}

	all := topicTable(rows, false)
	fresh := topicTable(rows, true)

	newTab := dto.Tab{Name: "New Topics"}
	if len(fresh.Rows) == 0 {
		newTab.Sections = []dto.Section{dto.NoticeSection("info", "No new topics in this upload.")}
	} else {
		newTab.Sections = []dto.Section{dto.TableSection("New Topics", fresh)}
	}

	shareChart := &dto.Chart{
		Type: dto.ChartPie,
		Series: []dto.Series{{
			Name:   "Questions",
			Labels: []string{"New topics", "Established topics"},
			Values: []float64{float64(newQuestions), float64(totalQuestions - newQuestions)},
		}},
	}

	page.Tabs = []dto.Tab{
		{Name: "All Topics", Sections: []dto.Section{dto.TableSection("All Topics", all)}},
		newTab,
		{Name: "Share", Sections: []dto.Section{dto.ChartSection("Question Share", shareChart)}},
	}
	return page
}

// collectTopics walks the topics table, preferring live question counts from
// the merged table over the precomputed question_count column.
func collectTopics(snap *snapshot.Snapshot, table *dataset.Table) []topicRow {
	counts := make(map[string]int)
	for i := range snap.Merged.Questions {
		counts[snap.Merged.Questions[i].TopicID]++
	}

	rows := make([]topicRow, 0, table.NumRows())
	for i := 0; i < table.NumRows(); i++ {
		r := topicRow{
			id:      table.Value(i, "topic_id"),
			name:    table.Value(i, "topic_name"),
			summary: table.Value(i, "summary"),
			isNew:   dataset.ParseBool(table.Value(i, "is_new")),
		}
		if r.name == "" {
			r.name = r.id
		}
		r.firstSeen = merge.ParseTimestamp(table.Value(i, "first_seen"))
		r.questions = counts[r.id]
		if r.questions == 0 {
			if qc, err := strconv.Atoi(table.Value(i, "question_count")); err == nil && qc > 0 {
				r.questions = qc
			}
		}
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].questions != rows[j].questions {
			return rows[i].questions > rows[j].questions
		}
		return rows[i].name < rows[j].name
	})
	return rows
}

func topicTable(rows []topicRow, newOnly bool) *dto.TableData {
	out := &dto.TableData{Columns: []string{"Topic", "Summary", "Questions", "New", "First Seen"}}
	for _, r := range rows {
		if newOnly && !r.isNew {
			continue
		}
		isNew := "no"
		if r.isNew {
			isNew = "yes"
		}
		firstSeen := ""
		if !r.firstSeen.IsZero() {
			firstSeen = r.firstSeen.Format("2006-01-02")
		}
		out.Rows = append(out.Rows, []string{r.name, r.summary, formatInt(r.questions), isNew, firstSeen})
	}
	return out
}
