package pages

import (
	"fmt"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

const noTimestampsMsg = "Timestamps are not available in this upload; time-based charts are hidden."

func buildTrends(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageTrends, "Trends & Analytics", "Question volume, topics, and usage patterns")
	qs := snap.Merged.Questions
	hasTime := snap.Merged.Available(merge.ColTimestamp)

	page.Tabs = []dto.Tab{
		{Name: "Volume", Sections: volumeSections(qs, hasTime)},
		{Name: "Topics", Sections: topicSections(qs)},
		{Name: "Patterns", Sections: patternSections(qs, hasTime)},
		{Name: "Languages", Sections: languageSections(snap, qs, hasTime)},
	}
	return page
}

func volumeSections(qs []merge.QuestionRecord, hasTime bool) []dto.Section {
	if !hasTime {
		return []dto.Section{dto.NoticeSection("info", noTimestampsMsg)}
	}
	dayLabels, dayValues := countsByPeriod(qs, stats.DayKey)
	weekLabels, weekValues := countsByPeriod(qs, stats.WeekKey)
	return []dto.Section{
		dto.ChartSection("Questions per Day", &dto.Chart{
			Type: dto.ChartLine, XLabel: "Day", YLabel: "Questions",
			Series: []dto.Series{{Name: "Questions", Labels: dayLabels, Values: dayValues}},
		}),
		dto.ChartSection("Questions per Week", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Week", YLabel: "Questions",
			Series: []dto.Series{{Name: "Questions", Labels: weekLabels, Values: weekValues}},
		}),
	}
}

func topicSections(qs []merge.QuestionRecord) []dto.Section {
	counts := make(map[string]int)
	for i := range qs {
		counts[qs[i].TopicName]++
	}
	ranked := rankCounts(counts)
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	labels := make([]string, len(ranked))
	values := make([]float64, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Key
		values[i] = float64(r.Count)
	}
	return []dto.Section{
		dto.ChartSection("Top Topics", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Topic", YLabel: "Questions",
			Series: []dto.Series{{Name: "Questions", Labels: labels, Values: values}},
		}),
	}
}

func patternSections(qs []merge.QuestionRecord, hasTime bool) []dto.Section {
	if !hasTime {
		return []dto.Section{dto.NoticeSection("info", noTimestampsMsg)}
	}

	var hours [24]float64
	var days [7]float64
	for i := range qs {
		ts := qs[i].Timestamp
		if ts.IsZero() {
			continue
		}
		hours[ts.Hour()]++
		// Weekday() counts from Sunday; shift so Monday leads
		days[(int(ts.Weekday())+6)%7]++
	}

	hourLabels := make([]string, 24)
	for h := range hourLabels {
		hourLabels[h] = fmt.Sprintf("%02d:00", h)
	}
	dayLabels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	return []dto.Section{
		dto.ChartSection("Questions by Hour of Day", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Hour (UTC)", YLabel: "Questions",
			Series: []dto.Series{{Name: "Questions", Labels: hourLabels, Values: hours[:]}},
		}),
		dto.ChartSection("Questions by Day of Week", &dto.Chart{
			Type: dto.ChartBar, XLabel: "Day", YLabel: "Questions",
			Series: []dto.Series{{Name: "Questions", Labels: dayLabels, Values: days[:]}},
		}),
	}
}

func languageSections(snap *snapshot.Snapshot, qs []merge.QuestionRecord, hasTime bool) []dto.Section {
	if !snap.Merged.Available(merge.ColTags) {
		return []dto.Section{dto.NoticeSection("info", "Tags are not available in this upload; language charts are hidden.")}
	}
	if !hasTime {
		return []dto.Section{dto.NoticeSection("info", noTimestampsMsg)}
	}
	weeks, series := languageWeekly(qs, 5)
	if len(series) == 0 {
		return []dto.Section{dto.NoticeSection("info", "No language tags are present in this upload.")}
	}
	return []dto.Section{
		dto.ChartSection("Questions per Week by Language", &dto.Chart{
			Type: dto.ChartLine, XLabel: "Week", YLabel: "Questions",
			Series: series,
		}),
		dto.NotesSection("Coverage", fmt.Sprintf("Top %d languages over %d weeks.", len(series), len(weeks))),
	}
}
