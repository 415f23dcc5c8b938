package pages

import (
	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

type weekAgg struct {
	questions   int
	topics      map[string]struct{}
	topicCounts map[string]int
	costs       []float64
	latencies   []float64
}

func buildWeekly(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageWeekly, "Weekly Insights", "Week-by-week activity summary")
	if !snap.Merged.Available(merge.ColTimestamp) {
		page.Tabs = []dto.Tab{{Name: "Summary", Sections: []dto.Section{
			dto.NoticeSection("warning", noTimestampsMsg),
		}}}
		return page
	}

	qs := snap.Merged.Questions
	hasCost := snap.Merged.Available(merge.ColTotalCost)
	hasLatency := snap.Merged.Available(merge.ColLatency)

	aggs := make(map[string]*weekAgg)
	for i := range qs {
		q := &qs[i]
		if q.Timestamp.IsZero() {
			continue
		}
		week := stats.WeekKey(q.Timestamp)
		agg := aggs[week]
		if agg == nil {
			agg = &weekAgg{topics: make(map[string]struct{}), topicCounts: make(map[string]int)}
			aggs[week] = agg
		}
		agg.questions++
		if q.TopicName != "" {
			agg.topics[q.TopicName] = struct{}{}
			agg.topicCounts[q.TopicName]++
		}
		if v, ok := costOf(q); ok {
			agg.costs = append(agg.costs, v)
		}
		if v, ok := latencyOf(q); ok {
			agg.latencies = append(agg.latencies, v)
		}
	}

	weeks := sortedKeys(aggs)

	columns := []string{"Week", "Questions", "Active Topics"}
	if hasCost {
		columns = append(columns, "Total Cost")
	}
	if hasLatency {
		columns = append(columns, "Avg Latency")
	}

	summary := &dto.TableData{Columns: columns}
	topTopics := &dto.TableData{Columns: []string{"Week", "Top Topic", "Questions"}}
	volume := make([]float64, len(weeks))

	for i, week := range weeks {
		agg := aggs[week]
		volume[i] = float64(agg.questions)

		row := []string{week, formatInt(agg.questions), formatInt(len(agg.topics))}
		if hasCost {
			row = append(row, formatMoney(stats.Sum(agg.costs), 2))
		}
		if hasLatency {
			if avg, ok := stats.Mean(agg.latencies); ok {
				row = append(row, formatSeconds(avg))
			} else {
				row = append(row, "N/A")
			}
		}
		summary.Rows = append(summary.Rows, row)

		if ranked := rankCounts(agg.topicCounts); len(ranked) > 0 {
			topTopics.Rows = append(topTopics.Rows, []string{
				week, ranked[0].Key, formatInt(ranked[0].Count),
			})
		}
	}

	page.Tabs = []dto.Tab{
		{Name: "Summary", Sections: []dto.Section{
			dto.ChartSection("Questions per Week", &dto.Chart{
				Type: dto.ChartBar, XLabel: "Week", YLabel: "Questions",
				Series: []dto.Series{{Name: "Questions", Labels: weeks, Values: volume}},
			}),
			dto.TableSection("Weekly Summary", summary),
		}},
		{Name: "Topics by Week", Sections: []dto.Section{
			dto.TableSection("Most Active Topic per Week", topTopics),
		}},
	}
	return page
}
