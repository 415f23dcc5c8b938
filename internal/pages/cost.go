package pages

import (
	"fmt"

	"github.com/byu-pathway/insights-backend/internal/dto"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
	"github.com/byu-pathway/insights-backend/internal/stats"
)

func buildCost(snap *snapshot.Snapshot) *dto.PageResponse {
	page := basePage(snap, PageCost, "Cost & Performance", "Cost evaluation, latency analysis, and operational metrics")
	k := snap.KPIs
	qs := snap.Merged.Questions
	hasCost := snap.Merged.Available(merge.ColTotalCost)
	hasLatency := snap.Merged.Available(merge.ColLatency)
	hasTime := snap.Merged.Available(merge.ColTimestamp)

	var positiveCosts, latencies []float64
	for i := range qs {
		if v, ok := costOf(&qs[i]); ok && v > 0 {
			positiveCosts = append(positiveCosts, v)
		}
		if v, ok := latencyOf(&qs[i]); ok {
			latencies = append(latencies, v)
		}
	}

	costShare := ""
	if k.TotalQuestions > 0 {
		costShare = formatPercent(float64(k.TracesWithCost)/float64(k.TotalQuestions)*100) + " of traces"
	}
	var p99 *float64
	if v, ok := stats.Quantile(latencies, 0.99); ok {
		p99 = &v
	}

	page.Cards = []dto.Card{
		{Label: "Total Cost", Value: moneyOrNA(k.TotalCost, 2)},
		{Label: "Avg Cost / Question", Value: moneyOrNA(k.AvgCostNonZero, 4), Hint: "non-zero traces"},
		{Label: "Traces with Cost", Value: formatInt(k.TracesWithCost), Hint: costShare},
		{Label: "Avg Latency", Value: secondsOrNA(k.AvgLatencyNonZero), Hint: "non-zero traces"},
		{Label: "Median Latency", Value: secondsOrNA(k.MedianLatency)},
		{Label: "P95 Latency", Value: secondsOrNA(k.P95Latency)},
		{Label: "P99 Latency", Value: secondsOrNA(p99)},
	}

	page.Tabs = []dto.Tab{
		{Name: "Cost Analysis", Sections: costSections(qs, positiveCosts, hasCost, hasTime)},
		{Name: "Latency Analysis", Sections: latencySections(qs, latencies, hasLatency, hasTime)},
		{Name: "Operational Metrics", Sections: operationalSections(qs, latencies, hasCost, hasLatency, hasTime)},
	}
	return page
}

func costSections(qs []merge.QuestionRecord, positive []float64, hasCost, hasTime bool) []dto.Section {
	if !hasCost {
		return []dto.Section{dto.NoticeSection("warning", "Cost data is not available in this upload.")}
	}
	var sections []dto.Section

	if hasTime {
		weekly := valuesByPeriod(qs, stats.WeekKey, costOf)
		weeks := sortedKeys(weekly)
		sums := make([]float64, len(weeks))
		detail := &dto.TableData{Columns: []string{"Week", "Total", "Traces", "Avg", "Max"}}
		for i, week := range weeks {
			values := weekly[week]
			sums[i] = stats.Sum(values)
			avg, _ := stats.Mean(values)
			max, _ := stats.Max(values)
			detail.Rows = append(detail.Rows, []string{
				week,
				formatMoney(sums[i], 2),
				formatInt(len(values)),
				formatMoney(avg, 4),
				formatMoney(max, 4),
			})
		}
		sections = append(sections,
			dto.ChartSection("Weekly Cost", &dto.Chart{
				Type: dto.ChartBar, XLabel: "Week", YLabel: "Cost ($)",
				Series: []dto.Series{{Name: "Cost", Labels: weeks, Values: sums}},
			}),
			dto.TableSection("Weekly Cost Detail", detail),
		)

		daily := valuesByPeriod(qs, stats.DayKey, costOf)
		days := sortedKeys(daily)
		running := make([]float64, len(days))
		total := 0.0
		for i, day := range days {
			total += stats.Sum(daily[day])
			running[i] = total
		}
		sections = append(sections, dto.ChartSection("Cumulative Spend", &dto.Chart{
			Type: dto.ChartLine, XLabel: "Day", YLabel: "Cost ($)",
			Series: []dto.Series{{Name: "Cumulative", Labels: days, Values: running}},
		}))
	} else {
		sections = append(sections, dto.NoticeSection("info", noTimestampsMsg))
	}

	if len(positive) > 0 {
		sections = append(sections, dto.ChartSection("Cost per Question", histogramChart(positive, 20, 4, "Cost ($)", "Traces")))
		notes := []string{}
		if v, ok := stats.Min(positive); ok {
			notes = append(notes, "Min "+formatMoney(v, 4))
		}
		if v, ok := stats.Median(positive); ok {
			notes = append(notes, "Median "+formatMoney(v, 4))
		}
		if v, ok := stats.Mean(positive); ok {
			notes = append(notes, "Mean "+formatMoney(v, 4))
		}
		if v, ok := stats.Max(positive); ok {
			notes = append(notes, "Max "+formatMoney(v, 4))
		}
		sections = append(sections, dto.NotesSection("Cost Distribution", notes...))
	}
	return sections
}

func latencySections(qs []merge.QuestionRecord, latencies []float64, hasLatency, hasTime bool) []dto.Section {
	if !hasLatency {
		return []dto.Section{dto.NoticeSection("warning", "Latency data is not available in this upload.")}
	}
	if len(latencies) == 0 {
		return []dto.Section{dto.NoticeSection("info", "All latency values in this upload are zero.")}
	}
	var sections []dto.Section

	hist := histogramChart(latencies, 30, 2, "Seconds", "Traces")
	for _, pct := range []struct {
		label string
		q     float64
	}{{"P50", 0.50}, {"P95", 0.95}, {"P99", 0.99}} {
		if v, ok := stats.Quantile(latencies, pct.q); ok {
			hist.Markers = append(hist.Markers, dto.Marker{Label: pct.label, Value: v})
		}
	}
	sections = append(sections, dto.ChartSection("Latency Distribution", hist))

	notes := []string{}
	if v, ok := stats.Min(latencies); ok {
		notes = append(notes, "Min "+formatSeconds(v))
	}
	for _, pct := range []struct {
		label string
		q     float64
	}{{"P50", 0.50}, {"P90", 0.90}, {"P95", 0.95}, {"P99", 0.99}} {
		if v, ok := stats.Quantile(latencies, pct.q); ok {
			notes = append(notes, pct.label+" "+formatSeconds(v))
		}
	}
	sections = append(sections, dto.NotesSection("Percentiles", notes...))

	if hasTime {
		daily := valuesByPeriod(qs, stats.DayKey, latencyOf)
		days := sortedKeys(daily)
		avgs := make([]float64, len(days))
		medians := make([]float64, len(days))
		p95s := make([]float64, len(days))
		for i, day := range days {
			avgs[i], _ = stats.Mean(daily[day])
			medians[i], _ = stats.Median(daily[day])
			p95s[i], _ = stats.Quantile(daily[day], 0.95)
		}
		sections = append(sections, dto.ChartSection("Daily Latency", &dto.Chart{
			Type: dto.ChartLine, XLabel: "Day", YLabel: "Seconds",
			Series: []dto.Series{
				{Name: "Avg", Labels: days, Values: avgs},
				{Name: "Median", Labels: days, Values: medians},
				{Name: "P95", Labels: days, Values: p95s},
			},
		}))

		weekly := valuesByPeriod(qs, stats.WeekKey, latencyOf)
		weeks := sortedKeys(weekly)
		weekAvgs := make([]float64, len(weeks))
		weekP95s := make([]float64, len(weeks))
		for i, week := range weeks {
			weekAvgs[i], _ = stats.Mean(weekly[week])
			weekP95s[i], _ = stats.Quantile(weekly[week], 0.95)
		}
		sections = append(sections, dto.ChartSection("Weekly Latency", &dto.Chart{
			Type: dto.ChartLine, XLabel: "Week", YLabel: "Seconds",
			Series: []dto.Series{
				{Name: "Avg", Labels: weeks, Values: weekAvgs},
				{Name: "P95", Labels: weeks, Values: weekP95s},
			},
		}))
	}
	return sections
}

func operationalSections(qs []merge.QuestionRecord, latencies []float64, hasCost, hasLatency, hasTime bool) []dto.Section {
	var sections []dto.Section

	if hasCost && hasTime {
		type weekStat struct {
			questions int
			cost      float64
		}
		perWeek := make(map[string]*weekStat)
		for i := range qs {
			q := &qs[i]
			if q.Timestamp.IsZero() {
				continue
			}
			week := stats.WeekKey(q.Timestamp)
			ws := perWeek[week]
			if ws == nil {
				ws = &weekStat{}
				perWeek[week] = ws
			}
			ws.questions++
			if v, ok := costOf(q); ok {
				ws.cost += v
			}
		}
		weeks := sortedKeys(perWeek)
		points := make([]dto.Point, len(weeks))
		for i, week := range weeks {
			points[i] = dto.Point{
				X:     float64(perWeek[week].questions),
				Y:     perWeek[week].cost,
				Label: week,
			}
		}
		sections = append(sections, dto.ChartSection("Cost vs Volume", &dto.Chart{
			Type: dto.ChartScatter, XLabel: "Questions per week", YLabel: "Cost ($)",
			Series: []dto.Series{{Name: "Weeks", Points: points}},
		}))

		daily := valuesByPeriod(qs, stats.DayKey, costOf)
		if activeDays := len(daily); activeDays > 0 {
			total := 0.0
			for _, values := range daily {
				total += stats.Sum(values)
			}
			monthly := total / float64(activeDays) * 30
			sections = append(sections, dto.NotesSection("Projection",
				fmt.Sprintf("Estimated monthly cost %s based on %d active days.", formatMoney(monthly, 2), activeDays)))
		}
	}

	if hasLatency && len(latencies) > 0 {
		fast, slow := 0, 0
		for _, v := range latencies {
			if v < 1.0 {
				fast++
			}
			if v > 2.0 {
				slow++
			}
		}
		total := float64(len(latencies))
		sections = append(sections, dto.NotesSection("Responsiveness",
			formatPercent(float64(fast)/total*100)+" of traces answered in under 1s.",
			formatPercent(float64(slow)/total*100)+" of traces took over 2s."))
	}

	if len(sections) == 0 {
		sections = append(sections, dto.NoticeSection("info", "Operational metrics need cost or latency data with timestamps."))
	}
	return sections
}

// histogramChart renders equal-width bins as a bar-style histogram with
// range labels.
func histogramChart(values []float64, bins, decimals int, xlabel, ylabel string) *dto.Chart {
	hist := stats.Histogram(values, bins)
	labels := make([]string, len(hist))
	counts := make([]float64, len(hist))
	for i, bin := range hist {
		labels[i] = formatFloat(bin.Low, decimals) + "-" + formatFloat(bin.High, decimals)
		counts[i] = float64(bin.Count)
	}
	return &dto.Chart{
		Type: dto.ChartHistogram, XLabel: xlabel, YLabel: ylabel,
		Series: []dto.Series{{Name: "Count", Labels: labels, Values: counts}},
	}
}
