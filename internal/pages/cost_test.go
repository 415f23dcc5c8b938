package pages

import (
	"strings"
	"testing"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/dto"
)

func TestBuildCost_Cards(t *testing.T) {
	snap := testSnapshot(t)
	page := buildCost(snap)

	if card := findCard(t, page.Cards, "Total Cost"); card.Value != "$0.01" {
		t.Errorf("Total Cost = %q", card.Value)
	}
	if card := findCard(t, page.Cards, "Avg Cost / Question"); card.Value != "$0.0020" {
		t.Errorf("Avg Cost = %q", card.Value)
	}
	card := findCard(t, page.Cards, "Traces with Cost")
	if card.Value != "3" || card.Hint != "75.0% of traces" {
		t.Errorf("Traces with Cost = %q (%q)", card.Value, card.Hint)
	}
	if card := findCard(t, page.Cards, "Median Latency"); card.Value != "1.80s" {
		t.Errorf("Median Latency = %q", card.Value)
	}
	for _, label := range []string{"Avg Latency", "P95 Latency", "P99 Latency"} {
		if card := findCard(t, page.Cards, label); card.Value == "N/A" {
			t.Errorf("%s = N/A with latency data present", label)
		}
	}
}

func TestBuildCost_WeeklyCost(t *testing.T) {
	snap := testSnapshot(t)
	page := buildCost(snap)

	tab := findTab(t, page.Tabs, "Cost Analysis")
	chart := tab.Sections[0].Chart
	if chart == nil || chart.Type != dto.ChartBar {
		t.Fatalf("weekly chart = %+v", tab.Sections[0])
	}
	labels := chart.Series[0].Labels
	if len(labels) != 2 || labels[0] != "2025-W02" || labels[1] != "2025-W03" {
		t.Fatalf("weekly labels = %v", labels)
	}
	if chart.Series[0].Values[0] <= chart.Series[0].Values[1] {
		t.Errorf("W02 should cost more than W03: %v", chart.Series[0].Values)
	}

	table := tab.Sections[1].Table
	if table == nil {
		t.Fatal("no weekly detail table")
	}
	if table.Rows[0][2] != "2" || table.Rows[1][2] != "1" {
		t.Errorf("trace counts = %q, %q", table.Rows[0][2], table.Rows[1][2])
	}
	if table.Rows[0][4] != "$0.0030" {
		t.Errorf("W02 max = %q", table.Rows[0][4])
	}
}

func TestBuildCost_Cumulative(t *testing.T) {
	snap := testSnapshot(t)
	page := buildCost(snap)

	tab := findTab(t, page.Tabs, "Cost Analysis")
	var cumulative *dto.Chart
	for _, s := range tab.Sections {
		if s.Title == "Cumulative Spend" {
			cumulative = s.Chart
		}
	}
	if cumulative == nil {
		t.Fatal("no cumulative chart")
	}
	values := cumulative.Series[0].Values
	if len(values) != 3 {
		t.Fatalf("cumulative points = %d, want 3", len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Errorf("cumulative spend decreased at %d: %v", i, values)
		}
	}
}

func TestBuildCost_LatencyHistogram(t *testing.T) {
	snap := testSnapshot(t)
	page := buildCost(snap)

	tab := findTab(t, page.Tabs, "Latency Analysis")
	hist := tab.Sections[0].Chart
	if hist == nil || hist.Type != dto.ChartHistogram {
		t.Fatalf("latency histogram = %+v", tab.Sections[0])
	}
	total := 0.0
	for _, v := range hist.Series[0].Values {
		total += v
	}
	if total != 4 {
		t.Errorf("histogram counts sum = %v, want 4", total)
	}
	if len(hist.Markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(hist.Markers))
	}
	if hist.Markers[0].Label != "P50" || hist.Markers[2].Label != "P99" {
		t.Errorf("marker labels = %v", hist.Markers)
	}
	// percentiles are monotone
	if hist.Markers[0].Value > hist.Markers[1].Value || hist.Markers[1].Value > hist.Markers[2].Value {
		t.Errorf("markers not monotone: %v", hist.Markers)
	}
}

func TestBuildCost_Operational(t *testing.T) {
	snap := testSnapshot(t)
	page := buildCost(snap)

	tab := findTab(t, page.Tabs, "Operational Metrics")

	var scatter *dto.Chart
	var notes []string
	for _, s := range tab.Sections {
		if s.Kind == dto.SectionChart && s.Chart.Type == dto.ChartScatter {
			scatter = s.Chart
		}
		if s.Kind == dto.SectionNotes {
			notes = append(notes, s.Notes...)
		}
	}
	if scatter == nil {
		t.Fatal("no cost-vs-volume scatter")
	}
	points := scatter.Series[0].Points
	if len(points) != 2 {
		t.Fatalf("scatter points = %d, want 2", len(points))
	}
	if points[0].X != 2 || points[0].Label != "2025-W02" {
		t.Errorf("first point = %+v", points[0])
	}

	joined := strings.Join(notes, "\n")
	if !strings.Contains(joined, "3 active days") {
		t.Errorf("projection note missing: %q", joined)
	}
	if !strings.Contains(joined, "25.0% of traces answered in under 1s.") {
		t.Errorf("fast share note missing: %q", joined)
	}
	if !strings.Contains(joined, "50.0% of traces took over 2s.") {
		t.Errorf("slow share note missing: %q", joined)
	}
}

func TestBuildCost_NoCostColumn(t *testing.T) {
	batch := testBatch()
	dropColumn(t, batch.Tables[dataset.DatasetQuestions], "total_cost")
	page := buildCost(buildSnapshot(t, batch))

	if card := findCard(t, page.Cards, "Total Cost"); card.Value != "N/A" {
		t.Errorf("Total Cost = %q, want N/A", card.Value)
	}
	tab := findTab(t, page.Tabs, "Cost Analysis")
	notice := firstNotice(tab.Sections)
	if notice == nil || notice.Level != "warning" {
		t.Errorf("notice = %+v", notice)
	}
	// latency analysis is unaffected
	latency := findTab(t, page.Tabs, "Latency Analysis")
	if latency.Sections[0].Chart == nil {
		t.Error("latency histogram missing")
	}
}

func TestBuildCost_NoLatencyColumn(t *testing.T) {
	batch := testBatch()
	dropColumn(t, batch.Tables[dataset.DatasetQuestions], "latency")
	page := buildCost(buildSnapshot(t, batch))

	if card := findCard(t, page.Cards, "P95 Latency"); card.Value != "N/A" {
		t.Errorf("P95 Latency = %q, want N/A", card.Value)
	}
	tab := findTab(t, page.Tabs, "Latency Analysis")
	if notice := firstNotice(tab.Sections); notice == nil {
		t.Error("expected a notice without latency data")
	}
}
