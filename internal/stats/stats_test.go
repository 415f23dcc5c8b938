package stats

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSum(t *testing.T) {
	if got := Sum(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
	if got := Sum([]float64{0.001, 0.002, 0.0}); !almostEqual(got, 0.003) {
		t.Errorf("expected 0.003, got %v", got)
	}
}

func TestMean(t *testing.T) {
	if _, ok := Mean(nil); ok {
		t.Error("expected ok=false for empty input")
	}
	got, ok := Mean([]float64{1, 2, 3})
	if !ok || !almostEqual(got, 2) {
		t.Errorf("expected 2, got %v (ok=%v)", got, ok)
	}
}

func TestMinMax(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5}

	lo, ok := Min(values)
	if !ok || lo != 1 {
		t.Errorf("expected min 1, got %v", lo)
	}
	hi, ok := Max(values)
	if !ok || hi != 5 {
		t.Errorf("expected max 5, got %v", hi)
	}

	if _, ok := Min(nil); ok {
		t.Error("expected ok=false for empty min")
	}
	if _, ok := Max(nil); ok {
		t.Error("expected ok=false for empty max")
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{"median of even count interpolates", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"median of odd count", []float64{1, 2, 3}, 0.5, 2},
		{"p0 is min", []float64{5, 1, 3}, 0, 1},
		{"p100 is max", []float64{5, 1, 3}, 1, 5},
		{"single element", []float64{7}, 0.95, 7},
		{"p90 interpolated", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
		{"clamped above 1", []float64{1, 2}, 1.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Quantile(tt.values, tt.q)
			if !ok {
				t.Fatal("expected ok=true")
			}
			if !almostEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	if _, ok := Quantile(nil, 0.5); ok {
		t.Error("expected ok=false for empty input")
	}
}

func TestQuantile_Monotonic(t *testing.T) {
	series := [][]float64{
		{1.2},
		{0.5, 0.5, 0.5},
		{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5},
		{100, 0.001, 42, 7, 7, 7, 19},
	}

	for _, values := range series {
		p50, _ := Quantile(values, 0.50)
		p90, _ := Quantile(values, 0.90)
		p95, _ := Quantile(values, 0.95)
		p99, _ := Quantile(values, 0.99)
		if p50 > p90 || p90 > p95 || p95 > p99 {
			t.Errorf("expected P50<=P90<=P95<=P99, got %v %v %v %v for %v", p50, p90, p95, p99, values)
		}
	}
}

func TestQuantile_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("expected input untouched, got %v", values)
	}
}

func TestMedian(t *testing.T) {
	got, ok := Median([]float64{2.0, 1.0})
	if !ok || !almostEqual(got, 1.5) {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestNonZero(t *testing.T) {
	got := NonZero([]float64{1.0, 2.0, 0.0})
	if len(got) != 2 {
		t.Fatalf("expected 2 values, got %d", len(got))
	}
	m, _ := Mean(got)
	if !almostEqual(m, 1.5) {
		t.Errorf("expected mean 1.5, got %v", m)
	}

	if got := NonZero([]float64{0, 0}); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestCountDistinct(t *testing.T) {
	if got := CountDistinct([]string{"a", "b", "a", "", "c", "b"}); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := CountDistinct(nil); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}
	bins := Histogram(values, 5)
	if len(bins) != 5 {
		t.Fatalf("expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != len(values) {
		t.Errorf("expected bin counts to sum to %d, got %d", len(values), total)
	}
	if !almostEqual(bins[0].Low, 0) || !almostEqual(bins[4].High, 10) {
		t.Errorf("expected range [0,10], got [%v,%v]", bins[0].Low, bins[4].High)
	}
}

func TestHistogram_Degenerate(t *testing.T) {
	if got := Histogram(nil, 10); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := Histogram([]float64{1, 2}, 0); got != nil {
		t.Errorf("expected nil for zero bins, got %v", got)
	}

	bins := Histogram([]float64{2, 2, 2}, 4)
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Errorf("expected single collapsed bin, got %v", bins)
	}
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2025, 1, 14, 9, 30, 0, 0, time.UTC)
	if got := DayKey(ts); got != "2025-01-14" {
		t.Errorf("expected '2025-01-14', got '%s'", got)
	}
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name     string
		ts       time.Time
		expected string
	}{
		{"mid year", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), "2025-W03"},
		{"year boundary forward", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
		{"year boundary backward", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2020-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekKey(tt.ts); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
