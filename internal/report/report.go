// Package report renders the plain-text diagnostic download. Everything is
// built from the in-memory snapshot and last-error state; generating a report
// never touches the object store.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/byu-pathway/insights-backend/internal/dataset"
	"github.com/byu-pathway/insights-backend/internal/merge"
	"github.com/byu-pathway/insights-backend/internal/snapshot"
)

// Build renders the report text. Either argument may be nil: a fresh process
// has no snapshot, a healthy one has no failure.
func Build(snap *snapshot.Snapshot, failure *snapshot.LoadFailure, now time.Time) string {
	var b strings.Builder
	b.WriteString("INSIGHTS DASHBOARD DIAGNOSTIC REPORT\n")
	b.WriteString("====================================\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format(time.RFC3339))

	writeFailure(&b, failure)
	if snap == nil {
		b.WriteString("SNAPSHOT\n--------\nNo snapshot has been loaded.\n")
		return b.String()
	}

	writeSnapshot(&b, snap, now)
	writeDatasets(&b, snap.Batch)
	writeMerged(&b, snap.Merged)
	writeKPIs(&b, snap)
	return b.String()
}

func writeFailure(b *strings.Builder, failure *snapshot.LoadFailure) {
	if failure == nil {
		return
	}
	b.WriteString("LAST LOAD ERROR\n---------------\n")
	fmt.Fprintf(b, "At:    %s\n", failure.At.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "Error: %v\n\n", failure.Err)
}

func writeSnapshot(b *strings.Builder, snap *snapshot.Snapshot, now time.Time) {
	b.WriteString("SNAPSHOT\n--------\n")
	fmt.Fprintf(b, "Batch stamp: %s\n", snap.Stamp())
	if !snap.Batch.Timestamp.IsZero() {
		fmt.Fprintf(b, "Data timestamp: %s\n", snap.Batch.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(b, "Loaded at: %s (age %s)\n", snap.LoadedAt.UTC().Format(time.RFC3339), snap.Age(now).Round(time.Second))
	fmt.Fprintf(b, "From cache: %v\n\n", snap.FromCache)
}

func writeDatasets(b *strings.Builder, batch *dataset.Batch) {
	b.WriteString("DATASETS\n--------\n")
	for _, name := range dataset.AllDatasets {
		table := batch.Table(name)
		if table == nil {
			fmt.Fprintf(b, "%s: not in batch\n", name)
			continue
		}
		key := ""
		for _, obj := range batch.Objects {
			if obj.Dataset == name {
				key = fmt.Sprintf(" [%s, %d bytes]", obj.Key, obj.Size)
			}
		}
		fmt.Fprintf(b, "%s: %d rows x %d columns%s\n", name, table.NumRows(), table.NumCols(), key)
		fmt.Fprintf(b, "  columns: %s\n", strings.Join(table.Columns, ", "))
	}
	b.WriteString("\n")
}

func writeMerged(b *strings.Builder, merged *merge.MergedTable) {
	b.WriteString("MERGED TABLE\n------------\n")
	fmt.Fprintf(b, "Rows: %d\n", merged.NumRows())

	nulls := map[string]int{}
	for i := range merged.Questions {
		q := &merged.Questions[i]
		if q.Timestamp.IsZero() {
			nulls[merge.ColTimestamp]++
		}
		if q.TotalCost == nil {
			nulls[merge.ColTotalCost]++
		}
		if q.Latency == nil {
			nulls[merge.ColLatency]++
		}
		if q.SessionID == "" {
			nulls[merge.ColSessionID]++
		}
		if q.UserID == "" {
			nulls[merge.ColUserID]++
		}
		if len(q.Scores) == 0 {
			nulls[merge.ColScores]++
		}
		if len(q.Tags) == 0 {
			nulls[merge.ColTags]++
		}
	}

	columns := []string{
		merge.ColTimestamp, merge.ColTotalCost, merge.ColLatency,
		merge.ColSessionID, merge.ColUserID, merge.ColScores, merge.ColTags,
	}
	for _, col := range columns {
		state := "available"
		if !merged.Available(col) {
			state = "unavailable"
		}
		fmt.Fprintf(b, "%-12s %-12s %d null\n", col, state, nulls[col])
	}
	b.WriteString("\n")
}

func writeKPIs(b *strings.Builder, snap *snapshot.Snapshot) {
	b.WriteString("KPIS\n----\n")
	data, err := json.MarshalIndent(snap.KPIs, "", "  ")
	if err != nil {
		fmt.Fprintf(b, "marshal failed: %v\n", err)
		return
	}
	b.Write(data)
	b.WriteString("\n")
}
