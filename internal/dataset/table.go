package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Dataset names the analysis notebook produces, one CSV per dataset per
// upload batch.
const (
	DatasetQuestions       = "questions"
	DatasetTopics          = "topics"
	DatasetFeedback        = "feedback"
	DatasetGeneralFeedback = "general_feedback"
)

var AllDatasets = []string{
	DatasetQuestions,
	DatasetTopics,
	DatasetFeedback,
	DatasetGeneralFeedback,
}

func KnownDataset(name string) bool {
	for _, d := range AllDatasets {
		if d == name {
			return true
		}
	}
	return false
}

// Table is one parsed CSV file: a header row plus string cells. Typed
// interpretation happens at merge time, not here.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Value returns the cell at (row, column), or "" when either does not exist.
func (t *Table) Value(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// ReadTable parses one dataset CSV. Rows are normalized to the header width
// so cell lookups never go out of range; an empty file yields an empty table.
func ReadTable(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		if len(rec) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, rec)
			rec = padded
		} else if len(rec) > len(columns) {
			rec = rec[:len(columns)]
		}
		rows = append(rows, rec)
	}

	return &Table{Name: name, Columns: columns, Rows: rows}, nil
}
