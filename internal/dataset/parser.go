package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Score is one evaluation entry attached to a trace. Value stays nil when
// the source carried no usable numeric value.
type Score struct {
	Name    string   `json:"name"`
	Value   *float64 `json:"value,omitempty"`
	Comment string   `json:"comment,omitempty"`
}

// The notebook writes score and tag cells in several shapes: JSON lists,
// bare comma-joined strings, and empty markers left by the CSV round-trip.
// Each shape is classified explicitly; unparseable input degrades to empty
// rather than failing the view.

func emptyCell(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "none", "nan", "[]":
		return true
	}
	return false
}

// ParseTags interprets a raw tags cell. JSON string lists decode directly,
// JSON lists of mixed scalars are stringified, and anything that is not JSON
// falls back to a comma split.
func ParseTags(raw string) []string {
	s := strings.TrimSpace(raw)
	if emptyCell(s) {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(s), &tags); err == nil {
			return cleanTags(tags)
		}
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			tags = tags[:0]
			for _, it := range items {
				switch v := it.(type) {
				case string:
					tags = append(tags, v)
				case float64:
					tags = append(tags, strconv.FormatFloat(v, 'f', -1, 64))
				}
			}
			return cleanTags(tags)
		}
	}
	return cleanTags(strings.Split(s, ","))
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseScores interprets a raw scores cell as a JSON list of score objects.
// Items that are not objects are skipped; a cell that is not a JSON list at
// all yields no scores.
func ParseScores(raw string) []Score {
	s := strings.TrimSpace(raw)
	if emptyCell(s) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	scores := make([]Score, 0, len(items))
	for _, item := range items {
		var rs rawScore
		if err := json.Unmarshal(item, &rs); err != nil {
			continue
		}
		if rs.Name == "" && rs.Value == nil && rs.Comment == "" {
			continue
		}
		scores = append(scores, Score{
			Name:    rs.Name,
			Value:   coerceValue(rs.Value),
			Comment: rs.Comment,
		})
	}
	if len(scores) == 0 {
		return nil
	}
	return scores
}

type rawScore struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Comment string `json:"comment"`
}

// ParseBool interprets the truthy spellings the CSV round-trip produces.
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "1", "yes":
		return true
	}
	return false
}

// coerceValue normalizes the duck-typed value field: numbers pass through,
// numeric strings are parsed, booleans map to 1/0, anything else counts as
// absent.
func coerceValue(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return &f
		}
	case bool:
		f := 0.0
		if x {
			f = 1.0
		}
		return &f
	}
	return nil
}
