package pages

import (
	"strconv"
	"strings"
)

func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func formatFloat(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatMoney(v float64, decimals int) string {
	return "$" + formatFloat(v, decimals)
}

func formatSeconds(v float64) string {
	return formatFloat(v, 2) + "s"
}

func formatPercent(v float64) string {
	return formatFloat(v, 1) + "%"
}

// moneyOrNA and friends render optional aggregates, keeping N/A visually
// distinct from a real zero.

func moneyOrNA(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return formatMoney(*v, decimals)
}

func secondsOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatSeconds(*v)
}

func floatOrNA(v *float64, decimals int) string {
	if v == nil {
		return "N/A"
	}
	return formatFloat(*v, decimals)
}

func truncateID(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// splitTag splits "category: value" tags. Tags without a category prefix
// report ok=false.
func splitTag(tag string) (category, value string, ok bool) {
	idx := strings.Index(tag, ":")
	if idx < 0 {
		return "", "", false
	}
	category = strings.ToLower(strings.TrimSpace(tag[:idx]))
	value = strings.TrimSpace(tag[idx+1:])
	if category == "" || value == "" {
		return "", "", false
	}
	return category, value, true
}

func displayName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
