package shared

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		prefix string
	}{
		{prefix: "snap_"},
		{prefix: "report_"},
		{prefix: ""},
	}

	for _, tt := range tests {
		t.Run("prefix_"+tt.prefix, func(t *testing.T) {
			id := NewID(tt.prefix)
			if !strings.HasPrefix(id, tt.prefix) {
				t.Errorf("expected ID to start with '%s', got '%s'", tt.prefix, id)
			}
			expectedLen := len(tt.prefix) + 32
			if len(id) != expectedLen {
				t.Errorf("expected length %d, got %d", expectedLen, len(id))
			}
		})
	}

	id1 := NewID("snap_")
	id2 := NewID("snap_")
	if id1 == id2 {
		t.Error("expected unique IDs, got duplicates")
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input    string
		expected Theme
	}{
		{"light", ThemeLight},
		{"dark", ThemeDark},
		{"Dark", ThemeDark},
		{"DARK", ThemeDark},
		{"", ThemeLight},
		{"sepia", ThemeLight},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			if got := ParseTheme(tt.input); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTheme_String(t *testing.T) {
	if ThemeLight.String() != "light" {
		t.Errorf("expected 'light', got '%s'", ThemeLight.String())
	}
	if ThemeDark.String() != "dark" {
		t.Errorf("expected 'dark', got '%s'", ThemeDark.String())
	}
}
