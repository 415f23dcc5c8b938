package shared

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

func NewID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return prefix + hex.EncodeToString(b)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) String() string {
	return string(t)
}

// ParseTheme accepts the theme names case-insensitively and falls back to
// light for anything it does not recognize.
func ParseTheme(s string) Theme {
	if strings.EqualFold(s, string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}
