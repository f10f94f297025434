package shared

import (
	"fmt"
	"strings"
)

// Style is the visual direction requested for a thumbnail.
type Style string

const (
	StyleVibrant  Style = "vibrant"
	StyleMinimal  Style = "minimal"
	StyleDramatic Style = "dramatic"
	StylePlayful  Style = "playful"
)

// Styles lists every supported style in display order.
func Styles() []Style {
	return []Style{StyleVibrant, StyleMinimal, StyleDramatic, StylePlayful}
}

// ParseStyle accepts a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	candidate := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Styles() {
		if st == candidate {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown style %q", s)
}
