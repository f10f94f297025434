package models

import (
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

// Style is the visual direction requested for a thumbnail. It is shared
// with the generation service.
type Style = shared.Style

const (
	StyleVibrant  = shared.StyleVibrant
	StyleMinimal  = shared.StyleMinimal
	StyleDramatic = shared.StyleDramatic
	StylePlayful  = shared.StylePlayful
)

// Styles lists every supported style in display order.
func Styles() []Style { return shared.Styles() }

// ParseStyle accepts a style name case-insensitively.
func ParseStyle(s string) (Style, error) { return shared.ParseStyle(s) }

// ThumbnailRecord is a persisted past generation result. Records are
// immutable; id and CreatedAt are assigned by the backend.
type ThumbnailRecord struct {
	ID        string
	UserID    string
	ImageURL  string
	Topic     string
	Context   *string
	Style     Style
	CreatedAt time.Time
}

// NewThumbnail is the insert payload for a ThumbnailRecord.
type NewThumbnail struct {
	UserID   string
	ImageURL string
	Topic    string
	Context  *string
	Style    Style
}
