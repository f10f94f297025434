// Package render turns a generation request into a PNG thumbnail.
package render

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/shared"
)

// Thumbnail dimensions (16:9, YouTube recommended size).
const (
	Width  = 1280
	Height = 720
)

// Prompt is a normalized generation request plus the text prompt sent to
// image models.
type Prompt struct {
	Topic   string
	Context string
	Style   shared.Style
	Text    string
}

var styleDirections = map[shared.Style]string{
	shared.StyleVibrant:  "bold saturated colors, high contrast, energetic lighting",
	shared.StyleMinimal:  "clean composition, generous negative space, a restrained two-color palette",
	shared.StyleDramatic: "cinematic lighting, deep shadows, moody atmosphere",
	shared.StylePlayful:  "bright cartoon-like shapes, rounded forms, a fun and friendly mood",
}

// BuildPrompt describes a 16:9 video thumbnail for topic in style.
func BuildPrompt(topic, topicContext string, style shared.Style) Prompt {
	topic = strings.TrimSpace(topic)
	topicContext = strings.TrimSpace(topicContext)

	var b strings.Builder
	fmt.Fprintf(&b, "Create an eye-catching YouTube video thumbnail in a wide 16:9 landscape frame for a video about %q.", topic)
	if topicContext != "" {
		fmt.Fprintf(&b, " Additional context: %s.", topicContext)
	}
	fmt.Fprintf(&b, " Visual style: %s.", styleDirections[style])
	b.WriteString(" Keep one clear focal subject that reads well at small sizes. Do not add watermarks or logos.")

	return Prompt{Topic: topic, Context: topicContext, Style: style, Text: b.String()}
}
