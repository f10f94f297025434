package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// Generate prompts for topic, optional context and style, then runs one
// generation.
func (a *App) Generate(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}

	topic, err := getSimpleText(a.reader, "Video topic", a.out)
	if err != nil {
		return err
	}
	topicContext, err := getSimpleText(a.reader, "Additional context (optional)", a.out)
	if err != nil {
		return err
	}
	style, err := getSimpleText(a.reader, fmt.Sprintf("Style [%s] (empty for %s)", styleNames(), models.StyleVibrant), a.out)
	if err != nil {
		return err
	}
	if style == "" {
		style = string(models.StyleVibrant)
	}

	fmt.Fprintln(a.out, "Generating...")
	url, err := a.generator.Generate(ctx, topic, topicContext, models.Style(style))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Thumbnail ready: %s\n", url)
	return nil
}

// Gallery lists this session's generated images, newest first.
func (a *App) Gallery(ctx context.Context) error {
	urls := a.generator.Gallery()
	if len(urls) == 0 {
		fmt.Fprintln(a.out, "No thumbnails generated in this session.")
		return nil
	}
	for i, u := range urls {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, u)
	}
	return nil
}

func styleNames() string {
	styles := models.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return strings.Join(names, "|")
}
