package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// History refetches and prints the signed-in user's past generations.
func (a *App) History(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	if err := a.history.Refetch(ctx); err != nil {
		return err
	}

	snap := a.history.Snapshot()
	if snap.Count == 0 {
		fmt.Fprintln(a.out, "No thumbnails yet.")
		return nil
	}

	fmt.Fprintf(a.out, "%d thumbnail(s):\n", snap.Count)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCREATED\tSTYLE\tTOPIC\tURL")
	for i, r := range snap.Records {
		topic := r.Topic
		if r.Context != nil {
			topic += " (" + *r.Context + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.CreatedAt.Local().Format(time.DateTime), r.Style, topic, r.ImageURL)
	}
	return tw.Flush()
}
