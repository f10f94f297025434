package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/common"
	"golang.org/x/sync/errgroup"
)

// Profile reloads the profile and the history together and prints a
// summary.
func (a *App) Profile(ctx context.Context) error {
	userID := a.currentUserID()
	if userID == "" {
		return common.ErrNotAuthenticated
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := a.profiles.FetchProfile(gctx, userID)
		return err
	})
	g.Go(func() error {
		return a.history.Refetch(gctx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	st := a.session.State()
	if st.User == nil {
		return common.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "Email:      %s\n", st.User.Email)
	if p := st.Profile; p != nil {
		avatar := "(none)"
		if p.AvatarURL != nil {
			avatar = *p.AvatarURL
		}
		fmt.Fprintf(a.out, "Avatar:     %s\n", avatar)
		fmt.Fprintf(a.out, "Member for: %s\n", p.CreatedAt.Format("Jan 2006"))
	} else {
		fmt.Fprintln(a.out, "Profile:    not found")
	}
	fmt.Fprintf(a.out, "Thumbnails: %d\n", a.history.Snapshot().Count)
	return nil
}

// Avatar uploads a new profile picture from a local file.
func (a *App) Avatar(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	path, err := getSimpleText(a.reader, "Image file path", a.out)
	if err != nil {
		return err
	}
	f, err := readAvatarFile(path)
	if err != nil {
		return err
	}

	url, err := a.profiles.ChangeAvatar(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Avatar updated: %s\n", url)
	return nil
}
