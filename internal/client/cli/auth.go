package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
	"github.com/dmitrijs2005/thumbkeeper/internal/common"
)

// Register prompts for email, password and an optional avatar file and
// creates the account. The avatar is attached on a best-effort basis.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	avatarPath, err := getSimpleText(a.reader, "Avatar image path (empty to skip)", a.out)
	if err != nil {
		return err
	}

	var avatar *models.AvatarFile
	if avatarPath != "" {
		if avatar, err = readAvatarFile(avatarPath); err != nil {
			return err
		}
	}

	if err := a.session.SignUp(ctx, email, password, avatar); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created, you are signed in.")
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed in.")
	return nil
}

// Logout signs out. Local state is cleared even if the provider fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "sign-out failed at provider", "error", err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Delete removes the account after the user types "delete" to confirm.
func (a *App) Delete(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	answer, err := getSimpleText(a.reader, "This permanently deletes your avatars, history and profile. Type 'delete' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "delete") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.session.DeleteAccount(ctx); err != nil {
		return err
	}
	a.history.Clear()
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}
