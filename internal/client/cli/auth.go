package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/authstate"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and password and creates the
// account. The session is not changed; log in afterwards.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	user, err := a.services.Auth.Register(ctx, models.Registration{
		Email:    email,
		Username: username,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d), you can login now\n", user.Email, user.ID)
	return nil
}

// Login authenticates with the email given as argument or prompted for,
// then loads the campaign list.
func (a *App) Login(ctx context.Context, args []string) error {
	var (
		email string
		err   error
	)
	if len(args) > 0 {
		email = args[0]
	} else if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	user, err := a.services.Auth.Login(ctx, email, password)
	switch {
	case errors.Is(err, services.ErrNotPersisted):
		a.logger.Warn(ctx, "login will not survive a restart", "error", err)
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)

	a.campaigns.Clear()
	if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
		return err
	}
	if n := len(a.campaigns.Campaigns()); n > 0 {
		fmt.Fprintf(a.out, "%d campaign(s), pick one with 'use <id>'\n", n)
	}
	return nil
}

// Logout forgets the session and the selected campaign.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.campaigns.Clear()
	if err := a.services.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI refreshes the profile from the server and shows when the token
// expires.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	user, err := a.services.Auth.Me(ctx)
	if err != nil && !errors.Is(err, services.ErrNotPersisted) {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", user.Username, user.Email, user.ID)

	info, err := authstate.InspectToken(a.session.Token())
	if err != nil {
		a.logger.Debug(ctx, "token is not a readable JWT", "error", err)
		return nil
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token expires %s (in %s)\n",
			info.ExpiresAt.Local().Format(time.DateTime), time.Until(info.ExpiresAt).Round(time.Minute))
	}
	return nil
}
