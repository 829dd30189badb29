package commandimpl

import (
	"context"
	"errors"

	"github.com/orgball2608/photoshare-client/internal/auth"
)

func (c *CommandImpl) handleLogin(ctx context.Context, idToken string) {
	if idToken == "" {
		c.out.println("Please enter an ID token. Example: login <idToken>")
		return
	}

	user, err := c.Verifier.SignIn(ctx, idToken)
	if err != nil {
		if errors.Is(err, auth.ErrUnavailable) {
			c.out.println("Sign-in is not configured.")
			return
		}
		c.Logger.Warn("Sign-in failed", "error", err)
		c.out.println("Sign-in failed. Please try again.")
		return
	}

	c.out.printf("Signed in as %s.\n", displayName(user.DisplayName, user.UID))
}

func (c *CommandImpl) handleLogout() {
	c.Verifier.SignOut()
	c.out.println("Signed out.")
}

func (c *CommandImpl) handleWhoami() {
	user := c.Session.Current()
	if user == nil {
		c.out.println("Not signed in.")
		return
	}
	c.out.printf("%s (%s)\n", displayName(user.DisplayName, user.UID), user.UID)
}

func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
