package auth

import (
	"context"
	"errors"

	"github.com/orgball2608/photoshare-client/internal/domain"
)

var ErrUnavailable = errors.New("identity provider is not configured")

// Unsubscribe stops delivery of identity changes to one subscriber.
type Unsubscribe func()

// Session exposes the current identity and ordered change notifications.
// Subscribe delivers the current identity immediately, then every change.
// A nil user means signed out.
type Session interface {
	Current() *domain.User
	Subscribe(onChange func(*domain.User)) Unsubscribe
}

// Verifier turns an identity-provider ID token into a signed-in user.
type Verifier interface {
	SignIn(ctx context.Context, idToken string) (*domain.User, error)
	SignOut()
}
