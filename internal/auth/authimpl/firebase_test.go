package authimpl

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenClientStub struct {
	verifyFn  func(ctx context.Context, idToken string) (*fbauth.Token, error)
	getUserFn func(ctx context.Context, uid string) (*fbauth.UserRecord, error)
}

func (s *tokenClientStub) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return s.verifyFn(ctx, idToken)
}

func (s *tokenClientStub) GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error) {
	return s.getUserFn(ctx, uid)
}

func TestFirebaseVerifier_SignInPublishesUser(t *testing.T) {
	p := newProvider()
	v := &FirebaseVerifier{
		provider: p,
		logger:   logger.Nop(),
		client: &tokenClientStub{
			verifyFn: func(_ context.Context, idToken string) (*fbauth.Token, error) {
				assert.Equal(t, "id-token", idToken)
				return &fbauth.Token{UID: "u1"}, nil
			},
			getUserFn: func(_ context.Context, uid string) (*fbauth.UserRecord, error) {
				return &fbauth.UserRecord{UserInfo: &fbauth.UserInfo{
					UID:         uid,
					DisplayName: "Aki",
					PhotoURL:    "https://cdn.example.com/aki.png",
				}}, nil
			},
		},
	}

	user, err := v.SignIn(context.Background(), "id-token")
	require.NoError(t, err)

	assert.Equal(t, "u1", user.UID)
	assert.Equal(t, "Aki", user.DisplayName)
	assert.Equal(t, "id-token", user.IDToken)
	require.NotNil(t, p.Current())
	assert.Equal(t, "https://cdn.example.com/aki.png", p.Current().AvatarURL)
}

func TestFirebaseVerifier_RejectedTokenLeavesSessionEmpty(t *testing.T) {
	p := newProvider()
	v := &FirebaseVerifier{
		provider: p,
		logger:   logger.Nop(),
		client: &tokenClientStub{
			verifyFn: func(context.Context, string) (*fbauth.Token, error) {
				return nil, errors.New("token expired")
			},
		},
	}

	_, err := v.SignIn(context.Background(), "stale")
	require.Error(t, err)
	assert.Nil(t, p.Current())
}

func TestFirebaseVerifier_ProfileLookupFailureStillSignsIn(t *testing.T) {
	p := newProvider()
	v := &FirebaseVerifier{
		provider: p,
		logger:   logger.Nop(),
		client: &tokenClientStub{
			verifyFn: func(context.Context, string) (*fbauth.Token, error) {
				return &fbauth.Token{UID: "u1"}, nil
			},
			getUserFn: func(context.Context, string) (*fbauth.UserRecord, error) {
				return nil, errors.New("quota exceeded")
			},
		},
	}

	user, err := v.SignIn(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UID)
	assert.Empty(t, user.DisplayName)
}

func TestFirebaseVerifier_UnconfiguredIsUnavailable(t *testing.T) {
	v := &FirebaseVerifier{provider: newProvider(), logger: logger.Nop()}

	_, err := v.SignIn(context.Background(), "tok")
	assert.ErrorIs(t, err, auth.ErrUnavailable)
}
