package authimpl

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/pkg/config"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// tokenClient is the part of the Firebase auth client the verifier uses.
type tokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
	GetUser(ctx context.Context, uid string) (*fbauth.UserRecord, error)
}

type VerifierOpts struct {
	fx.In

	Config   *config.Config
	Logger   logger.Logger
	Provider *Provider
}

// FirebaseVerifier verifies Firebase ID tokens and signs the resulting user in.
type FirebaseVerifier struct {
	client   tokenClient
	provider *Provider
	logger   logger.Logger
}

var _ auth.Verifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(opts VerifierOpts) (*FirebaseVerifier, error) {
	v := &FirebaseVerifier{
		provider: opts.Provider,
		logger:   opts.Logger.WithComponent("FirebaseVerifier"),
	}

	if opts.Config.Firebase.CredentialsFile == "" {
		v.logger.Warn("Firebase credentials not configured, login is disabled")
		return v, nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx,
		&firebase.Config{ProjectID: opts.Config.Firebase.ProjectID},
		option.WithCredentialsFile(opts.Config.Firebase.CredentialsFile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}
	v.client = client

	v.logger.Info("Firebase auth client initialized")
	return v, nil
}

func (v *FirebaseVerifier) SignIn(ctx context.Context, idToken string) (*domain.User, error) {
	if v.client == nil {
		return nil, auth.ErrUnavailable
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	user := &domain.User{UID: token.UID, IDToken: idToken}

	record, err := v.client.GetUser(ctx, token.UID)
	if err != nil {
		v.logger.Warn("Failed to load user profile, continuing without it", "uid", token.UID, "error", err)
	} else if record.UserInfo != nil {
		user.DisplayName = record.DisplayName
		user.AvatarURL = record.PhotoURL
	}

	v.provider.SignIn(user)
	return user, nil
}

func (v *FirebaseVerifier) SignOut() {
	v.provider.SignOut()
}
