package commandimpl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/photoshare-client/internal/auth/authimpl"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/gallery"
	"github.com/orgball2608/photoshare-client/internal/layout"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	mock_photoapi "github.com/orgball2608/photoshare-client/internal/photoapi/mocks"
	"github.com/orgball2608/photoshare-client/internal/repositories/uploads"
	mock_telegram "github.com/orgball2608/photoshare-client/internal/telegram/mocks"
	"github.com/orgball2608/photoshare-client/internal/upload"
	"github.com/orgball2608/photoshare-client/pkg/config"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01}

type verifierStub struct {
	provider *authimpl.Provider
}

func (v *verifierStub) SignIn(_ context.Context, idToken string) (*domain.User, error) {
	if idToken != "good" {
		return nil, assert.AnError
	}
	user := &domain.User{UID: "u1", DisplayName: "Ann", IDToken: idToken}
	v.provider.SignIn(user)
	return user, nil
}

func (v *verifierStub) SignOut() {
	v.provider.SignOut()
}

type staticViewport int

func (v staticViewport) Width() int                { return int(v) }
func (v staticViewport) OnResize(func(int)) func() { return func() {} }

func newShell(t *testing.T) (*CommandImpl, *mock_photoapi.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logger.Nop()

	cfg := &config.Config{}
	cfg.Upload.PreviewDir = "/tmp"
	cfg.Layout.ImageHeight = 300

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/photos/cat.png", pngBytes, 0o644))

	api := mock_photoapi.NewMockClient(ctrl)
	provider := authimpl.New(authimpl.Opts{Logger: log})
	clock := clockwork.NewFakeClock()

	tg := mock_telegram.NewMockClient(ctrl)
	tg.EXPECT().Enabled().Return(false).AnyTimes()

	g, err := gallery.New(gallery.Opts{
		LC:       fxtest.NewLifecycle(t),
		Repo:     uploads.NewMemory(log),
		Telegram: tg,
		Clock:    clock,
		Config:   cfg,
		Logger:   log,
	})
	require.NoError(t, err)

	shell := New(Opts{
		API:      api,
		Session:  provider,
		Verifier: &verifierStub{provider: provider},
		Modal: upload.New(upload.Opts{
			API:     api,
			Session: provider,
			Fs:      fs,
			Clock:   clock,
			Config:  cfg,
			Logger:  log,
		}),
		Gallery:  g,
		Layout:   layout.NewCalculator(layout.Opts{Config: cfg, Logger: log}),
		Viewport: staticViewport(80),
		Logger:   log,
		Config:   cfg,
	})
	return shell, api
}

func run(t *testing.T, shell *CommandImpl, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, shell.Run(context.Background(), in, &out))
	return out.String()
}

func TestRun_UploadEndToEnd(t *testing.T) {
	shell, api := newShell(t)

	api.EXPECT().
		UploadPhoto(gomock.Any(), photoapi.Upload{Image: pngBytes, MIMEType: "image/png", UserID: "u1"}).
		Return(&domain.Photo{ID: "p1", User: &domain.User{UID: "u1", DisplayName: "Ann"}}, nil)
	api.EXPECT().ListComments(gomock.Any(), "p1").
		Return([]domain.Comment{{ID: "c1", Content: "nice"}}, nil)

	out := run(t, shell, "login good", "upload", "select /photos/cat.png", "post", "feed", "quit")

	assert.Contains(t, out, "Signed in as Ann.")
	assert.Contains(t, out, "Uploaded photo p1.")
	assert.Contains(t, out, "Upload dialog closed.")
	assert.Contains(t, out, "Anonymous: nice")
	assert.Contains(t, out, "1. p1")
}

func TestRun_PostWithoutUser(t *testing.T) {
	shell, _ := newShell(t)

	out := run(t, shell, "upload", "select /photos/cat.png", "post", "cancel")

	assert.Contains(t, out, "you are not signed in, so you cannot post")
	assert.Contains(t, out, "Upload dialog closed.")
}

func TestRun_UploadFailureAlerts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rejected", perrors.Upload("status 500"), "Upload failed. Please try again."},
		{"transport", perrors.Transport(assert.AnError, "request failed"), "An error occurred during upload. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell, api := newShell(t)
			api.EXPECT().UploadPhoto(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			out := run(t, shell, "login good", "upload", "select /photos/cat.png", "post")

			assert.Contains(t, out, tt.want)
			assert.Equal(t, upload.Closed, shell.Modal.State())
		})
	}
}

func TestRun_OpenMissingPhotoShowsPlaceholder(t *testing.T) {
	shell, api := newShell(t)
	api.EXPECT().GetPhoto(gomock.Any(), "nope").Return(nil, perrors.NotFound("photo nope"))

	out := run(t, shell, "open nope")

	assert.Contains(t, out, placeholder)
}

func TestRun_OpenAndComment(t *testing.T) {
	shell, api := newShell(t)

	api.EXPECT().GetPhoto(gomock.Any(), "p1").Return(&domain.Photo{ID: "p1", ISO: 1600, CameraModel: "X100V"}, nil)
	api.EXPECT().ListComments(gomock.Any(), "p1").Return(nil, nil)
	api.EXPECT().PostComment(gomock.Any(), "p1", "hello there", "good").
		Return(&domain.Comment{ID: "c1", Content: "hello there", User: &domain.User{DisplayName: "Ann"}}, nil)

	out := run(t, shell, "comment too early", "login good", "open p1", "comment hello there", "logout", "comment again")

	assert.Contains(t, out, "Open a photo first")
	assert.Contains(t, out, "Camera: X100V")
	assert.Contains(t, out, "ISO: 1,600")
	assert.Contains(t, out, "Ann: hello there")
	assert.Contains(t, out, "you are not signed in, so you cannot comment")
	assert.NotContains(t, out, "(sending)")
}

func TestRun_OpenAndCommentSignedIn(t *testing.T) {
	shell, api := newShell(t)

	api.EXPECT().GetPhoto(gomock.Any(), "p1").Return(&domain.Photo{ID: "p1"}, nil)
	api.EXPECT().ListComments(gomock.Any(), "p1").Return(nil, nil)
	api.EXPECT().PostComment(gomock.Any(), "p1", "hi", "good").Return(&domain.Comment{ID: "c1", Content: "hi"}, nil)

	out := run(t, shell, "login good", "open p1", "comment hi")

	assert.Contains(t, out, "Anonymous: hi")
}

func TestRun_UnknownCommandAndLoginFailure(t *testing.T) {
	shell, _ := newShell(t)

	out := run(t, shell, "dance", "login bad", "whoami")

	assert.Contains(t, out, `Unknown command "dance"`)
	assert.Contains(t, out, "Sign-in failed. Please try again.")
	assert.Contains(t, out, "Not signed in.")
}

func TestRun_StopsWhenContextEnds(t *testing.T) {
	shell, _ := newShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := shell.Run(ctx, strings.NewReader(""), &out)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
