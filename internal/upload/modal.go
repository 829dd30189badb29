package upload

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/photoshare-client/internal/auth"
	"github.com/orgball2608/photoshare-client/internal/capture"
	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	"github.com/orgball2608/photoshare-client/pkg/config"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

var (
	ErrAlreadyOpen = errors.New("upload modal is already open")
	ErrNotOpen     = errors.New("upload modal is not open")
)

type State int

const (
	Closed State = iota
	Visible
	Leaving
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case Leaving:
		return "leaving"
	default:
		return "closed"
	}
}

// Callbacks are owned by whoever opened the modal.
type Callbacks struct {
	OnClose    func()
	OnUploaded func(photo domain.Photo)
}

type Opts struct {
	fx.In

	API     photoapi.Client
	Session auth.Session
	Fs      afero.Fs
	Clock   clockwork.Clock
	Config  *config.Config
	Logger  logger.Logger
}

// Modal is the upload dialog: it captures one image, gates submission on the
// signed-in user, and closes itself through an exit transition.
type Modal struct {
	api        photoapi.Client
	session    auth.Session
	fs         afero.Fs
	clock      clockwork.Clock
	previewDir string
	exit       time.Duration
	logger     logger.Logger

	mu         sync.Mutex
	state      State
	scope      *component.Scope
	capture    *capture.Component
	user       *domain.User
	callbacks  Callbacks
	closeTimer clockwork.Timer
	submitting bool
}

func New(opts Opts) *Modal {
	return &Modal{
		api:        opts.API,
		session:    opts.Session,
		fs:         opts.Fs,
		clock:      opts.Clock,
		previewDir: opts.Config.Upload.PreviewDir,
		exit:       opts.Config.Upload.ExitAnimation,
		logger:     opts.Logger.WithComponent("UploadModal"),
	}
}

// Open mounts the modal: a fresh UploadSession and an identity subscription
// that lives until the modal closes.
func (m *Modal) Open(ctx context.Context, callbacks Callbacks) error {
	m.mu.Lock()
	if m.state != Closed {
		m.mu.Unlock()
		return ErrAlreadyOpen
	}
	scope := component.NewScope(ctx)
	m.scope = scope
	m.capture = capture.New(m.fs, m.previewDir, m.logger)
	m.callbacks = callbacks
	m.user = nil
	m.state = Visible
	m.mu.Unlock()

	unsubscribe := m.session.Subscribe(func(u *domain.User) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.scope == scope {
			m.user = u
		}
	})
	scope.Defer(unsubscribe)

	m.logger.Debug("Upload modal opened")
	return nil
}

func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User is the identity the modal currently gates on.
func (m *Modal) User() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// SelectFile stages path as the image to upload.
func (m *Modal) SelectFile(ctx context.Context, path string) error {
	m.mu.Lock()
	if m.state != Visible {
		m.mu.Unlock()
		return ErrNotOpen
	}
	scope, c := m.scope, m.capture
	m.mu.Unlock()

	reqCtx, cancel := scope.Bind(ctx)
	defer cancel()
	return c.SelectFile(reqCtx, path)
}

// PreviewPath is the renderable preview of the staged image, if any.
func (m *Modal) PreviewPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.capture == nil {
		return ""
	}
	return m.capture.Preview().Path()
}

// Submit uploads the staged image for the signed-in user. Missing preconditions
// fail with a validation error before any request. On success the modal closes
// and OnUploaded fires once; on failure the modal and its session stay as they were.
func (m *Modal) Submit(ctx context.Context) (*domain.Photo, error) {
	m.mu.Lock()
	if m.state != Visible {
		m.mu.Unlock()
		return nil, ErrNotOpen
	}
	if m.submitting {
		m.mu.Unlock()
		return nil, perrors.Validation("an upload is already in progress")
	}
	user := m.user
	staged := m.capture.Session()
	scope := m.scope
	switch {
	case !user.CanUpload():
		m.mu.Unlock()
		m.logger.Warn("Upload blocked: no signed-in user")
		return nil, perrors.Validation("you are not signed in, so you cannot post")
	case !staged.Ready():
		m.mu.Unlock()
		m.logger.Warn("Upload blocked: no image selected", "uid", user.UID)
		return nil, perrors.Validation("no image selected")
	}
	m.submitting = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	reqCtx, cancel := scope.Bind(ctx)
	defer cancel()

	photo, err := m.api.UploadPhoto(reqCtx, photoapi.Upload{
		Image:    staged.Bytes,
		MIMEType: staged.MIMEType,
		UserID:   user.UID,
	})

	m.mu.Lock()
	if m.scope != scope || !scope.Alive() {
		m.mu.Unlock()
		m.logger.Debug("Discarding upload result after modal closed")
		return nil, component.ErrUnmounted
	}
	onUploaded := m.callbacks.OnUploaded
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("Upload failed", "uid", user.UID, "error", err)
		return nil, err
	}

	m.finish()
	if onUploaded != nil {
		onUploaded(*photo)
	}
	return photo, nil
}

// Close runs the exit transition and then fires OnClose. When the modal is not
// visible, or no transition is configured, it closes at once.
func (m *Modal) Close() {
	m.mu.Lock()
	if m.state == Visible && m.exit > 0 {
		m.state = Leaving
		m.closeTimer = m.clock.AfterFunc(m.exit, m.finish)
		m.mu.Unlock()
		return
	}
	leaving := m.state == Leaving
	m.mu.Unlock()

	if leaving {
		return
	}
	m.finish()
}

// finish tears the modal down and fires OnClose exactly once.
func (m *Modal) finish() {
	m.mu.Lock()
	if m.state == Closed {
		m.mu.Unlock()
		return
	}
	if m.closeTimer != nil {
		m.closeTimer.Stop()
		m.closeTimer = nil
	}
	scope, c, callbacks := m.scope, m.capture, m.callbacks
	m.state = Closed
	m.scope, m.capture, m.user = nil, nil, nil
	m.callbacks = Callbacks{}
	m.mu.Unlock()

	scope.Close()
	c.Destroy()

	m.logger.Debug("Upload modal closed")
	if callbacks.OnClose != nil {
		callbacks.OnClose()
	}
}
