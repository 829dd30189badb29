package detail

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

// ErrSuperseded is returned by a Navigate overtaken by a later one.
var ErrSuperseded = errors.New("navigation superseded")

type State int

const (
	Uninitialized State = iota
	Loading
	Loaded
	NotFound
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case NotFound:
		return "not_found"
	default:
		return "uninitialized"
	}
}

// Loader resolves the photo a detail page shows.
type Loader struct {
	api    photoapi.Client
	logger logger.Logger
	scope  *component.Scope

	mu     sync.Mutex
	state  State
	id     string
	photo  *domain.Photo
	gen    uint64
	subs   map[uint64]func(domain.Photo)
	nextID uint64
}

// NewLoader starts Loaded when initial is given and Uninitialized otherwise.
func NewLoader(ctx context.Context, api photoapi.Client, initial *domain.Photo, log logger.Logger) *Loader {
	l := &Loader{
		api:    api,
		logger: log.WithComponent("PhotoDetailLoader"),
		scope:  component.NewScope(ctx),
		subs:   make(map[uint64]func(domain.Photo)),
	}
	if initial != nil {
		p := *initial
		l.photo = &p
		l.id = p.ID
		l.state = Loaded
	}
	return l
}

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Photo is the held photo, nil unless Loaded.
func (l *Loader) Photo() *domain.Photo {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.photo == nil {
		return nil
	}
	p := *l.photo
	return &p
}

// Navigate points the loader at id. The held photo's own id is a no-op; any other
// id drops the held photo and fetches. Every fetch failure ends in NotFound.
func (l *Loader) Navigate(ctx context.Context, id string) error {
	l.mu.Lock()
	if id == l.id && (l.state == Loaded || l.state == Loading) {
		l.mu.Unlock()
		return nil
	}
	l.gen++
	gen := l.gen
	l.id = id
	l.photo = nil
	l.state = Uninitialized
	if id == "" {
		l.state = NotFound
		l.mu.Unlock()
		return perrors.NotFound("no photo id")
	}
	l.state = Loading
	l.mu.Unlock()

	reqCtx, cancel := l.scope.Bind(ctx)
	defer cancel()

	photo, err := l.api.GetPhoto(reqCtx, id)
	if err == nil && photo == nil {
		err = perrors.NotFound("photo " + id + " not found")
	}

	l.mu.Lock()
	switch {
	case !l.scope.Alive():
		l.mu.Unlock()
		return component.ErrUnmounted
	case gen != l.gen:
		l.mu.Unlock()
		return ErrSuperseded
	case err != nil:
		l.state = NotFound
		l.mu.Unlock()
		l.logger.Warn("Photo not resolved", "photo_id", id, "error", err)
		return err
	}
	l.photo = photo
	l.state = Loaded
	subs := l.snapshot()
	l.mu.Unlock()

	l.logger.Debug("Photo loaded", "photo_id", id)
	for _, fn := range subs {
		fn(*photo)
	}
	return nil
}

// Subscribe registers fn for every resolved photo. A photo already held is
// delivered before Subscribe returns.
func (l *Loader) Subscribe(fn func(domain.Photo)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	var current *domain.Photo
	if l.photo != nil {
		p := *l.photo
		current = &p
	}
	l.mu.Unlock()

	if current != nil {
		fn(*current)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

func (l *Loader) snapshot() []func(domain.Photo) {
	keys := slices.Sorted(maps.Keys(l.subs))
	out := make([]func(domain.Photo), 0, len(keys))
	for _, k := range keys {
		out = append(out, l.subs[k])
	}
	return out
}

func (l *Loader) Close() {
	l.scope.Close()
}
