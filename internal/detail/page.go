package detail

import (
	"context"
	"errors"

	"github.com/orgball2608/photoshare-client/internal/comments"
	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/layout"
	"github.com/orgball2608/photoshare-client/internal/photoapi"
	"github.com/orgball2608/photoshare-client/pkg/logger"
)

type PageOpts struct {
	API    photoapi.Client
	Layout *layout.Calculator
	Logger logger.Logger
}

// Page is one visit to a photo's detail view: the loader, the comment feed
// keyed by whatever photo the loader resolves, and the layout they are drawn with.
type Page struct {
	Loader *Loader
	Feed   *comments.Feed
	Layout *layout.Calculator

	scope  *component.Scope
	logger logger.Logger
}

// OpenPage mounts a page showing initial, or nothing until Navigate when
// initial is nil. An initial photo has its comments fetched before OpenPage returns.
func OpenPage(ctx context.Context, initial *domain.Photo, opts PageOpts) *Page {
	scope := component.NewScope(ctx)
	log := opts.Logger.WithComponent("DetailPage")

	p := &Page{
		Loader: NewLoader(scope.Context(), opts.API, initial, opts.Logger),
		Feed:   comments.New(scope.Context(), comments.Opts{API: opts.API, Logger: opts.Logger}),
		Layout: opts.Layout,
		scope:  scope,
		logger: log,
	}
	scope.Defer(p.Loader.Close)
	scope.Defer(p.Feed.Close)

	unsubscribe := p.Loader.Subscribe(func(photo domain.Photo) {
		err := p.Feed.Load(scope.Context(), &photo)
		if err != nil && !errors.Is(err, component.ErrUnmounted) && !errors.Is(err, comments.ErrStale) {
			log.Warn("Comments unavailable", "photo_id", photo.ID, "error", err)
		}
	})
	scope.Defer(unsubscribe)

	return p
}

func (p *Page) Navigate(ctx context.Context, id string) error {
	return p.Loader.Navigate(ctx, id)
}

// Photo is the photo on screen, nil while the page shows its placeholder.
func (p *Page) Photo() *domain.Photo {
	return p.Loader.Photo()
}

func (p *Page) Comment(ctx context.Context, text string, user *domain.User) (*domain.Comment, error) {
	return p.Feed.Submit(ctx, text, p.Loader.Photo(), user)
}

func (p *Page) Frame() layout.Frame {
	return p.Layout.Frame(p.Loader.Photo())
}

func (p *Page) Close() {
	p.scope.Close()
}
