package commandimpl

import (
	"context"
	"errors"

	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/detail"
	"github.com/orgball2608/photoshare-client/internal/domain"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
)

func (c *CommandImpl) handleOpen(ctx context.Context, photoID string) {
	if photoID == "" {
		c.out.println("Please enter a photo id. Example: open <photoId>")
		return
	}

	if c.page == nil {
		c.page = c.openPage(ctx, nil)
	}

	err := c.page.Navigate(ctx, photoID)
	if err != nil && !errors.Is(err, component.ErrUnmounted) {
		c.Logger.Warn("Photo not available", "photo_id", photoID, "error", err)
	}
	c.render()
}

func (c *CommandImpl) handleComment(ctx context.Context, text string) {
	if c.page == nil {
		c.out.println("Open a photo first with 'open <photoId>'.")
		return
	}

	_, err := c.page.Comment(ctx, text, c.Session.Current())
	if err != nil {
		if !errors.Is(err, component.ErrUnmounted) {
			c.out.println(perrors.UserMessage(err))
		}
		return
	}
	c.render()
}

// showPhoto replaces the page on screen with one holding photo.
func (c *CommandImpl) showPhoto(ctx context.Context, photo *domain.Photo) {
	c.closePage()
	c.page = c.openPage(ctx, photo)
	c.render()
}

func (c *CommandImpl) openPage(ctx context.Context, initial *domain.Photo) *detail.Page {
	return detail.OpenPage(ctx, initial, detail.PageOpts{
		API:    c.API,
		Layout: c.Layout,
		Logger: c.Logger,
	})
}

func (c *CommandImpl) closePage() {
	if c.page != nil {
		c.page.Close()
		c.page = nil
	}
}

func (c *CommandImpl) render() {
	c.out.mu.Lock()
	defer c.out.mu.Unlock()
	renderPage(c.out.w, c.page)
}
