package commandimpl

import (
	"context"
	"errors"

	"github.com/orgball2608/photoshare-client/internal/component"
	"github.com/orgball2608/photoshare-client/internal/domain"
	"github.com/orgball2608/photoshare-client/internal/upload"
	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
)

func (c *CommandImpl) handleUpload(ctx context.Context) {
	err := c.Modal.Open(ctx, upload.Callbacks{
		OnClose: func() {
			c.out.println("Upload dialog closed.")
		},
		OnUploaded: func(photo domain.Photo) {
			if err := c.Gallery.OnUploaded(ctx, photo); err != nil {
				c.Logger.Error("Gallery did not record upload", "photo_id", photo.ID, "error", err)
			}
		},
	})
	if errors.Is(err, upload.ErrAlreadyOpen) {
		c.out.println("The upload dialog is already open.")
		return
	}
	c.out.println("Upload dialog open. Use 'select <path>' then 'post', or 'cancel'.")
}

func (c *CommandImpl) handleSelect(ctx context.Context, path string) {
	if path == "" {
		c.out.println("Please enter a file path. Example: select ./photo.jpg")
		return
	}

	err := c.Modal.SelectFile(ctx, path)
	switch {
	case errors.Is(err, upload.ErrNotOpen):
		c.out.println("Open the upload dialog first with 'upload'.")
	case err != nil:
		c.Logger.Warn("File selection failed", "path", path, "error", err)
		c.out.println(perrors.UserMessage(err))
	default:
		c.out.printf("Selected %s (preview: %s)\n", path, c.Modal.PreviewPath())
	}
}

func (c *CommandImpl) handlePost(ctx context.Context) {
	photo, err := c.Modal.Submit(ctx)
	switch {
	case errors.Is(err, upload.ErrNotOpen):
		c.out.println("Open the upload dialog first with 'upload'.")
		return
	case errors.Is(err, component.ErrUnmounted):
		return
	case err != nil:
		c.out.println(uploadAlert(err))
		return
	}

	c.out.printf("Uploaded photo %s.\n", photo.ID)
	c.showPhoto(ctx, photo)
}

func (c *CommandImpl) handleCancel() {
	if c.Modal.State() != upload.Visible {
		c.out.println("The upload dialog is not open.")
		return
	}
	c.Modal.Close()
}

// uploadAlert is the message shown when a submission fails.
func uploadAlert(err error) string {
	switch {
	case perrors.IsValidation(err):
		return perrors.GetMessage(err)
	case perrors.IsUpload(err):
		return "Upload failed. Please try again."
	default:
		return "An error occurred during upload. Please try again."
	}
}
