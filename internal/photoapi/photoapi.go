package photoapi

import (
	"context"

	"github.com/orgball2608/photoshare-client/internal/domain"
)

// Upload is the multipart payload of a photo submission.
type Upload struct {
	Image    []byte
	MIMEType string
	UserID   string
}

// Client is the backend photo API. Implementations impose no timeout of their
// own; cancellation comes from ctx.
//
//go:generate go run go.uber.org/mock/mockgen -source=photoapi.go -destination=mocks/mock.go
type Client interface {
	// UploadPhoto posts the image and returns the created photo.
	UploadPhoto(ctx context.Context, upload Upload) (*domain.Photo, error)

	// GetPhoto fetches one photo by id.
	GetPhoto(ctx context.Context, id string) (*domain.Photo, error)

	// ListComments fetches the full comment thread of a photo, oldest first.
	ListComments(ctx context.Context, photoID string) ([]domain.Comment, error)

	// PostComment creates a comment authored by the bearer of idToken.
	PostComment(ctx context.Context, photoID, content, idToken string) (*domain.Comment, error)
}
