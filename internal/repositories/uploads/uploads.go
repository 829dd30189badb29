package uploads

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/photoshare-client/internal/domain"
)

var ErrAlreadyExists = errors.New("upload already recorded")

//go:generate go run go.uber.org/mock/mockgen -source=uploads.go -destination=mocks/mock.go
type Repository interface {
	// Create records a successful upload and returns it with its id set
	Create(ctx context.Context, record domain.UploadRecord) (*domain.UploadRecord, error)

	// Latest returns the most recent uploads, newest first, limited by count
	Latest(ctx context.Context, count int) ([]*domain.UploadRecord, error)

	// Exists checks if an upload of the given photo was already recorded
	Exists(ctx context.Context, photoID string) (bool, error)

	// CleanupOldRecords deletes records uploaded before the cutoff
	CleanupOldRecords(ctx context.Context, before time.Time) (int64, error)
}
