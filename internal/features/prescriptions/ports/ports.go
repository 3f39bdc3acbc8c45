package ports

import (
	"context"

	"pharmacart/internal/features/prescriptions/domain"
)

// Uploader defines the secondary port for prescription uploads.
type Uploader interface {
	// Upload bundles up to domain.MaxImagesPerUpload images into one
	// multipart request and returns the backend prescription identifier.
	Upload(ctx context.Context, images []domain.Image) (string, error)
}

// PendingRepository defines the secondary port for the locally persisted
// pending-prescription list (image references picked but not yet ordered).
type PendingRepository interface {
	Save(ctx context.Context, fileNames []string) error
	Load(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
