package ports

import (
	"context"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
)

// ObjectStorage stores binary objects (logos, avatars, documents) outside the database.
type ObjectStorage interface {
	// Upload stores data under a fresh key and returns its key and public URL.
	Upload(ctx context.Context, data []byte, name, mimeType string, opts model.UploadOptions) (*model.StoredObject, error)

	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}
