package ports

import (
	"context"
	"io"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// ImageService manages product image uploads: bytes in the file store,
// metadata in the image repository.
type ImageService interface {
	Upload(ctx context.Context, productID string, data []byte, originalFilename string) (*domain.ProductImage, error)
	List(ctx context.Context, productID string) ([]domain.ProductImage, error)
	Serve(filename string) (io.ReadCloser, error)
	Delete(ctx context.Context, imageID string) error
}
