package ports

import (
	"context"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// ProductRepository defines catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	// FindPage returns one page of products plus the total matching count.
	// nameFilter, when non-empty, matches product names case-insensitively.
	FindPage(ctx context.Context, page, size int, nameFilter string) ([]domain.Product, int64, error)
}

// ImageRepository defines persistence for product image metadata.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.ProductImage) (*domain.ProductImage, error)
	FindByID(ctx context.Context, id string) (*domain.ProductImage, error)
	FindAllByProductID(ctx context.Context, productID string) ([]domain.ProductImage, error)
	Delete(ctx context.Context, id string) error
}
