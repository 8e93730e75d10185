package ports

import (
	"context"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// ProductInput carries the writable fields of a catalog entry.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Items      []domain.Product
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// ProductService implements catalog CRUD with pagination and name filtering.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, size int, nameFilter string) (*ProductPage, error)
}

// ProductCache is a read-through cache over single-product lookups. Cache
// failures are advisory; callers fall back to the repository.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}
