package ports

import (
	"context"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// UserRepository defines the durable credential store for users.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRoles replaces the user's role set. The store's own per-document
	// isolation is the only concurrency control required here.
	UpdateRoles(ctx context.Context, username string, roles []string) error
}
