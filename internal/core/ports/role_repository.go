package ports

import (
	"context"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// RoleRepository defines the durable store for role identities.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Count(ctx context.Context) (int64, error)
}
