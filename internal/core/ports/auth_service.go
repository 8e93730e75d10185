package ports

import (
	"context"

	"github.com/invensys/inventory-api/internal/core/domain"
)

// AuthService orchestrates registration, login and role assignment. It is
// the only component that touches the credential store and the token
// service together.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	AssignRole(ctx context.Context, username, roleName string) (*domain.User, error)
}
