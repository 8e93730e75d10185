package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// AuthService implements registration, login and role assignment. It is the
// only place where the credential store and the token service meet.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, logger: logger}
}

// Register creates a user holding ROLE_USER. The role must already be
// seeded; registration never issues a token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrMissingSeedData
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{role.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and mints a token carrying the user's
// current role set. Nothing is persisted; an unknown username and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.Username, user.Roles, time.Now().UTC())
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("user logged in")
	return token, nil
}

// AssignRole grants roleName to the user. Re-assigning a held role is a
// no-op success; tokens minted before the change keep their old role claim
// until they expire.
func (s *AuthService) AssignRole(ctx context.Context, username, roleName string) (*domain.User, error) {
	if !domain.ValidRoleName(roleName) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	if user.HasRole(role.Name) {
		return user, nil
	}

	user.Roles = append(user.Roles, role.Name)
	if err := s.users.UpdateRoles(ctx, user.Username, user.Roles); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", role.Name).Msg("role assigned")
	return user, nil
}
