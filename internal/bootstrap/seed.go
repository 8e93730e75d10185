// Package bootstrap prepares the durable stores before the service accepts
// traffic: the closed role set and a default admin account. Seeding is
// idempotent and safe to run on every start.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// Seeder creates the default roles and admin account when absent.
type Seeder struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	adminUsername string
	adminPassword string
	logger        zerolog.Logger
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, adminUsername, adminPassword string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:         users,
		roles:         roles,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

// Run seeds roles first, then the admin account that references them.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedRoles(ctx); err != nil {
		return err
	}
	return s.seedAdmin(ctx)
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	count, err := s.roles.Count(ctx)
	if err != nil {
		return fmt.Errorf("count roles: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		if _, err := s.roles.Create(ctx, &domain.Role{Name: name, CreatedAt: now}); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	s.logger.Info().Msg("default roles created")
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	_, err := s.users.FindByUsername(ctx, s.adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:     s.adminUsername,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.Create(ctx, admin); err != nil {
		// another instance may have seeded concurrently
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	s.logger.Info().Str("username", s.adminUsername).Msg("default admin user created")
	return nil
}
