package bootstrap

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/invensys/inventory-api/internal/core/domain"
)

type memUserRepo struct {
	users   map[string]*domain.User
	creates int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.creates++
	r.users[user.Username] = user
	return user, nil
}

func (r *memUserRepo) UpdateRoles(_ context.Context, username string, roles []string) error {
	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Roles = roles
	return nil
}

type memRoleRepo struct {
	roles   map[string]*domain.Role
	creates int
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[string]*domain.Role)}
}

func (r *memRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *memRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.creates++
	r.roles[role.Name] = role
	return role, nil
}

func (r *memRoleRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.roles)), nil
}

func TestSeeder_Run_FreshStore(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()
	seeder := NewSeeder(users, roles, "admin", "admin123", zerolog.Nop())

	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{domain.RoleUser, domain.RoleAdmin} {
		if _, err := roles.FindByName(context.Background(), name); err != nil {
			t.Fatalf("role %s not seeded: %v", name, err)
		}
	}

	admin, err := users.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if !admin.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin missing %s, got %v", domain.RoleAdmin, admin.Roles)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")); err != nil {
		t.Fatalf("seeded password hash does not verify: %v", err)
	}
}

func TestSeeder_Run_Idempotent(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()
	seeder := NewSeeder(users, roles, "admin", "admin123", zerolog.Nop())

	for i := 0; i < 2; i++ {
		if err := seeder.Run(context.Background()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	if roles.creates != 2 {
		t.Fatalf("expected 2 role creates, got %d", roles.creates)
	}
	if users.creates != 1 {
		t.Fatalf("expected 1 user create, got %d", users.creates)
	}
}

func TestSeeder_Run_ExistingRolesSkipped(t *testing.T) {
	users := newMemUserRepo()
	roles := newMemRoleRepo()
	if _, err := roles.Create(context.Background(), &domain.Role{Name: domain.RoleUser}); err != nil {
		t.Fatalf("prepare role: %v", err)
	}
	roles.creates = 0

	seeder := NewSeeder(users, roles, "admin", "admin123", zerolog.Nop())
	if err := seeder.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if roles.creates != 0 {
		t.Fatalf("roles re-seeded despite non-empty store, creates=%d", roles.creates)
	}
}
