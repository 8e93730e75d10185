package domain

import (
	"regexp"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// roleNamePattern is the closed set of assignable role names. Assignment of
// anything outside this pattern is rejected before the store is consulted.
var roleNamePattern = regexp.MustCompile(`^ROLE_(USER|ADMIN)$`)

// ValidRoleName reports whether name belongs to the closed role enumeration.
func ValidRoleName(name string) bool {
	return roleNamePattern.MatchString(name)
}

// User models an authenticated actor. Username is the immutable identifier;
// Roles holds role names, unique per user.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Role is a named grant. Roles are seeded once at startup and never renamed
// or removed while referenced.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
