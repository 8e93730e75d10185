package domain

import "errors"

// Identity and access errors.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrMissingSeedData    = errors.New("default roles not seeded")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role name")
	ErrForbidden          = errors.New("access forbidden")
)

// Token errors. The access-control middleware collapses both into a uniform
// 401 so clients cannot distinguish a forged token from an expired one.
var (
	ErrBadSignature = errors.New("token signature invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Catalog errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageNotFound   = errors.New("image not found")
)

// File storage errors. ErrUnsafePath is raised before any filesystem call is
// attempted and is never silently corrected.
var (
	ErrEmptyFile    = errors.New("cannot store empty file")
	ErrUnsafePath   = errors.New("filename escapes storage root")
	ErrFileNotFound = errors.New("file not found")
)
