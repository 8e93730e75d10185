package ports

import "time"

// TokenClaims is the decoded content of a verified bearer token. Roles
// reflect the user's role set at issuance time; they are not re-checked
// against the credential store until the next login.
type TokenClaims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService mints and verifies self-contained signed bearer tokens.
// Both operations are pure: the only shared state is the signing secret,
// so concurrent calls never interact.
type TokenService interface {
	Mint(subject string, roles []string, now time.Time) (string, error)
	// Verify checks the signature before anything else (domain.ErrBadSignature),
	// then expiry against now (domain.ErrTokenExpired).
	Verify(token string, now time.Time) (*TokenClaims, error)
}
