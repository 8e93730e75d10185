package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// JWTTokenService mints and verifies HS256-signed bearer tokens. It is
// stateless: the signing secret is the only shared state.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}
}

// tokenClaims is the wire shape of a token: registered claims carry the
// subject and the issued-at/expiry pair, roles ride alongside.
type tokenClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Mint produces a signed token for subject with issued-at = now and
// expiry = now + TTL. The signature covers every claim.
func (s *JWTTokenService) Mint(subject string, roles []string, now time.Time) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Roles: append([]string(nil), roles...),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token against now. The signature is checked
// before any claim, so a forged token always fails with ErrBadSignature and
// leaks nothing about its structure; only a well-signed token can fail with
// ErrTokenExpired.
func (s *JWTTokenService) Verify(token string, now time.Time) (*ports.TokenClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := &tokenClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrBadSignature
	}
	if !parsed.Valid {
		return nil, domain.ErrBadSignature
	}

	out := &ports.TokenClaims{
		Subject:   claims.Subject,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
