// Package auth validates the bearer tokens issued by the account service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrTokenExpired = errors.New("auth: token expired")
)

const defaultAccessTTL = 15 * time.Minute

// JWTManager verifies HS256 access tokens. Signing exists for tooling and
// tests; in production tokens come from the account service.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// Option configures a JWTManager.
type Option func(*JWTManager)

// WithAccessTTL sets the lifetime of tokens minted by GenerateAccessToken.
func WithAccessTTL(d time.Duration) Option {
	return func(m *JWTManager) { m.ttl = d }
}

// WithLeeway tolerates clock skew with the issuing service when checking
// exp, iat and nbf.
func WithLeeway(d time.Duration) Option {
	return func(m *JWTManager) { m.leeway = d }
}

// NewJWTManager builds a manager for tokens issued by issuer and signed with
// secret. Config validation guarantees the secret length.
func NewJWTManager(secret, issuer string, opts ...Option) *JWTManager {
	m := &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    defaultAccessTTL,
		now:    time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Validate is called by the parser after the registered claims pass. An
// absent role means a regular user.
func (c accessClaims) Validate() error {
	if c.Role == "" {
		return nil
	}
	if !domain.UserRole(c.Role).IsValid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	return nil
}

// GenerateAccessToken mints a token with the user as subject.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role domain.UserRole) (string, error) {
	now := m.now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: string(role),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken returns the subject and role of a valid token.
// Failures wrap ErrTokenExpired or ErrInvalidToken.
func (m *JWTManager) ValidateAccessToken(raw string) (uuid.UUID, domain.UserRole, error) {
	if raw == "" {
		return uuid.Nil, "", fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case err != nil:
		return uuid.Nil, "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}

	role := domain.UserRole(claims.Role)
	if role == "" {
		role = domain.UserRoleUser
	}
	return userID, role, nil
}
