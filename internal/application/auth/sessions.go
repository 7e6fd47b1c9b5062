// Package auth issues session tokens and evaluates the capability checks guarding each route.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnauthorized  = errors.New("auth: unauthorized access")
	ErrForbidden     = errors.New("auth: forbidden access")
	ErrEmailRequired = errors.New("auth: identity email is required")
	ErrNoSecret      = errors.New("auth: signing secret is required")
)

// DefaultTTL matches the one-year session cookie.
const DefaultTTL = 365 * 24 * time.Hour

// Identity is what the client presents when asking for a session.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Principal is the verified caller attached to a request.
type Principal struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for id and its expiry.
func (s *Sessions) Issue(id Identity) (string, time.Time, error) {
	if id.Email == "" {
		return "", time.Time{}, ErrEmailRequired
	}
	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: sign session: %w", err)
	}
	return signed, exp, nil
}

// Verify accepts only unexpired HS256 tokens signed with our secret.
func (s *Sessions) Verify(token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if c.Email == "" {
		return nil, ErrUnauthorized
	}
	return &Principal{Email: c.Email}, nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	if p == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
