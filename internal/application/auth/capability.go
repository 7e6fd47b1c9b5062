package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zhima-Mochi/plantbay/internal/domain/account"
)

// Capability is one precondition a request must satisfy before its handler runs.
type Capability func(ctx context.Context) error

// RoleResolver looks up the stored role of an account.
type RoleResolver interface {
	GetRole(ctx context.Context, email string) (account.Role, error)
}

// Session requires a verified principal on the context.
func Session() Capability {
	return func(ctx context.Context) error {
		if _, ok := PrincipalFrom(ctx); !ok {
			return ErrUnauthorized
		}
		return nil
	}
}

// Role requires the principal's stored role to equal want. An unknown account is forbidden.
func Role(resolver RoleResolver, want account.Role) Capability {
	return func(ctx context.Context) error {
		p, ok := PrincipalFrom(ctx)
		if !ok {
			return ErrUnauthorized
		}
		got, err := resolver.GetRole(ctx, p.Email)
		switch {
		case errors.Is(err, account.ErrNotFound):
			return &RoleError{Want: want}
		case err != nil:
			return fmt.Errorf("auth: resolve role: %w", err)
		case got != want:
			return &RoleError{Want: want}
		}
		return nil
	}
}

// RoleError is the forbidden error of a Role capability; it matches ErrForbidden.
type RoleError struct {
	Want account.Role
}

func (e *RoleError) Error() string {
	role := string(e.Want)
	if role != "" {
		role = strings.ToUpper(role[:1]) + role[1:]
	}
	return "forbidden access! Action only " + role
}

func (e *RoleError) Is(target error) bool { return target == ErrForbidden }

// Authorize evaluates caps in order and stops at the first failure.
func Authorize(ctx context.Context, caps ...Capability) error {
	for _, c := range caps {
		if err := c(ctx); err != nil {
			return err
		}
	}
	return nil
}
