package account

import (
	"context"

	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type Repository interface {
	// InsertIfAbsent stores acc unless an account with the same email exists.
	// It returns the stored account and whether this call inserted it.
	InsertIfAbsent(ctx context.Context, acc *Account) (*Account, bool, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	ListExcept(ctx context.Context, email string) ([]Account, error)
	SetRole(ctx context.Context, email string, role Role, status Status) (store.UpdateResult, error)
	SetStatus(ctx context.Context, email string, status Status) (store.UpdateResult, error)
}
