package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type AccountRepository struct {
	mu       sync.RWMutex
	emails   []string
	accounts map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (r *AccountRepository) InsertIfAbsent(ctx context.Context, acc *domain.Account) (*domain.Account, bool, error) {
	_ = ctx
	if acc == nil || acc.Email == "" {
		return nil, false, fmt.Errorf("account repository: email is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.accounts[acc.Email]; ok {
		return existing.Clone(), false, nil
	}
	r.accounts[acc.Email] = acc.Clone()
	r.emails = append(r.emails, acc.Email)
	return acc.Clone(), true, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return acc.Clone(), nil
}

func (r *AccountRepository) ListExcept(ctx context.Context, email string) ([]domain.Account, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.emails))
	for _, e := range r.emails {
		if e == email {
			continue
		}
		out = append(out, *r.accounts[e])
	}
	return out, nil
}

func (r *AccountRepository) SetRole(ctx context.Context, email string, role domain.Role, status domain.Status) (store.UpdateResult, error) {
	return r.update(ctx, email, func(a *domain.Account) {
		a.Role = role
		a.Status = status
	})
}

func (r *AccountRepository) SetStatus(ctx context.Context, email string, status domain.Status) (store.UpdateResult, error) {
	return r.update(ctx, email, func(a *domain.Account) { a.Status = status })
}

func (r *AccountRepository) update(ctx context.Context, email string, mutate func(*domain.Account)) (store.UpdateResult, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[email]
	if !ok {
		return store.UpdateResult{Acknowledged: true}, nil
	}
	before := *acc
	mutate(acc)
	res := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before != *acc {
		res.ModifiedCount = 1
	}
	return res, nil
}
