// Package account implements login-time account creation and role management.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Zhima-Mochi/plantbay/internal/application"
	domain "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

const (
	accountService = "account-service"

	useCaseUpsert        = "account.upsert"
	useCaseListExcept    = "account.list_except"
	useCaseSetRole       = "account.set_role"
	useCaseRequestChange = "account.request_role_change"
	useCaseGetRole       = "account.get_role"
)

var (
	ErrNotFound       = domain.ErrNotFound
	ErrRequestPending = domain.ErrRequestPending
	ErrRepository     = errors.New("account: repository failure")
)

type Service struct {
	repo domain.Repository
	inst *application.Instrumentation
	now  func() time.Time
}

func NewService(repo domain.Repository, tel observability.Observability) *Service {
	return &Service{
		repo: repo,
		inst: application.NewInstrumentation(tel, accountService),
		now:  time.Now,
	}
}

// UpsertResult is the stored account and whether this call created it.
type UpsertResult struct {
	Account  *domain.Account
	Inserted bool
}

// UpsertAccount creates a customer account on first login and leaves existing accounts untouched.
func (s *Service) UpsertAccount(ctx context.Context, email string, profile domain.Profile) (_ *UpsertResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseUpsert, "UpsertAccount")
	defer func() { run.End(err) }()

	acc, err := domain.New(email, profile, s.now())
	if err != nil {
		run.Fail("EMAIL_REQUIRED")
		return nil, err
	}
	stored, inserted, err := s.repo.InsertIfAbsent(ctx, acc)
	if err != nil {
		run.Fail("REPO_UPSERT_FAILED")
		return nil, wrapRepositoryError(err)
	}
	if !inserted {
		run.Status("ALREADY_EXISTS")
	}
	run.Annotate(attribute.Bool("account.inserted", inserted))
	return &UpsertResult{Account: stored, Inserted: inserted}, nil
}

// ListAccountsExcept returns every account but the caller's own.
func (s *Service) ListAccountsExcept(ctx context.Context, email string) (_ []domain.Account, err error) {
	ctx, run := s.inst.Start(ctx, useCaseListExcept, "ListAccountsExcept")
	defer func() { run.End(err) }()

	accounts, err := s.repo.ListExcept(ctx, email)
	if err != nil {
		run.Fail("REPO_LIST_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int("account.count", len(accounts)))
	return accounts, nil
}

// SetRole assigns role and marks the account Verified.
func (s *Service) SetRole(ctx context.Context, email, role string) (_ store.UpdateResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseSetRole, "SetRole", attribute.String("account.role", role))
	defer func() { run.End(err) }()

	r, err := domain.ParseRole(role)
	if err != nil {
		run.Fail("INVALID_ROLE")
		return store.UpdateResult{}, err
	}
	res, err := s.repo.SetRole(ctx, email, r, domain.StatusVerified)
	if err != nil {
		run.Fail("REPO_UPDATE_FAILED")
		return store.UpdateResult{}, wrapRepositoryError(err)
	}
	if res.MatchedCount == 0 {
		run.Status("NO_MATCH")
	}
	return res, nil
}

// RequestRoleChange records an upgrade request once; a pending request is not re-recorded.
func (s *Service) RequestRoleChange(ctx context.Context, email string) (_ store.UpdateResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseRequestChange, "RequestRoleChange")
	defer func() { run.End(err) }()

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		run.Fail("ACCOUNT_LOOKUP_FAILED")
		return store.UpdateResult{}, wrapRepositoryError(err)
	}
	if !acc.CanRequestRoleChange() {
		run.Fail("ALREADY_REQUESTED")
		return store.UpdateResult{}, ErrRequestPending
	}
	res, err := s.repo.SetStatus(ctx, email, domain.StatusRequested)
	if err != nil {
		run.Fail("REPO_UPDATE_FAILED")
		return store.UpdateResult{}, wrapRepositoryError(err)
	}
	return res, nil
}

func (s *Service) GetRole(ctx context.Context, email string) (_ domain.Role, err error) {
	ctx, run := s.inst.Start(ctx, useCaseGetRole, "GetRole")
	defer func() { run.End(err) }()

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		run.Fail("ACCOUNT_LOOKUP_FAILED")
		return "", wrapRepositoryError(err)
	}
	run.Annotate(attribute.String("account.role", string(acc.Role)))
	return acc.Role, nil
}

func wrapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrRepository, err)
}
