// Package catalog implements the plant catalog use cases.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Zhima-Mochi/plantbay/internal/application"
	domain "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

const (
	catalogService = "catalog-service"

	useCaseCreate         = "catalog.create"
	useCaseList           = "catalog.list"
	useCaseGet            = "catalog.get"
	useCaseDelete         = "catalog.delete"
	useCaseListForSeller  = "catalog.list_for_seller"
	useCaseAdjustQuantity = "catalog.adjust_quantity"
)

var (
	ErrNotFound    = domain.ErrNotFound
	ErrRepository  = errors.New("catalog: repository failure")
	ErrItemMissing = errors.New("catalog: plant body is required")
)

type Service struct {
	repo domain.Repository
	inst *application.Instrumentation
}

func NewService(repo domain.Repository, tel observability.Observability) *Service {
	return &Service{
		repo: repo,
		inst: application.NewInstrumentation(tel, catalogService),
	}
}

// CreateItem stores the plant as sent by the seller.
func (s *Service) CreateItem(ctx context.Context, item *domain.Item) (_ store.InsertResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseCreate, "CreateItem")
	defer func() { run.End(err) }()

	if item == nil {
		run.Fail("ITEM_REQUIRED")
		return store.InsertResult{}, ErrItemMissing
	}
	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		run.Fail("REPO_INSERT_FAILED")
		return store.InsertResult{}, wrapRepositoryError(err)
	}
	run.Annotate(attribute.String("plant.id", id.Hex()))
	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Service) ListItems(ctx context.Context) (_ []domain.Item, err error) {
	ctx, run := s.inst.Start(ctx, useCaseList, "ListItems")
	defer func() { run.End(err) }()

	items, err := s.repo.List(ctx)
	if err != nil {
		run.Fail("REPO_LIST_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int("plant.count", len(items)))
	return items, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (_ *domain.Item, err error) {
	ctx, run := s.inst.Start(ctx, useCaseGet, "GetItem", attribute.String("plant.id", id))
	defer func() { run.End(err) }()

	oid, err := store.ParseID(id)
	if err != nil {
		run.Fail("INVALID_ID")
		return nil, err
	}
	item, err := s.repo.Get(ctx, oid)
	if err != nil {
		run.Fail("REPO_GET_FAILED")
		return nil, wrapRepositoryError(err)
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) (_ store.DeleteResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseDelete, "DeleteItem", attribute.String("plant.id", id))
	defer func() { run.End(err) }()

	oid, err := store.ParseID(id)
	if err != nil {
		run.Fail("INVALID_ID")
		return store.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, oid)
	if err != nil {
		run.Fail("REPO_DELETE_FAILED")
		return store.DeleteResult{}, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int64("plant.deleted", res.DeletedCount))
	return res, nil
}

// ListItemsForSeller returns the plants listed by sellerEmail.
func (s *Service) ListItemsForSeller(ctx context.Context, sellerEmail string) (_ []domain.Item, err error) {
	ctx, run := s.inst.Start(ctx, useCaseListForSeller, "ListItemsForSeller")
	defer func() { run.End(err) }()

	items, err := s.repo.ListBySeller(ctx, sellerEmail)
	if err != nil {
		run.Fail("REPO_LIST_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int("plant.count", len(items)))
	return items, nil
}

// AdjustQuantity applies delta in the given direction as a single atomic increment.
// A missing plant is reported through MatchedCount, not as an error.
func (s *Service) AdjustQuantity(ctx context.Context, id string, delta int, dir domain.Direction) (_ store.UpdateResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseAdjustQuantity, "AdjustQuantity",
		attribute.String("plant.id", id),
		attribute.Int("quantity.delta", delta),
		attribute.String("quantity.direction", string(dir)),
	)
	defer func() { run.End(err) }()

	oid, err := store.ParseID(id)
	if err != nil {
		run.Fail("INVALID_ID")
		return store.UpdateResult{}, err
	}
	res, err := s.repo.IncrementQuantity(ctx, oid, dir.Signed(delta))
	if err != nil {
		run.Fail("REPO_INC_FAILED")
		return store.UpdateResult{}, wrapRepositoryError(err)
	}
	if res.MatchedCount == 0 {
		run.Status("NO_MATCH")
	}
	return res, nil
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
