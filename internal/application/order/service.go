// Package order implements checkout, order listings and the seller-side order lifecycle.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Zhima-Mochi/plantbay/internal/application"
	"github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	domain "github.com/Zhima-Mochi/plantbay/internal/domain/order"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

const (
	orderService = "order-service"

	useCasePlace          = "order.place"
	useCaseAdjustQuantity = "order.adjust_quantity"
	useCaseListCustomer   = "order.list_for_customer"
	useCaseListSeller     = "order.list_for_seller"
	useCaseUpdateStatus   = "order.update_status"
	useCaseDelete         = "order.delete"
)

var (
	ErrNotFound     = domain.ErrNotFound
	ErrConflict     = domain.ErrDelivered
	ErrRepository   = errors.New("order: repository failure")
	ErrOrderMissing = errors.New("order: order body is required")
)

type Service struct {
	repo      domain.Repository
	inventory InventoryPort
	inst      *application.Instrumentation
	now       func() time.Time
}

func NewService(repo domain.Repository, inventory InventoryPort, tel observability.Observability) *Service {
	return &Service{
		repo:      repo,
		inventory: inventory,
		inst:      application.NewInstrumentation(tel, orderService),
		now:       time.Now,
	}
}

// PlaceOrder records a checkout. Stock is adjusted by a separate AdjustQuantity call.
func (s *Service) PlaceOrder(ctx context.Context, o *domain.Order) (_ store.InsertResult, err error) {
	ctx, run := s.inst.Start(ctx, useCasePlace, "PlaceOrder")
	defer func() { run.End(err) }()

	if o == nil {
		run.Fail("ORDER_REQUIRED")
		return store.InsertResult{}, ErrOrderMissing
	}
	entity := o.Clone()
	entity.Prepare(s.now())
	run.Annotate(
		attribute.String("order.plant_id", entity.Line.PlantID),
		attribute.String("order.seller", entity.Seller),
		attribute.Int("order.quantity", entity.Line.TotalQuantity),
	)

	id, err := s.repo.Insert(ctx, entity)
	if err != nil {
		run.Fail("REPO_INSERT_FAILED")
		return store.InsertResult{}, wrapRepositoryError(err)
	}
	run.Event("order.placed", attribute.String("order.id", id.Hex()))
	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// AdjustQuantity moves catalog stock for an order: "increase" restores, anything else deducts.
func (s *Service) AdjustQuantity(ctx context.Context, itemID string, delta int, direction string) (_ store.UpdateResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseAdjustQuantity, "AdjustQuantity",
		attribute.String("plant.id", itemID),
		attribute.Int("quantity.delta", delta),
		attribute.String("quantity.direction", direction),
	)
	defer func() { run.End(err) }()

	res, err := s.inventory.AdjustQuantity(ctx, itemID, delta, catalog.Direction(direction))
	if err != nil {
		run.Fail("INVENTORY_ADJUST_FAILED")
		return store.UpdateResult{}, err
	}
	if res.MatchedCount == 0 {
		run.Status("NO_MATCH")
	}
	return res, nil
}

// ListOrdersForCustomer returns the buyer's orders enriched with current catalog data.
func (s *Service) ListOrdersForCustomer(ctx context.Context, email string) (_ []domain.CustomerView, err error) {
	ctx, run := s.inst.Start(ctx, useCaseListCustomer, "ListOrdersForCustomer")
	defer func() { run.End(err) }()

	views, err := s.repo.ListForCustomer(ctx, email)
	if err != nil {
		run.Fail("REPO_AGGREGATE_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int("order.count", len(views)))
	return views, nil
}

func (s *Service) ListOrdersForSeller(ctx context.Context, sellerEmail string) (_ []domain.SellerView, err error) {
	ctx, run := s.inst.Start(ctx, useCaseListSeller, "ListOrdersForSeller")
	defer func() { run.End(err) }()

	views, err := s.repo.ListForSeller(ctx, sellerEmail)
	if err != nil {
		run.Fail("REPO_AGGREGATE_FAILED")
		return nil, wrapRepositoryError(err)
	}
	run.Annotate(attribute.Int("order.count", len(views)))
	return views, nil
}

// UpdateOrderStatus sets status without checking the current state.
func (s *Service) UpdateOrderStatus(ctx context.Context, id, status string) (_ store.UpdateResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseUpdateStatus, "UpdateOrderStatus",
		attribute.String("order.id", id),
		attribute.String("order.status", status),
	)
	defer func() { run.End(err) }()

	oid, err := store.ParseID(id)
	if err != nil {
		run.Fail("INVALID_ID")
		return store.UpdateResult{}, err
	}
	res, err := s.repo.SetStatus(ctx, oid, domain.Status(status))
	if err != nil {
		run.Fail("REPO_UPDATE_FAILED")
		return store.UpdateResult{}, wrapRepositoryError(err)
	}
	if res.MatchedCount == 0 {
		run.Status("NO_MATCH")
	}
	return res, nil
}

// DeleteOrder removes an order unless it has been delivered.
func (s *Service) DeleteOrder(ctx context.Context, id string) (_ store.DeleteResult, err error) {
	ctx, run := s.inst.Start(ctx, useCaseDelete, "DeleteOrder", attribute.String("order.id", id))
	defer func() { run.End(err) }()

	oid, err := store.ParseID(id)
	if err != nil {
		run.Fail("INVALID_ID")
		return store.DeleteResult{}, err
	}
	existing, err := s.repo.Get(ctx, oid)
	if err != nil {
		run.Fail("ORDER_LOOKUP_FAILED")
		return store.DeleteResult{}, wrapRepositoryError(err)
	}
	run.Annotate(attribute.String("order.status", string(existing.Status)))
	if err = existing.CanDelete(); err != nil {
		run.Fail("ORDER_DELIVERED")
		return store.DeleteResult{}, err
	}

	res, err := s.repo.Delete(ctx, oid)
	if err != nil {
		run.Fail("REPO_DELETE_FAILED")
		return store.DeleteResult{}, wrapRepositoryError(err)
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
