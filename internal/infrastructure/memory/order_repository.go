package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/order"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRepository joins against the catalog repository it was built with.
type OrderRepository struct {
	mu      sync.RWMutex
	order   []primitive.ObjectID
	orders  map[primitive.ObjectID]*domain.Order
	catalog *CatalogRepository
}

func NewOrderRepository(catalog *CatalogRepository) *OrderRepository {
	if catalog == nil {
		catalog = NewCatalogRepository()
	}
	return &OrderRepository{
		orders:  make(map[primitive.ObjectID]*domain.Order),
		catalog: catalog,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (primitive.ObjectID, error) {
	_ = ctx
	if order == nil {
		return primitive.NilObjectID, fmt.Errorf("order repository: order is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := order.Clone()
	if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	if _, exists := r.orders[clone.ID]; exists {
		return primitive.NilObjectID, fmt.Errorf("order repository: duplicate id %s", clone.ID.Hex())
	}
	r.orders[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.ID, nil
}

func (r *OrderRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *OrderRepository) ListForCustomer(ctx context.Context, email string) ([]domain.CustomerView, error) {
	matched := r.matching(ctx, func(o *domain.Order) bool { return o.Customer.Email == email })

	out := make([]domain.CustomerView, 0, len(matched))
	for _, o := range matched {
		item, ok := r.catalog.lookup(o.Line.PlantID)
		if !ok {
			continue
		}
		out = append(out, domain.CustomerView{
			Order:    o,
			PlantID:  item.ID,
			Image:    item.Image,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
			Quantity: o.Line.TotalQuantity,
		})
	}
	return out, nil
}

func (r *OrderRepository) ListForSeller(ctx context.Context, sellerEmail string) ([]domain.SellerView, error) {
	matched := r.matching(ctx, func(o *domain.Order) bool { return o.Seller == sellerEmail })

	out := make([]domain.SellerView, 0, len(matched))
	for _, o := range matched {
		item, ok := r.catalog.lookup(o.Line.PlantID)
		if !ok {
			continue
		}
		out = append(out, domain.SellerView{
			Order:   o,
			PlantID: item.ID,
			Name:    item.Name,
		})
	}
	return out, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) (store.UpdateResult, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return store.UpdateResult{Acknowledged: true}, nil
	}
	res := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if order.Status != status {
		order.Status = status
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return store.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.orders, id)
	r.order = removeID(r.order, id)
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r *OrderRepository) matching(ctx context.Context, keep func(*domain.Order) bool) []domain.Order {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Order
	for _, id := range r.order {
		if o := r.orders[id]; keep(o) {
			out = append(out, *o)
		}
	}
	return out
}
