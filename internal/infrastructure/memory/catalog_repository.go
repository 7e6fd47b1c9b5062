package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogRepository struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	items map[primitive.ObjectID]*domain.Item
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		items: make(map[primitive.ObjectID]*domain.Item),
	}
}

func (r *CatalogRepository) Insert(ctx context.Context, item *domain.Item) (primitive.ObjectID, error) {
	_ = ctx
	if item == nil {
		return primitive.NilObjectID, fmt.Errorf("catalog repository: item is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := item.Clone()
	if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	if _, exists := r.items[clone.ID]; exists {
		return primitive.NilObjectID, fmt.Errorf("catalog repository: duplicate id %s", clone.ID.Hex())
	}
	r.items[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.ID, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Item, error) {
	return r.filter(ctx, func(*domain.Item) bool { return true }), nil
}

func (r *CatalogRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]domain.Item, error) {
	return r.filter(ctx, func(i *domain.Item) bool { return i.Seller.Email == sellerEmail }), nil
}

func (r *CatalogRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return store.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r *CatalogRepository) IncrementQuantity(ctx context.Context, id primitive.ObjectID, delta int) (store.UpdateResult, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return store.UpdateResult{Acknowledged: true}, nil
	}
	item.Quantity += delta
	res := store.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if delta != 0 {
		res.ModifiedCount = 1
	}
	return res, nil
}

// lookup resolves a hex plant id the way the order join does; unresolvable ids report false.
func (r *CatalogRepository) lookup(hex string) (domain.Item, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return domain.Item{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.Item{}, false
	}
	return *item, true
}

func (r *CatalogRepository) filter(ctx context.Context, keep func(*domain.Item) bool) []domain.Item {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, 0, len(r.order))
	for _, id := range r.order {
		if item := r.items[id]; keep(item) {
			out = append(out, *item)
		}
	}
	return out
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
