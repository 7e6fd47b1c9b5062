package catalog

import (
	"context"

	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Insert(ctx context.Context, item *Item) (primitive.ObjectID, error)
	List(ctx context.Context) ([]Item, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]Item, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error)
	// IncrementQuantity adds delta (possibly negative) to the item's quantity in one atomic step.
	IncrementQuantity(ctx context.Context, id primitive.ObjectID, delta int) (store.UpdateResult, error)
}
