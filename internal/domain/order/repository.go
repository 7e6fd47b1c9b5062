package order

import (
	"context"

	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Insert(ctx context.Context, order *Order) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Order, error)
	// ListForCustomer and ListForSeller join each order with its catalog item and
	// drop orders whose item cannot be resolved.
	ListForCustomer(ctx context.Context, email string) ([]CustomerView, error)
	ListForSeller(ctx context.Context, sellerEmail string) ([]SellerView, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status Status) (store.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error)
}
