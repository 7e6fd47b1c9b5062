package mongostore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/order"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type OrderRepository struct {
	store *Store
	coll  *mongo.Collection
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (primitive.ObjectID, error) {
	doc := order.Clone()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	err := r.store.observe(ctx, ordersCollection+".insertOne", func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "mongostore: insert order")
	}
	return doc.ID, nil
}

func (r *OrderRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var o domain.Order
	err := r.store.observe(ctx, ordersCollection+".findOne", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: find order")
	}
	return &o, nil
}

func (r *OrderRepository) ListForCustomer(ctx context.Context, email string) ([]domain.CustomerView, error) {
	out := []domain.CustomerView{}
	if err := r.aggregate(ctx, "customerOrders", customerOrdersPipeline(email), &out); err != nil {
		return nil, errors.Wrap(err, "mongostore: customer orders")
	}
	return out, nil
}

func (r *OrderRepository) ListForSeller(ctx context.Context, sellerEmail string) ([]domain.SellerView, error) {
	out := []domain.SellerView{}
	if err := r.aggregate(ctx, "sellerOrders", sellerOrdersPipeline(sellerEmail), &out); err != nil {
		return nil, errors.Wrap(err, "mongostore: seller orders")
	}
	return out, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.Status) (store.UpdateResult, error) {
	var res *mongo.UpdateResult
	err := r.store.observe(ctx, ordersCollection+".updateOne", func(ctx context.Context) error {
		var err error
		res, err = r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
		return err
	})
	if err != nil {
		return store.UpdateResult{}, errors.Wrap(err, "mongostore: update order status")
	}
	return updateResult(res), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	var res *mongo.DeleteResult
	err := r.store.observe(ctx, ordersCollection+".deleteOne", func(ctx context.Context) error {
		var err error
		res, err = r.coll.DeleteOne(ctx, bson.M{"_id": id})
		return err
	})
	if err != nil {
		return store.DeleteResult{}, errors.Wrap(err, "mongostore: delete order")
	}
	return deleteResult(res), nil
}

func (r *OrderRepository) aggregate(ctx context.Context, name string, pipeline mongo.Pipeline, out any) error {
	return r.store.observe(ctx, ordersCollection+".aggregate."+name, func(ctx context.Context) error {
		cur, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		return cur.All(ctx, out)
	})
}
