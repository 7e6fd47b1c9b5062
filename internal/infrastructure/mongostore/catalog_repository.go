package mongostore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/catalog"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type CatalogRepository struct {
	store *Store
	coll  *mongo.Collection
}

func (r *CatalogRepository) Insert(ctx context.Context, item *domain.Item) (primitive.ObjectID, error) {
	doc := item.Clone()
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	err := r.store.observe(ctx, plantsCollection+".insertOne", func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "mongostore: insert plant")
	}
	return doc.ID, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Item, error) {
	return r.find(ctx, bson.M{})
}

func (r *CatalogRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]domain.Item, error) {
	return r.find(ctx, bson.M{"seller.email": sellerEmail})
}

func (r *CatalogRepository) Get(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	var item domain.Item
	err := r.store.observe(ctx, plantsCollection+".findOne", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: find plant")
	}
	return &item, nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	var res *mongo.DeleteResult
	err := r.store.observe(ctx, plantsCollection+".deleteOne", func(ctx context.Context) error {
		var err error
		res, err = r.coll.DeleteOne(ctx, bson.M{"_id": id})
		return err
	})
	if err != nil {
		return store.DeleteResult{}, errors.Wrap(err, "mongostore: delete plant")
	}
	return deleteResult(res), nil
}

func (r *CatalogRepository) IncrementQuantity(ctx context.Context, id primitive.ObjectID, delta int) (store.UpdateResult, error) {
	var res *mongo.UpdateResult
	err := r.store.observe(ctx, plantsCollection+".inc", func(ctx context.Context) error {
		var err error
		res, err = r.coll.UpdateOne(ctx, bson.M{"_id": id}, quantityIncrement(delta))
		return err
	})
	if err != nil {
		return store.UpdateResult{}, errors.Wrap(err, "mongostore: adjust plant quantity")
	}
	return updateResult(res), nil
}

func (r *CatalogRepository) find(ctx context.Context, filter bson.M) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.store.observe(ctx, plantsCollection+".find", func(ctx context.Context) error {
		cur, err := r.coll.Find(ctx, filter)
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: list plants")
	}
	return out, nil
}

func quantityIncrement(delta int) bson.M {
	return bson.M{"$inc": bson.M{"quantity": delta}}
}
