package mongostore

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/Zhima-Mochi/plantbay/internal/domain/account"
	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
)

type AccountRepository struct {
	store *Store
	coll  *mongo.Collection
}

// InsertIfAbsent upserts with $setOnInsert so an existing account is returned untouched.
func (r *AccountRepository) InsertIfAbsent(ctx context.Context, acc *domain.Account) (*domain.Account, bool, error) {
	var existing domain.Account
	err := r.store.observe(ctx, usersCollection+".upsert", func(ctx context.Context) error {
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)
		return r.coll.FindOneAndUpdate(ctx,
			bson.M{"email": acc.Email},
			bson.M{"$setOnInsert": acc},
			opts,
		).Decode(&existing)
	})
	switch {
	case err == nil:
		return &existing, false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return acc.Clone(), true, nil
	default:
		return nil, false, errors.Wrap(err, "mongostore: upsert account")
	}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	err := r.store.observe(ctx, usersCollection+".findOne", func(ctx context.Context) error {
		return r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&acc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: find account")
	}
	return &acc, nil
}

func (r *AccountRepository) ListExcept(ctx context.Context, email string) ([]domain.Account, error) {
	out := []domain.Account{}
	err := r.store.observe(ctx, usersCollection+".find", func(ctx context.Context) error {
		cur, err := r.coll.Find(ctx, bson.M{"email": bson.M{"$ne": email}})
		if err != nil {
			return err
		}
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: list accounts")
	}
	return out, nil
}

func (r *AccountRepository) SetRole(ctx context.Context, email string, role domain.Role, status domain.Status) (store.UpdateResult, error) {
	return r.set(ctx, email, bson.M{"role": role, "status": status})
}

func (r *AccountRepository) SetStatus(ctx context.Context, email string, status domain.Status) (store.UpdateResult, error) {
	return r.set(ctx, email, bson.M{"status": status})
}

func (r *AccountRepository) set(ctx context.Context, email string, fields bson.M) (store.UpdateResult, error) {
	var res *mongo.UpdateResult
	err := r.store.observe(ctx, usersCollection+".updateOne", func(ctx context.Context) error {
		var err error
		res, err = r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
		return err
	})
	if err != nil {
		return store.UpdateResult{}, errors.Wrap(err, "mongostore: update account")
	}
	return updateResult(res), nil
}
