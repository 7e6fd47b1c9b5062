// Package mongostore implements the domain repositories on MongoDB.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Zhima-Mochi/plantbay/internal/domain/store"
	"github.com/Zhima-Mochi/plantbay/internal/observability"
)

const (
	usersCollection  = "users"
	plantsCollection = "plants"
	ordersCollection = "orders"

	peer = "mongo"
)

// Store owns the client and hands out one repository per collection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	extCounter   observability.Counter
	extHistogram observability.Histogram
}

// Connect creates a client with the stable server API. The driver connects lazily, so
// reachability is only known after Ping.
func Connect(ctx context.Context, uri, database string, metrics observability.Metrics) (*Store, error) {
	if metrics == nil {
		metrics = observability.NopMetrics()
	}
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongostore: connect")
	}
	return &Store{
		client:       client,
		db:           client.Database(database),
		extCounter:   metrics.Counter(observability.MExternalRequests),
		extHistogram: metrics.Histogram(observability.MExternalRequestDuration),
	}, nil
}

// Ping runs the admin ping command against the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.observe(ctx, "admin.ping", func(ctx context.Context) error {
		var result bson.M
		err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}, options.RunCmd().SetReadPreference(readpref.Primary())).Decode(&result)
		return errors.Wrap(err, "mongostore: ping")
	})
}

// EnsureIndexes creates the unique email index backing account upserts.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return s.observe(ctx, usersCollection+".createIndex", func(ctx context.Context) error {
		_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		})
		return errors.Wrap(err, "mongostore: create users email index")
	})
}

func (s *Store) Disconnect(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "mongostore: disconnect")
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{store: s, coll: s.db.Collection(usersCollection)}
}

func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{store: s, coll: s.db.Collection(plantsCollection)}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s, coll: s.db.Collection(ordersCollection)}
}

// observe records external_requests_total and external_request_duration_seconds for one store call.
func (s *Store) observe(ctx context.Context, endpoint string, call func(ctx context.Context) error) error {
	start := time.Now()
	err := call(ctx)

	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "canceled"
	case errors.Is(err, mongo.ErrNoDocuments):
		outcome = "not_found"
	default:
		outcome = "error"
	}

	s.extCounter.Add(1,
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
		observability.L("outcome", outcome),
	)
	s.extHistogram.Observe(time.Since(start).Seconds(),
		observability.L("peer", peer),
		observability.L("endpoint", endpoint),
	)
	return err
}

func updateResult(res *mongo.UpdateResult) store.UpdateResult {
	if res == nil {
		return store.UpdateResult{}
	}
	return store.UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}
}

func deleteResult(res *mongo.DeleteResult) store.DeleteResult {
	if res == nil {
		return store.DeleteResult{}
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
