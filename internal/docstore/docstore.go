// Package docstore implements the MongoDB persistence adapter.
//
// It stores missions, incidents, users and idempotency records in four
// collections of one database and exposes the same method set as
// repo.Store, so the services package can run on either backend.
//
// Error semantics match the SQL adapter: every failure is a *store.Error.
//   - Malformed ids -> store.KindMalformedID, checked before any round trip.
//   - mongo.ErrNoDocuments / zero matched documents -> store.KindNotFound.
//   - E11000 duplicate key -> store.KindDuplicateKey.
//   - Anything else -> store.KindUnknown.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tbourn/mission-control/internal/observability"
	"github.com/tbourn/mission-control/internal/store"
)

// Collection names.
const (
	MissionsCollection    = "missions"
	IncidentsCollection   = "incidents"
	UsersCollection       = "users"
	IdempotencyCollection = "idempotency"
)

// Store is a MongoDB-backed repository. It is safe for concurrent use.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an existing database handle. Close is a no-op for stores created
// this way; the caller owns the client.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Connect dials uri, verifies the primary is reachable within timeout and
// returns a Store over database. The returned Store owns the client.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	if uri == "" {
		return nil, errors.New("docstore: empty mongo uri")
	}
	if database == "" {
		return nil, errors.New("docstore: empty database name")
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetMonitor(observability.MongoMonitor())

	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Database returns the underlying database handle.
func (s *Store) Database() *mongo.Database { return s.db }

// Ping checks connectivity with the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client when the Store owns it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on. It is
// idempotent and safe to call on each start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		MissionsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_missions_name")},
			{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetName("idx_missions_created_at")},
		},
		IncidentsCollection: {
			{Keys: bson.D{{Key: "mission", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("idx_incidents_mission")},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("idx_users_email")},
			{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetName("idx_users_created_at")},
		},
		IdempotencyCollection: {
			{Keys: bson.D{{Key: "key", Value: 1}, {Key: "scope", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_idem_key_scope")},
			// Documents are removed by the server once expires_at has passed.
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_idem_expires_at")},
		},
	}
	for coll, models := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return classify(coll+".indexes", err)
		}
	}
	return nil
}

func (s *Store) missions() *mongo.Collection    { return s.db.Collection(MissionsCollection) }
func (s *Store) incidents() *mongo.Collection   { return s.db.Collection(IncidentsCollection) }
func (s *Store) users() *mongo.Collection       { return s.db.Collection(UsersCollection) }
func (s *Store) idempotency() *mongo.Collection { return s.db.Collection(IdempotencyCollection) }

// classify wraps a driver error into a tagged *store.Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.E(op, store.KindNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return store.E(op, store.KindDuplicateKey, err)
	default:
		return store.E(op, store.KindUnknown, err)
	}
}

// now returns the current time truncated to the millisecond precision BSON
// dates carry, so returned models equal what a later read yields.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
