package docstore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// GetIdempotency returns the non-expired record for (key, scope). The TTL
// index removes expired documents lazily, so expiry is also checked here.
func (s *Store) GetIdempotency(ctx context.Context, key, scope string, at time.Time) (*domain.Idempotency, error) {
	const op = "idempotency.get"
	if strings.TrimSpace(key) == "" {
		return nil, store.NotFound(op)
	}
	filter := bson.M{"key": key, "scope": scope, "expires_at": bson.M{"$gt": at}}
	var doc idempotencyDoc
	if err := s.idempotency().FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// CreateIdempotency inserts a record expiring after ttl.
func (s *Store) CreateIdempotency(ctx context.Context, key, scope, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	ts := now()
	doc := idempotencyDoc{
		ID:         primitive.NewObjectID(),
		Key:        key,
		Scope:      scope,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  ts,
		ExpiresAt:  ts.Add(ttl),
	}
	if _, err := s.idempotency().InsertOne(ctx, doc); err != nil {
		return nil, classify("idempotency.create", err)
	}
	return doc.toDomain(), nil
}

// PurgeExpiredIdempotency deletes expired records ahead of the TTL monitor.
func (s *Store) PurgeExpiredIdempotency(ctx context.Context, at time.Time) (int64, error) {
	res, err := s.idempotency().DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": at}})
	if err != nil {
		return 0, classify("idempotency.purge", err)
	}
	return res.DeletedCount, nil
}
