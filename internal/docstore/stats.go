package docstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionsStats returns the mission count and latest updated_at.
func (s *Store) MissionsStats(ctx context.Context) (int64, *time.Time, error) {
	return s.collectionStats(ctx, MissionsCollection)
}

// UsersStats returns the user count and latest updated_at.
func (s *Store) UsersStats(ctx context.Context) (int64, *time.Time, error) {
	return s.collectionStats(ctx, UsersCollection)
}

func (s *Store) collectionStats(ctx context.Context, coll string) (int64, *time.Time, error) {
	op := coll + ".stats"
	c := s.db.Collection(coll)
	count, err := c.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, nil, classify(op, err)
	}
	if count == 0 {
		return 0, nil, nil
	}
	var row struct {
		UpdatedAt time.Time `bson:"updated_at"`
	}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetProjection(bson.M{"updated_at": 1})
	if err := c.FindOne(ctx, bson.D{}, opts).Decode(&row); err != nil {
		return 0, nil, classify(op, err)
	}
	at := row.UpdatedAt.UTC()
	return count, &at, nil
}
