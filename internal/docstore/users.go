package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// CreateUser inserts u with a fresh ObjectID.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	ts := now()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := s.users().InsertOne(ctx, doc); err != nil {
		return nil, classify("users.create", err)
	}
	return doc.toDomain(), nil
}

// ListUsers returns every user in creation order.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	const op = "users.list"
	cur, err := s.users().Find(ctx, bson.D{}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, classify(op, err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(op, err)
	}
	out := make([]domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	const op = "users.get"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := s.users().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// UpdateUser writes name, email and password.
func (s *Store) UpdateUser(ctx context.Context, id string, u *domain.User) (*domain.User, error) {
	const op = "users.update"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.Password,
		"updated_at": now(),
	}}
	var doc userDoc
	err = s.users().
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&doc)
	if err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// DeleteUser removes user id.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	const op = "users.delete"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return err
	}
	res, err := s.users().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify(op, err)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(op)
	}
	return nil
}
