package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// CreateIncident inserts i with a fresh ObjectID.
func (s *Store) CreateIncident(ctx context.Context, i *domain.Incident) (*domain.Incident, error) {
	const op = "incidents.create"
	mid, err := store.ParseID(op, i.MissionID)
	if err != nil {
		return nil, err
	}
	ts := now()
	doc := incidentDoc{
		ID:          primitive.NewObjectID(),
		Title:       i.Title,
		Description: i.Description,
		Status:      i.Status,
		Mission:     mid,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := s.incidents().InsertOne(ctx, doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// ListIncidentsByMission returns the incidents of missionID in creation
// order. The mission document is not consulted.
func (s *Store) ListIncidentsByMission(ctx context.Context, missionID string) ([]domain.Incident, error) {
	const op = "incidents.list"
	mid, err := store.ParseID(op, missionID)
	if err != nil {
		return nil, err
	}
	cur, err := s.incidents().Find(ctx, bson.M{"mission": mid}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, classify(op, err)
	}
	var docs []incidentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(op, err)
	}
	out := make([]domain.Incident, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// GetIncident fetches an incident by id.
func (s *Store) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	const op = "incidents.get"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	var doc incidentDoc
	if err := s.incidents().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// UpdateIncident writes title, description and status. The mission reference
// is never changed.
func (s *Store) UpdateIncident(ctx context.Context, id string, i *domain.Incident) (*domain.Incident, error) {
	const op = "incidents.update"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"title":       i.Title,
		"description": i.Description,
		"status":      i.Status,
		"updated_at":  now(),
	}}
	var doc incidentDoc
	err = s.incidents().
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&doc)
	if err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// DeleteIncident removes incident id.
func (s *Store) DeleteIncident(ctx context.Context, id string) error {
	const op = "incidents.delete"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return err
	}
	res, err := s.incidents().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify(op, err)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(op)
	}
	return nil
}
