package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

// CreateMission inserts m with a fresh ObjectID. The passed model is not
// modified.
func (s *Store) CreateMission(ctx context.Context, m *domain.Mission) (*domain.Mission, error) {
	const op = "missions.create"
	incidents := make([]primitive.ObjectID, 0, len(m.Incidents))
	for _, id := range m.Incidents {
		oid, err := store.ParseID(op, id)
		if err != nil {
			return nil, err
		}
		incidents = append(incidents, oid)
	}
	ts := now()
	doc := missionDoc{
		ID:          primitive.NewObjectID(),
		Name:        m.Name,
		Description: m.Description,
		Status:      m.Status,
		Commander:   m.Commander,
		Incidents:   incidents,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if _, err := s.missions().InsertOne(ctx, doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// ListMissions returns every mission in creation order.
func (s *Store) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	const op = "missions.list"
	cur, err := s.missions().Find(ctx, bson.D{}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, classify(op, err)
	}
	var docs []missionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(op, err)
	}
	out := make([]domain.Mission, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// GetMission fetches a mission by id.
func (s *Store) GetMission(ctx context.Context, id string) (*domain.Mission, error) {
	const op = "missions.get"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	var doc missionDoc
	if err := s.missions().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// UpdateMission replaces name, description, status and commander and returns
// the document as stored after the update.
func (s *Store) UpdateMission(ctx context.Context, id string, m *domain.Mission) (*domain.Mission, error) {
	const op = "missions.update"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":        m.Name,
		"description": m.Description,
		"status":      m.Status,
		"commander":   m.Commander,
		"updated_at":  now(),
	}}
	var doc missionDoc
	err = s.missions().
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).
		Decode(&doc)
	if err != nil {
		return nil, classify(op, err)
	}
	return doc.toDomain(), nil
}

// DeleteMission removes mission id. Its incidents are left in place.
func (s *Store) DeleteMission(ctx context.Context, id string) error {
	const op = "missions.delete"
	oid, err := store.ParseID(op, id)
	if err != nil {
		return err
	}
	res, err := s.missions().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return classify(op, err)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(op)
	}
	return nil
}

// AppendMissionIncident pushes incidentID onto the mission's incidents array.
func (s *Store) AppendMissionIncident(ctx context.Context, missionID, incidentID string) error {
	const op = "missions.append_incident"
	mid, err := store.ParseID(op, missionID)
	if err != nil {
		return err
	}
	iid, err := store.ParseID(op, incidentID)
	if err != nil {
		return err
	}
	res, err := s.missions().UpdateOne(ctx,
		bson.M{"_id": mid},
		bson.M{
			"$push": bson.M{"incidents": iid},
			"$set":  bson.M{"updated_at": now()},
		})
	if err != nil {
		return classify(op, err)
	}
	if res.MatchedCount == 0 {
		return store.NotFound(op)
	}
	return nil
}
