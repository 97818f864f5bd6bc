package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

func TestClassify(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	cases := []struct {
		name string
		err  error
		want store.Kind
	}{
		{"no documents", mongo.ErrNoDocuments, store.KindNotFound},
		{"duplicate write", dup, store.KindDuplicateKey},
		{"duplicate command", mongo.CommandError{Code: 11000, Message: "dup"}, store.KindDuplicateKey},
		{"other", errors.New("connection reset"), store.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := store.KindOf(classify("op", tc.err)); got != tc.want {
				t.Fatalf("kind=%v want %v", got, tc.want)
			}
		})
	}
	if classify("op", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}

func TestMissionDoc_ToDomain(t *testing.T) {
	ts := time.Date(2025, 5, 4, 12, 0, 0, 0, time.FixedZone("X", 3600))
	inc := primitive.NewObjectID()
	d := missionDoc{
		ID:        primitive.NewObjectID(),
		Name:      "Rescue Princess Leia",
		Status:    domain.MissionPending,
		Commander: "Luke Skywalker",
		Incidents: []primitive.ObjectID{inc},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m := d.toDomain()
	if m.ID != d.ID.Hex() || len(m.Incidents) != 1 || m.Incidents[0] != inc.Hex() {
		t.Fatalf("unexpected conversion: %+v", m)
	}
	if m.CreatedAt.Location() != time.UTC {
		t.Fatalf("timestamps must be UTC, got %v", m.CreatedAt.Location())
	}

	empty := (&missionDoc{}).toDomain()
	if empty.Incidents == nil {
		t.Fatalf("incidents must be a non-nil slice")
	}
}

func TestIncidentDoc_ToDomain_MissionHex(t *testing.T) {
	mid := primitive.NewObjectID()
	i := (&incidentDoc{ID: primitive.NewObjectID(), Title: "t", Mission: mid}).toDomain()
	if i.MissionID != mid.Hex() {
		t.Fatalf("mission=%q", i.MissionID)
	}
}

func TestConnect_RejectsEmptyArguments(t *testing.T) {
	if _, err := Connect(context.Background(), "", "db", time.Second); err == nil {
		t.Fatalf("expected error for empty uri")
	}
	if _, err := Connect(context.Background(), "mongodb://localhost:1", "", time.Second); err == nil {
		t.Fatalf("expected error for empty database")
	}
}

func TestMalformedIDs_NoRoundTrip(t *testing.T) {
	// A zero Store would panic on any collection access, so reaching the
	// driver would fail the test.
	s := &Store{}
	ctx := context.Background()
	if _, err := s.GetMission(ctx, "nope"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("GetMission kind=%v", store.KindOf(err))
	}
	if err := s.DeleteIncident(ctx, "nope"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("DeleteIncident kind=%v", store.KindOf(err))
	}
	if _, err := s.ListIncidentsByMission(ctx, "nope"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("ListIncidentsByMission kind=%v", store.KindOf(err))
	}
	if _, err := s.UpdateUser(ctx, "nope", &domain.User{}); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("UpdateUser kind=%v", store.KindOf(err))
	}
	if _, err := s.CreateIncident(ctx, &domain.Incident{MissionID: "nope"}); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("CreateIncident kind=%v", store.KindOf(err))
	}
	if err := s.AppendMissionIncident(ctx, primitive.NewObjectID().Hex(), "nope"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("AppendMissionIncident kind=%v", store.KindOf(err))
	}
	if _, err := s.GetIdempotency(ctx, " ", "scope", time.Now()); store.KindOf(err) != store.KindNotFound {
		t.Fatalf("GetIdempotency blank key kind=%v", store.KindOf(err))
	}
}

func TestStore_MockedDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create mission", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		m, err := s.CreateMission(context.Background(), &domain.Mission{Name: "Hoth", Description: "d", Status: domain.MissionPending, Commander: "c"})
		if err != nil {
			mt.Fatalf("CreateMission: %v", err)
		}
		if !store.ValidID(m.ID) || m.Incidents == nil {
			mt.Fatalf("unexpected mission: %+v", m)
		}
	})

	mt.Run("create mission duplicate name", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))
		_, err := s.CreateMission(context.Background(), &domain.Mission{Name: "Hoth"})
		if store.KindOf(err) != store.KindDuplicateKey {
			mt.Fatalf("kind=%v err=%v", store.KindOf(err), err)
		}
	})

	mt.Run("get mission missing", func(mt *mtest.T) {
		s := New(mt.DB)
		ns := mt.DB.Name() + "." + MissionsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := s.GetMission(context.Background(), primitive.NewObjectID().Hex())
		if store.KindOf(err) != store.KindNotFound {
			mt.Fatalf("kind=%v err=%v", store.KindOf(err), err)
		}
	})

	mt.Run("get mission found", func(mt *mtest.T) {
		s := New(mt.DB)
		ns := mt.DB.Name() + "." + MissionsCollection
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Endor"},
			{Key: "status", Value: domain.MissionInProgress},
			{Key: "incidents", Value: bson.A{}},
		}))
		m, err := s.GetMission(context.Background(), id.Hex())
		if err != nil || m.ID != id.Hex() || m.Name != "Endor" || m.Status != domain.MissionInProgress {
			mt.Fatalf("got=%+v err=%v", m, err)
		}
	})

	mt.Run("delete user missing", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := s.DeleteUser(context.Background(), primitive.NewObjectID().Hex())
		if store.KindOf(err) != store.KindNotFound {
			mt.Fatalf("kind=%v err=%v", store.KindOf(err), err)
		}
	})

	mt.Run("append incident to missing mission", func(mt *mtest.T) {
		s := New(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := s.AppendMissionIncident(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		if store.KindOf(err) != store.KindNotFound {
			mt.Fatalf("kind=%v err=%v", store.KindOf(err), err)
		}
	})
}
