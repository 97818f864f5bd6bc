package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

func TestIncidents_CRUD(t *testing.T) {
	db := newTestDB(t, &domain.Mission{}, &domain.Incident{})
	ctx := context.Background()

	missionID := store.NewID()
	otherID := store.NewID()

	a, err := CreateIncident(ctx, db, &domain.Incident{Title: "Leak", Description: "Coolant", Status: "pending", MissionID: missionID})
	if err != nil {
		t.Fatalf("CreateIncident: %v", err)
	}
	if !store.ValidID(a.ID) || a.MissionID != missionID {
		t.Fatalf("unexpected incident: %+v", a)
	}
	time.Sleep(time.Millisecond) // distinct created_at for ordering
	b, _ := CreateIncident(ctx, db, &domain.Incident{Title: "Fire", Description: "Hangar", Status: "pending", MissionID: missionID})
	if _, err := CreateIncident(ctx, db, &domain.Incident{Title: "Other", Description: "x", Status: "pending", MissionID: otherID}); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	list, err := ListIncidentsByMission(ctx, db, missionID)
	if err != nil {
		t.Fatalf("ListIncidentsByMission: %v", err)
	}
	if len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("unexpected list: %#v", list)
	}

	none, err := ListIncidentsByMission(ctx, db, store.NewID())
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %#v err=%v", none, err)
	}
	if _, err := ListIncidentsByMission(ctx, db, "nope"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("malformed mission id kind=%v", store.KindOf(err))
	}

	// Update never moves the incident to another mission.
	upd, err := UpdateIncident(ctx, db, a.ID, &domain.Incident{Title: "Leak fixed", Description: "Coolant", Status: "resolved", MissionID: otherID})
	if err != nil {
		t.Fatalf("UpdateIncident: %v", err)
	}
	if upd.Title != "Leak fixed" || upd.Status != "resolved" || upd.MissionID != missionID {
		t.Fatalf("unexpected update: %+v", upd)
	}

	if _, err := UpdateIncident(ctx, db, store.NewID(), upd); store.KindOf(err) != store.KindNotFound {
		t.Fatalf("missing update kind=%v", store.KindOf(err))
	}

	if err := DeleteIncident(ctx, db, a.ID); err != nil {
		t.Fatalf("DeleteIncident: %v", err)
	}
	if _, err := GetIncident(ctx, db, a.ID); store.KindOf(err) != store.KindNotFound {
		t.Fatalf("get after delete kind=%v", store.KindOf(err))
	}
	if _, err := GetIncident(ctx, db, "x"); store.KindOf(err) != store.KindMalformedID {
		t.Fatalf("malformed get kind=%v", store.KindOf(err))
	}
	if err := DeleteIncident(ctx, db, a.ID); store.KindOf(err) != store.KindNotFound {
		t.Fatalf("second delete kind=%v", store.KindOf(err))
	}
}

func TestDeleteMission_DoesNotCascadeToIncidents(t *testing.T) {
	db := newTestDB(t, &domain.Mission{}, &domain.Incident{})
	ctx := context.Background()

	m, _ := CreateMission(ctx, db, newMission("Cascade?"))
	inc, err := CreateIncident(ctx, db, &domain.Incident{Title: "t", Description: "d", Status: "pending", MissionID: m.ID})
	if err != nil {
		t.Fatalf("seed incident: %v", err)
	}
	if err := DeleteMission(ctx, db, m.ID); err != nil {
		t.Fatalf("delete mission: %v", err)
	}
	got, err := GetIncident(ctx, db, inc.ID)
	if err != nil || got.MissionID != m.ID {
		t.Fatalf("incident should outlive its mission: got=%+v err=%v", got, err)
	}
}
