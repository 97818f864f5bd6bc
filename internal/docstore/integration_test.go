package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// startMongo runs a throwaway mongod and returns a connected Store with
// indexes in place. The test is skipped in -short mode or without Docker.
func startMongo(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "27017/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	s, err := Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "mission_control_test", 20*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}
	return s
}

func TestIntegration_MissionLifecycle(t *testing.T) {
	s := startMongo(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	m, err := s.CreateMission(ctx, &domain.Mission{
		Name:        "Rescue Princess Leia",
		Description: "Rescue Princess Leia from the Death Star.",
		Status:      domain.MissionPending,
		Commander:   "Luke Skywalker",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.CreateMission(ctx, &domain.Mission{Name: "Rescue Princess Leia"}); store.KindOf(err) != store.KindDuplicateKey {
		t.Fatalf("duplicate kind=%v err=%v", store.KindOf(err), err)
	}

	inc, err := s.CreateIncident(ctx, &domain.Incident{Title: "Tractor beam", Description: "Ship captured", Status: domain.IncidentPending, MissionID: m.ID})
	if err != nil {
		t.Fatalf("create incident: %v", err)
	}
	if err := s.AppendMissionIncident(ctx, m.ID, inc.ID); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.GetMission(ctx, m.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Incidents) != 1 || got.Incidents[0] != inc.ID {
		t.Fatalf("incidents=%v", got.Incidents)
	}
	if !got.CreatedAt.Equal(m.CreatedAt) {
		t.Fatalf("created_at round trip: %v != %v", got.CreatedAt, m.CreatedAt)
	}

	upd, err := s.UpdateMission(ctx, m.ID, &domain.Mission{Name: "Destroy the Death Star", Description: "d", Status: domain.MissionInProgress, Commander: "Luke Skywalker"})
	if err != nil || upd.Name != "Destroy the Death Star" || len(upd.Incidents) != 1 {
		t.Fatalf("update: got=%+v err=%v", upd, err)
	}

	list, err := s.ListIncidentsByMission(ctx, m.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list incidents: %v err=%v", list, err)
	}

	count, maxAt, err := s.MissionsStats(ctx)
	if err != nil || count != 1 || maxAt == nil {
		t.Fatalf("stats: %d %v %v", count, maxAt, err)
	}

	if err := s.DeleteMission(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetMission(ctx, m.ID); store.KindOf(err) != store.KindNotFound {
		t.Fatalf("get after delete kind=%v", store.KindOf(err))
	}
	if _, err := s.GetIncident(ctx, inc.ID); err != nil {
		t.Fatalf("incident should survive mission delete: %v", err)
	}
}

func TestIntegration_Idempotency(t *testing.T) {
	s := startMongo(t)
	ctx := context.Background()

	if _, err := s.CreateIdempotency(ctx, "k", "POST /api/users", "r1", 201, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateIdempotency(ctx, "k", "POST /api/users", "r2", 201, time.Hour); store.KindOf(err) != store.KindDuplicateKey {
		t.Fatalf("duplicate kind=%v", store.KindOf(err))
	}
	rec, err := s.GetIdempotency(ctx, "k", "POST /api/users", time.Now())
	if err != nil || rec.ResourceID != "r1" {
		t.Fatalf("get: %+v %v", rec, err)
	}
	n, err := s.PurgeExpiredIdempotency(ctx, time.Now().Add(2*time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("purge: n=%d err=%v", n, err)
	}
}
