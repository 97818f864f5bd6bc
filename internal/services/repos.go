package services

import (
	"context"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
)

// MissionRepo defines the persistence contract required by MissionService.
// Implementations return *store.Error values on failure.
type MissionRepo interface {
	CreateMission(ctx context.Context, m *domain.Mission) (*domain.Mission, error)
	ListMissions(ctx context.Context) ([]domain.Mission, error)
	GetMission(ctx context.Context, id string) (*domain.Mission, error)
	UpdateMission(ctx context.Context, id string, m *domain.Mission) (*domain.Mission, error)
	DeleteMission(ctx context.Context, id string) error

	// AppendMissionIncident records incidentID on the mission's list.
	AppendMissionIncident(ctx context.Context, missionID, incidentID string) error

	// MissionsStats returns the count and latest UpdatedAt for ETags.
	MissionsStats(ctx context.Context) (int64, *time.Time, error)
}

// IncidentRepo defines the persistence contract required by IncidentService.
type IncidentRepo interface {
	CreateIncident(ctx context.Context, i *domain.Incident) (*domain.Incident, error)
	ListIncidentsByMission(ctx context.Context, missionID string) ([]domain.Incident, error)
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	UpdateIncident(ctx context.Context, id string, i *domain.Incident) (*domain.Incident, error)
	DeleteIncident(ctx context.Context, id string) error
}

// UserRepo defines the persistence contract required by UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, u *domain.User) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	UsersStats(ctx context.Context) (int64, *time.Time, error)
}

// IdempotencyRepo defines the persistence contract required by
// IdempotencyService.
type IdempotencyRepo interface {
	GetIdempotency(ctx context.Context, key, scope string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, key, scope, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
	PurgeExpiredIdempotency(ctx context.Context, now time.Time) (int64, error)
}

// Store is the full backend surface. Both repo.Store (SQL) and
// docstore.Store (MongoDB) implement it.
type Store interface {
	MissionRepo
	IncidentRepo
	UserRepo
	IdempotencyRepo

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
