package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
)

// Store binds the repository functions to a *gorm.DB so they satisfy the
// backend-agnostic repository interfaces consumed by the services package.
// It is safe for concurrent use.
type Store struct {
	DB *gorm.DB
}

// NewStore returns a Store over db.
func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// Ping proxies Ping.
func (s *Store) Ping(ctx context.Context) error { return Ping(ctx, s.DB) }

// Close releases the underlying connection pool.
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- missions ---

// CreateMission proxies CreateMission.
func (s *Store) CreateMission(ctx context.Context, m *domain.Mission) (*domain.Mission, error) {
	return CreateMission(ctx, s.DB, m)
}

// ListMissions proxies ListMissions.
func (s *Store) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	return ListMissions(ctx, s.DB)
}

// GetMission proxies GetMission.
func (s *Store) GetMission(ctx context.Context, id string) (*domain.Mission, error) {
	return GetMission(ctx, s.DB, id)
}

// UpdateMission proxies UpdateMission.
func (s *Store) UpdateMission(ctx context.Context, id string, m *domain.Mission) (*domain.Mission, error) {
	return UpdateMission(ctx, s.DB, id, m)
}

// DeleteMission proxies DeleteMission.
func (s *Store) DeleteMission(ctx context.Context, id string) error {
	return DeleteMission(ctx, s.DB, id)
}

// AppendMissionIncident proxies AppendMissionIncident.
func (s *Store) AppendMissionIncident(ctx context.Context, missionID, incidentID string) error {
	return AppendMissionIncident(ctx, s.DB, missionID, incidentID)
}

// MissionsStats proxies MissionsStats.
func (s *Store) MissionsStats(ctx context.Context) (int64, *time.Time, error) {
	return MissionsStats(ctx, s.DB)
}

// --- incidents ---

// CreateIncident proxies CreateIncident.
func (s *Store) CreateIncident(ctx context.Context, i *domain.Incident) (*domain.Incident, error) {
	return CreateIncident(ctx, s.DB, i)
}

// ListIncidentsByMission proxies ListIncidentsByMission.
func (s *Store) ListIncidentsByMission(ctx context.Context, missionID string) ([]domain.Incident, error) {
	return ListIncidentsByMission(ctx, s.DB, missionID)
}

// GetIncident proxies GetIncident.
func (s *Store) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	return GetIncident(ctx, s.DB, id)
}

// UpdateIncident proxies UpdateIncident.
func (s *Store) UpdateIncident(ctx context.Context, id string, i *domain.Incident) (*domain.Incident, error) {
	return UpdateIncident(ctx, s.DB, id, i)
}

// DeleteIncident proxies DeleteIncident.
func (s *Store) DeleteIncident(ctx context.Context, id string) error {
	return DeleteIncident(ctx, s.DB, id)
}

// --- users ---

// CreateUser proxies CreateUser.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	return CreateUser(ctx, s.DB, u)
}

// ListUsers proxies ListUsers.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	return ListUsers(ctx, s.DB)
}

// GetUser proxies GetUser.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return GetUser(ctx, s.DB, id)
}

// UpdateUser proxies UpdateUser.
func (s *Store) UpdateUser(ctx context.Context, id string, u *domain.User) (*domain.User, error) {
	return UpdateUser(ctx, s.DB, id, u)
}

// DeleteUser proxies DeleteUser.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return DeleteUser(ctx, s.DB, id)
}

// UsersStats proxies UsersStats.
func (s *Store) UsersStats(ctx context.Context) (int64, *time.Time, error) {
	return UsersStats(ctx, s.DB)
}

// --- idempotency ---

// GetIdempotency proxies GetIdempotency.
func (s *Store) GetIdempotency(ctx context.Context, key, scope string, now time.Time) (*domain.Idempotency, error) {
	return GetIdempotency(ctx, s.DB, key, scope, now)
}

// CreateIdempotency proxies CreateIdempotency.
func (s *Store) CreateIdempotency(ctx context.Context, key, scope, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return CreateIdempotency(ctx, s.DB, key, scope, resourceID, status, ttl)
}

// PurgeExpiredIdempotency proxies PurgeExpiredIdempotency.
func (s *Store) PurgeExpiredIdempotency(ctx context.Context, now time.Time) (int64, error) {
	return PurgeExpiredIdempotency(ctx, s.DB, now)
}
