// Package services – MissionService
//
// MissionService normalizes and validates missions before handing them to the
// repository. Status defaults to "pending" on both create and update; update is
// a full replacement of the mutable fields.
package services

import (
	"context"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
)

// MissionService provides mission CRUD.
type MissionService struct {
	Repo MissionRepo
}

// NewMissionService constructs a MissionService.
func NewMissionService(r MissionRepo) *MissionService {
	return &MissionService{Repo: r}
}

// Create validates in and persists it. The incidents list always starts
// empty. in is not modified.
func (s *MissionService) Create(ctx context.Context, in domain.Mission) (*domain.Mission, error) {
	in.Incidents = nil
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.CreateMission(ctx, &in)
}

// List returns all missions in creation order.
func (s *MissionService) List(ctx context.Context) ([]domain.Mission, error) {
	return s.Repo.ListMissions(ctx)
}

// Get returns mission id.
func (s *MissionService) Get(ctx context.Context, id string) (*domain.Mission, error) {
	return s.Repo.GetMission(ctx, id)
}

// Update replaces name, description, status and commander of mission id with
// the values of in. The mission is resolved before validation, so an absent
// or malformed id is NotFound whatever the body holds.
func (s *MissionService) Update(ctx context.Context, id string, in domain.Mission) (*domain.Mission, error) {
	if _, err := s.Repo.GetMission(ctx, id); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.UpdateMission(ctx, id, &in)
}

// Delete removes mission id. Its incidents are kept.
func (s *MissionService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteMission(ctx, id)
}

// Stats returns the mission count and latest UpdatedAt.
func (s *MissionService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.MissionsStats(ctx)
}
