// Package services – IncidentService
//
// Incidents are filed under an existing mission. Creation checks that the
// mission exists and appends the new id to the mission's incidents list.
// Updates are partial and never move an incident to another mission.
package services

import (
	"context"
	"fmt"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// IncidentPatch carries the optional fields of an incident update. Nil
// fields are left unchanged.
type IncidentPatch struct {
	Title       *string
	Description *string
	Status      *string
}

func (p IncidentPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// IncidentService provides incident CRUD.
type IncidentService struct {
	Repo     IncidentRepo
	Missions MissionRepo
}

// NewIncidentService constructs an IncidentService.
func NewIncidentService(r IncidentRepo, missions MissionRepo) *IncidentService {
	return &IncidentService{Repo: r, Missions: missions}
}

// Create files in under missionID. A missing or malformed mission id yields
// an error matching ErrMissionNotFound.
func (s *IncidentService) Create(ctx context.Context, missionID string, in domain.Incident) (*domain.Incident, error) {
	in.MissionID = missionID
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.Missions.GetMission(ctx, missionID); err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrMissionNotFound, err)
		}
		return nil, err
	}

	inc, err := s.Repo.CreateIncident(ctx, &in)
	if err != nil {
		return nil, err
	}

	// The mission may have been deleted since the lookup; the incident
	// stands on its own in that case.
	if err := s.Missions.AppendMissionIncident(ctx, missionID, inc.ID); err != nil && !store.IsNotFound(err) {
		return nil, err
	}
	return inc, nil
}

// ListByMission returns the incidents filed under missionID in creation
// order. A malformed missionID yields an error matching ErrMissionNotFound.
func (s *IncidentService) ListByMission(ctx context.Context, missionID string) ([]domain.Incident, error) {
	items, err := s.Repo.ListIncidentsByMission(ctx, missionID)
	if err != nil {
		if store.KindOf(err) == store.KindMalformedID {
			return nil, fmt.Errorf("%w: %w", ErrMissionNotFound, err)
		}
		return nil, err
	}
	return items, nil
}

// Get returns incident id.
func (s *IncidentService) Get(ctx context.Context, id string) (*domain.Incident, error) {
	return s.Repo.GetIncident(ctx, id)
}

// Update applies p to incident id. Provided title and description must be
// non-blank; a blank status resets to "pending". An empty patch returns the
// incident unchanged.
func (s *IncidentService) Update(ctx context.Context, id string, p IncidentPatch) (*domain.Incident, error) {
	cur, err := s.Repo.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.empty() {
		return cur, nil
	}
	next := *cur
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.UpdateIncident(ctx, id, &next)
}

// Delete removes incident id. The owning mission's list keeps the id.
func (s *IncidentService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteIncident(ctx, id)
}
