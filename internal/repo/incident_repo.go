// Package repo implements the SQL persistence adapter, backed by GORM. This
// file provides repository functions for the Incident model.
//
// Incidents reference their mission by id only; there is no foreign key, so
// deleting a mission leaves its incidents untouched.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// CreateIncident inserts i with a fresh ObjectID and UTC timestamps.
func CreateIncident(ctx context.Context, db *gorm.DB, i *domain.Incident) (*domain.Incident, error) {
	now := time.Now().UTC()
	rec := *i
	rec.ID = store.NewID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, classify("incidents.create", err)
	}
	return &rec, nil
}

// ListIncidentsByMission returns the incidents whose mission equals
// missionID, in creation order. The mission itself is not looked up: an id
// with no incidents yields an empty slice.
func ListIncidentsByMission(ctx context.Context, db *gorm.DB, missionID string) ([]domain.Incident, error) {
	const op = "incidents.list"
	if _, err := store.ParseID(op, missionID); err != nil {
		return nil, err
	}
	out := []domain.Incident{}
	err := db.WithContext(ctx).
		Where("mission_id = ?", missionID).
		Order("created_at asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// GetIncident fetches an incident by id.
func GetIncident(ctx context.Context, db *gorm.DB, id string) (*domain.Incident, error) {
	const op = "incidents.get"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	var i domain.Incident
	if err := db.WithContext(ctx).Where("id = ?", id).First(&i).Error; err != nil {
		return nil, classify(op, err)
	}
	return &i, nil
}

// UpdateIncident writes title, description and status from i onto incident
// id. The mission reference is never changed.
func UpdateIncident(ctx context.Context, db *gorm.DB, id string, i *domain.Incident) (*domain.Incident, error) {
	const op = "incidents.update"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).
		Model(&domain.Incident{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       i.Title,
			"description": i.Description,
			"status":      i.Status,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound(op)
	}
	return GetIncident(ctx, db, id)
}

// DeleteIncident removes incident id. The owning mission's incidents list
// keeps the id.
func DeleteIncident(ctx context.Context, db *gorm.DB, id string) error {
	const op = "incidents.delete"
	if _, err := store.ParseID(op, id); err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Incident{})
	if res.Error != nil {
		return classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound(op)
	}
	return nil
}
