// Package repo implements the SQL persistence adapter, backed by GORM. This
// file provides repository functions for the Mission model.
//
// All functions are context-aware and accept a *gorm.DB handle. They follow
// the "thin repository" approach: no business logic, only CRUD persistence and
// query composition. Callers are expected to normalize and validate models
// before handing them over.
//
// Error semantics: every failure is a *store.Error.
//   - Malformed ids (not an ObjectID) -> store.KindMalformedID, checked before
//     touching the database.
//   - Missing rows -> store.KindNotFound.
//   - Unique index violations (missions.name) -> store.KindDuplicateKey.
//   - Anything else -> store.KindUnknown with the driver error attached.
//
// Functions:
//
//   - CreateMission(ctx, db, m) -> *domain.Mission, error
//   - ListMissions(ctx, db) -> []domain.Mission, error
//   - GetMission(ctx, db, id) -> *domain.Mission, error
//   - UpdateMission(ctx, db, id, m) -> *domain.Mission, error
//   - DeleteMission(ctx, db, id) -> error
//   - AppendMissionIncident(ctx, db, missionID, incidentID) -> error
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// CreateMission inserts m with a fresh ObjectID and UTC timestamps. The
// passed model is not modified; the persisted copy is returned.
func CreateMission(ctx context.Context, db *gorm.DB, m *domain.Mission) (*domain.Mission, error) {
	now := time.Now().UTC()
	rec := *m
	rec.ID = store.NewID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Incidents == nil {
		rec.Incidents = []string{}
	}
	if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, classify("missions.create", err)
	}
	return &rec, nil
}

// ListMissions returns every mission in creation order. It returns an empty
// (non-nil) slice when there are none.
func ListMissions(ctx context.Context, db *gorm.DB) ([]domain.Mission, error) {
	out := []domain.Mission{}
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, classify("missions.list", err)
	}
	return out, nil
}

// GetMission fetches a mission by id.
func GetMission(ctx context.Context, db *gorm.DB, id string) (*domain.Mission, error) {
	const op = "missions.get"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	var m domain.Mission
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, classify(op, err)
	}
	return &m, nil
}

// UpdateMission replaces the mutable fields (name, description, status,
// commander) of mission id with those of m and returns the updated row.
// The incidents list is not touched.
func UpdateMission(ctx context.Context, db *gorm.DB, id string, m *domain.Mission) (*domain.Mission, error) {
	const op = "missions.update"
	if _, err := store.ParseID(op, id); err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).
		Model(&domain.Mission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        m.Name,
			"description": m.Description,
			"status":      m.Status,
			"commander":   m.Commander,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound(op)
	}
	return GetMission(ctx, db, id)
}

// DeleteMission removes mission id. Incidents filed under it are left in
// place.
func DeleteMission(ctx context.Context, db *gorm.DB, id string) error {
	const op = "missions.delete"
	if _, err := store.ParseID(op, id); err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Mission{})
	if res.Error != nil {
		return classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound(op)
	}
	return nil
}

// AppendMissionIncident appends incidentID to the incidents list of mission
// missionID in a single statement, so concurrent appends do not overwrite
// each other.
func AppendMissionIncident(ctx context.Context, db *gorm.DB, missionID, incidentID string) error {
	const op = "missions.append_incident"
	if _, err := store.ParseID(op, missionID); err != nil {
		return err
	}
	res := db.WithContext(ctx).
		Model(&domain.Mission{}).
		Where("id = ?", missionID).
		Updates(map[string]any{
			"incidents":  gorm.Expr("json_insert(COALESCE(NULLIF(incidents, ''), '[]'), '$[#]', ?)", incidentID),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return classify(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound(op)
	}
	return nil
}
