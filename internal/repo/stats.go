// Package repo implements the SQL persistence adapter, backed by GORM. This
// file provides small aggregate queries used for conditional list responses
// (weak ETags) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
)

// tableStats returns the number of rows of model and the greatest UpdatedAt
// among them (nil when there are none).
func tableStats(ctx context.Context, db *gorm.DB, op string, model any) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(model)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, classify(op, err)
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, classify(op, err)
	}
	return count, &row.UpdatedAt, nil
}

// MissionsStats returns the mission count and latest UpdatedAt.
func MissionsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableStats(ctx, db, "missions.stats", &domain.Mission{})
}

// UsersStats returns the user count and latest UpdatedAt.
func UsersStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableStats(ctx, db, "users.stats", &domain.User{})
}
