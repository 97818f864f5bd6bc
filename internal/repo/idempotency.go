// Package repo implements the SQL persistence adapter, backed by GORM. This
// file provides repository helpers for the Idempotency model used to make
// create (POST) endpoints safe to retry.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/store"
)

// GetIdempotency returns the non-expired record for (key, scope) or a
// store.KindNotFound error.
func GetIdempotency(ctx context.Context, db *gorm.DB, key, scope string, now time.Time) (*domain.Idempotency, error) {
	const op = "idempotency.get"
	if strings.TrimSpace(key) == "" {
		return nil, store.NotFound(op)
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("key = ? AND scope = ? AND expires_at > ?", key, scope, now).
		First(&rec).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return &rec, nil
}

// CreateIdempotency inserts a record. A concurrent insert for the same
// (key, scope) yields store.KindDuplicateKey.
func CreateIdempotency(ctx context.Context, db *gorm.DB, key, scope, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         store.NewID(),
		Key:        key,
		Scope:      scope,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, classify("idempotency.create", err)
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes records whose TTL has elapsed and returns
// how many were removed.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	if res.Error != nil {
		return 0, classify("idempotency.purge", res.Error)
	}
	return res.RowsAffected, nil
}
