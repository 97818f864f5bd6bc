package domain

import "time"

// Idempotency records the outcome of a create request made with an
// Idempotency-Key header, keyed by (key, scope). Scope is the request method
// and concrete path (e.g. "POST /api/missions/<id>/incidents").
//
// A retry carrying the same key within the TTL is answered with the resource
// identified by ResourceID instead of executing the create again.
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_idem_key_scope,priority:1"`
	Scope      string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_idem_key_scope,priority:2"`
	ResourceID string    `gorm:"type:TEXT NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
