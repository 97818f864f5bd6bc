// Package domain defines the persistence models for missions, incidents and
// users. The same structs are mapped by GORM (SQL adapter) and converted to
// BSON documents by the MongoDB adapter, and they are the JSON representation
// returned by the HTTP API.
package domain

import (
	"time"
)

// Mission status values. Any transition between them is accepted.
const (
	MissionPending    = "pending"
	MissionInProgress = "in progress"
	MissionCompleted  = "completed"
)

// IncidentPending is the status given to incidents created without one.
// Incident status is otherwise free-form (e.g. "resolved").
const IncidentPending = "pending"

// Mission is a named operation led by a commander. Names are unique across
// all missions (enforced by a unique index in every adapter).
//
// Fields:
//   - ID: ObjectID hex string (char(24)).
//   - Name: unique, required.
//   - Description, Commander: required.
//   - Status: one of pending | in progress | completed; defaults to pending.
//   - Incidents: ids of incidents filed under the mission, in filing order.
//     Deleting an incident does not remove its id from this list.
type Mission struct {
	ID          string    `json:"id"          gorm:"type:char(24);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(255);not null;uniqueIndex:ux_missions_name"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Status      string    `json:"status"      gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','in progress','completed')"`
	Commander   string    `json:"commander"   gorm:"type:varchar(255);not null"`
	Incidents   []string  `json:"incidents"   gorm:"type:text;serializer:json"`
	CreatedAt   time.Time `json:"created_at"  gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Mission.
func (Mission) TableName() string { return "missions" }

// Incident is an event recorded against exactly one mission. Its lifetime is
// independent of the mission: deleting a mission leaves its incidents intact.
type Incident struct {
	ID          string    `json:"id"          gorm:"type:char(24);primaryKey"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Status      string    `json:"status"      gorm:"type:varchar(64);not null;default:'pending'"`
	MissionID   string    `json:"mission"     gorm:"column:mission_id;type:char(24);not null;index:idx_incidents_mission,priority:1"`
	CreatedAt   time.Time `json:"created_at"  gorm:"index:idx_incidents_mission,priority:2"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Incident.
func (Incident) TableName() string { return "incidents" }

// User is an account record.
//
// Email is not unique and Password is stored and returned exactly as
// submitted. Both are known gaps kept for compatibility with existing clients.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(24);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;index"`
	Password  string    `json:"password"   gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
