package domain

import (
	"errors"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (Mission{}).TableName() != "missions" {
		t.Fatalf("Mission.TableName() = %q", (Mission{}).TableName())
	}
	if (Incident{}).TableName() != "incidents" {
		t.Fatalf("Incident.TableName() = %q", (Incident{}).TableName())
	}
	if (User{}).TableName() != "users" {
		t.Fatalf("User.TableName() = %q", (User{}).TableName())
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Mission{}, &Incident{}, &User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&Mission{}, &Incident{}, &User{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Mission{}, "ux_missions_name") {
		t.Fatalf("expected unique index ux_missions_name on missions")
	}
	if !m.HasIndex(&Incident{}, "idx_incidents_mission") {
		t.Fatalf("expected index idx_incidents_mission on incidents")
	}

	// The unique index rejects a second mission with the same name.
	a := Mission{ID: "a", Name: "Hoth", Description: "d", Status: MissionPending, Commander: "c", Incidents: []string{}}
	b := Mission{ID: "b", Name: "Hoth", Description: "d", Status: MissionPending, Commander: "c", Incidents: []string{}}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := db.Create(&b).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate mission name")
	}

	// Incidents round-trip through the JSON serializer.
	a.Incidents = []string{"i1", "i2"}
	if err := db.Save(&a).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	var got Mission
	if err := db.First(&got, "id = ?", "a").Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Incidents) != 2 || got.Incidents[0] != "i1" || got.Incidents[1] != "i2" {
		t.Fatalf("incidents round-trip: %#v", got.Incidents)
	}
}

func TestMission_NormalizeDefaults(t *testing.T) {
	m := Mission{Name: "Rescue", Description: "d", Commander: "Luke"}
	m.Normalize()
	if m.Status != MissionPending {
		t.Fatalf("default status = %q", m.Status)
	}
	if m.Incidents == nil || len(m.Incidents) != 0 {
		t.Fatalf("incidents should default to empty, got %#v", m.Incidents)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("valid mission rejected: %v", err)
	}

	// NFC: "e" + combining acute collapses to the precomposed rune.
	m2 := Mission{Name: "Café"}
	m2.Normalize()
	if m2.Name != "Café" {
		t.Fatalf("expected NFC name, got %q", m2.Name)
	}
}

func TestMission_Validate(t *testing.T) {
	m := Mission{Status: "aborted"}
	err := m.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Resource != "mission" || len(ve.Problems) != 4 {
		t.Fatalf("unexpected problems: %+v", ve)
	}
	msg := err.Error()
	for _, want := range []string{"name is required", "description is required", "commander is required", "status must be one of"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}

	for _, s := range []string{MissionPending, MissionInProgress, MissionCompleted} {
		ok := Mission{Name: "n", Description: "d", Commander: "c", Status: s}
		if err := ok.Validate(); err != nil {
			t.Fatalf("status %q rejected: %v", s, err)
		}
	}
}

func TestIncident_NormalizeValidate(t *testing.T) {
	i := Incident{Title: "Leak", Description: "Coolant", MissionID: "m1"}
	i.Normalize()
	if i.Status != IncidentPending {
		t.Fatalf("default status = %q", i.Status)
	}
	if err := i.Validate(); err != nil {
		t.Fatalf("valid incident rejected: %v", err)
	}

	// Status is free-form.
	i.Status = "escalated to the council"
	if err := i.Validate(); err != nil {
		t.Fatalf("free-form status rejected: %v", err)
	}

	bad := Incident{}
	bad.Normalize()
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "mission is required") {
		t.Fatalf("expected missing mission error, got %v", err)
	}
}

func TestUser_Validate(t *testing.T) {
	u := User{Name: "John Doe", Email: " john@example.com ", Password: " 123456 "}
	u.Normalize()
	if u.Email != "john@example.com" {
		t.Fatalf("email not trimmed: %q", u.Email)
	}
	if u.Password != " 123456 " {
		t.Fatalf("password must be stored exactly as given, got %q", u.Password)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}
	if err := (&User{Name: "x"}).Validate(); err == nil {
		t.Fatalf("expected missing email/password error")
	}
}
