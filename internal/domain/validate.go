package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ValidationError reports schema-level violations on a model. It is returned
// before anything reaches the store and is classified as invalid input.
type ValidationError struct {
	Resource string   // "mission", "incident", "user"
	Problems []string // e.g. "name is required"
}

func (e *ValidationError) Error() string {
	return e.Resource + " validation failed: " + strings.Join(e.Problems, "; ")
}

// validator accumulates problems for a single model.
type validator struct {
	resource string
	problems []string
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.problems = append(v.problems, field+" is required")
	}
}

func (v *validator) add(problem string) {
	v.problems = append(v.problems, problem)
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Resource: v.resource, Problems: v.problems}
}

// nfc normalizes s to Unicode NFC so equal-looking names compare equal on the
// unique index.
func nfc(s string) string { return norm.NFC.String(s) }

// ValidMissionStatus reports whether s is one of the mission status values.
func ValidMissionStatus(s string) bool {
	switch s {
	case MissionPending, MissionInProgress, MissionCompleted:
		return true
	}
	return false
}

// Normalize applies defaults and text normalization in place.
func (m *Mission) Normalize() {
	m.Name = nfc(m.Name)
	m.Description = nfc(m.Description)
	m.Commander = nfc(m.Commander)
	m.Status = strings.TrimSpace(m.Status)
	if m.Status == "" {
		m.Status = MissionPending
	}
	if m.Incidents == nil {
		m.Incidents = []string{}
	}
}

// Validate checks required fields and the status enum.
func (m *Mission) Validate() error {
	v := validator{resource: "mission"}
	v.required("name", m.Name)
	v.required("description", m.Description)
	v.required("commander", m.Commander)
	if !ValidMissionStatus(m.Status) {
		v.add("status must be one of: pending, in progress, completed")
	}
	return v.err()
}

// Normalize applies defaults and text normalization in place.
func (i *Incident) Normalize() {
	i.Title = nfc(i.Title)
	i.Description = nfc(i.Description)
	i.Status = nfc(strings.TrimSpace(i.Status))
	if i.Status == "" {
		i.Status = IncidentPending
	}
}

// Validate checks required fields. Status is free-form.
func (i *Incident) Validate() error {
	v := validator{resource: "incident"}
	v.required("title", i.Title)
	v.required("description", i.Description)
	v.required("mission", i.MissionID)
	return v.err()
}

// Normalize applies text normalization in place. The password is left
// untouched.
func (u *User) Normalize() {
	u.Name = nfc(u.Name)
	u.Email = strings.TrimSpace(u.Email)
}

// Validate checks required fields.
func (u *User) Validate() error {
	v := validator{resource: "user"}
	v.required("name", u.Name)
	v.required("email", u.Email)
	v.required("password", u.Password)
	return v.err()
}
