// Package services defines the business logic for missions, incidents and
// users. This file centralizes common service-level error values so that they
// can be consistently returned by service methods and checked by callers.
//
// Persistence failures are not re-declared here: they travel up as tagged
// *store.Error values and are mapped by Classify. Translation into user-facing
// messages or HTTP status codes is performed at the handler layer.
package services

import "errors"

var (
	// ErrMissionNotFound is returned when an incident is filed under a
	// mission that does not exist. It wraps the underlying store error, so
	// Classify still reports NotFound.
	ErrMissionNotFound = errors.New("mission not found")
)
