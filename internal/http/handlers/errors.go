// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error codes written into the `code` field
// of ErrorResponse, and failFor, which turns a service error into the status
// and message the API contract prescribes:
//
//	conflict      -> 400 "<Resource> with this name already exists"
//	not_found     -> 404 "<Resource> not found"
//	invalid_input -> 500 with the validation message
//	internal      -> 500 with the underlying error text
//
// Clients are expected to branch on `code`; the `error` text is for humans.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/http/middleware"
	"github.com/tbourn/mission-control/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInvalidInput     = "invalid_input"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "unavailable"
)

// Resource names as they appear in error and confirmation messages.
const (
	resMission  = "Mission"
	resIncident = "Incident"
	resUser     = "User"
)

// failFor classifies err and writes the matching error response for resource.
// A body that decodes but fails validation is reported like any other failed
// write: 500 with the error text, tagged invalid_input.
func failFor(c *gin.Context, resource string, err error) {
	class := services.Classify(err)
	middleware.CountError(strings.ToLower(resource), class.String())

	switch class {
	case services.Conflict:
		fail(c, http.StatusBadRequest, ErrCodeConflict, resource+" with this name already exists")
	case services.NotFound:
		if errors.Is(err, services.ErrMissionNotFound) {
			resource = resMission
		}
		fail(c, http.StatusNotFound, ErrCodeNotFound, resource+" not found")
	case services.InvalidInput:
		fail(c, http.StatusInternalServerError, ErrCodeInvalidInput, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// badJSON rejects a body that could not be decoded.
func badJSON(c *gin.Context, resource string) {
	middleware.CountError(strings.ToLower(resource), services.InvalidInput.String())
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
}
