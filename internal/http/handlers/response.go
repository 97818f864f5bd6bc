// Package handlers implements the JSON endpoints for missions, incidents and
// users on top of the services layer.
//
// Every failure is written as an ErrorResponse:
//
//	{"request_id": "...", "code": "not_found", "error": "Mission not found"}
//
// and every delete answers {"message": "<Resource> deleted successfully"}.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Echo of X-Request-ID for correlating with server logs
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code  string `json:"code" example:"not_found"`
	Error string `json:"error" example:"Mission not found"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message" example:"Mission deleted successfully"`
}

// fail aborts with an ErrorResponse. Server errors are logged on the request
// logger and attached to the gin context so the access line carries them.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		_ = c.Error(errors.New(msg))
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("error", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Error:     msg,
	})
}

// Fail lets the router write fallback errors in the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func deleted(c *gin.Context, resource string) {
	ok(c, http.StatusOK, MessageResponse{Message: resource + " deleted successfully"})
}
