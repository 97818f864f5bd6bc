// Package middleware contains the Gin middleware shared by every route:
// request correlation, redacted access logging, panic recovery, metrics,
// idempotency keys and security headers.
//
// Recommended order is RequestID, AccessLog, Recovery so that panics and
// access lines both carry the correlation ID. The request-scoped logger is
// stored under the "logger" context key and read back with LoggerFrom.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"

	// maxRequestIDLen bounds client supplied correlation IDs.
	maxRequestIDLen = 128
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
//
// A client supplied X-Request-ID is reused when it is at most 128 visible
// ASCII characters; anything else is replaced with a fresh UUIDv4 so that
// callers cannot inject control characters into log lines. The ID is echoed
// on the response and stored in the Gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return false
		}
	}
	return true
}

// AccessLogOptions configures AccessLog.
//
// MaskHeaders names extra request headers whose values are replaced with
// "[REDACTED]". Authorization, Cookie and Set-Cookie are always masked.
type AccessLogOptions struct {
	MaskHeaders []string
}

// AccessLog writes one structured line per request with request metadata
// scrubbed of credentials and PII. Bodies are never logged.
//
// The line carries the request ID, method, route template, the :id path
// parameter when the route has one, the redacted query and headers, status,
// sizes and latency. Level is error for 5xx or when handlers attached gin
// errors, warn for 4xx and info otherwise.
//
// Before calling the next handler it stores a request-scoped logger
// (request_id, method, route) for LoggerFrom.
func AccessLog(opts AccessLogOptions) gin.HandlerFunc {
	red := newRedactor(opts.MaskHeaders)

	return func(c *gin.Context) {
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		rid := requestIDOf(c)

		scoped := log.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", route).
			Logger()
		c.Set(loggerKey, &scoped)

		query := red.text(truncate(c.Request.URL.RawQuery, maxQueryLogLength))
		headers := red.headers(c.Request.Header)

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case status >= 500 || len(c.Errors) > 0:
			ev = scoped.Error()
		case status >= 400:
			ev = scoped.Warn()
		default:
			ev = scoped.Info()
		}
		if id := c.Param("id"); id != "" {
			ev = ev.Str("resource_id", id)
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.
			Str("remote_ip", c.ClientIP()).
			Str("query", query).
			Int64("bytes_in", c.Request.ContentLength).
			Int("status", status).
			Int("bytes_out", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}

// requestIDOf prefers the ID set by RequestID, then the response header,
// then whatever the client sent.
func requestIDOf(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	if s := c.Writer.Header().Get(requestIDHeader); s != "" {
		return s
	}
	return c.GetHeader(requestIDHeader)
}

// Recovery turns a panic into a JSON 500 carrying the request ID, and logs
// the panic value with a stack trace. If the handler already wrote a
// response, only the status is forced.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := requestIDOf(c)
			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", rid).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"error":      "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or the global logger when
// AccessLog did not run. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate cuts s to max bytes plus an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
