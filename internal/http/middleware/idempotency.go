// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for create endpoints (POST).
// It validates an Idempotency-Key request header, performs a caller-supplied
// lookup to detect previously completed requests, and annotates the request
// context so downstream handlers can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests and the resource they produced (ReplayOf)
//
// A key is scoped to the request method and concrete path, so the same key
// sent to POST /missions and POST /users refers to two different operations.
package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the canonical request header that clients use to
// convey an idempotency key for unsafe operations (e.g., POST).
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on responses served from a
// previously completed request.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// Context keys used internally to stash idempotency state.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // Replay: set when a stored result exists
)

// Replay describes the stored outcome of an earlier request with the same
// key and scope.
type Replay struct {
	ResourceID string
	Status     int
}

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates presence.
//
// Handlers should prefer this function over reading the header directly.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// ReplayOf returns the stored outcome found by IdempotencyValidator, if any.
func ReplayOf(c *gin.Context) (Replay, bool) {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return Replay{}, false
	}
	r, ok := v.(Replay)
	return r, ok && r.ResourceID != ""
}

// IdempotencyScope is the scope a key is recorded under: method and path.
func IdempotencyScope(c *gin.Context) string {
	return c.Request.Method + " " + c.Request.URL.Path
}

// IdempotencyOptions configures header validation behavior for
// IdempotencyValidator. TTL enforcement happens inside the lookup function.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative RFC7230-like
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// IdempotencyLookup returns the stored outcome for (key, scope) when one
// exists and has not expired. Lookup errors never block the request; the
// request is then processed as if no record existed.
type IdempotencyLookup func(ctx context.Context, key, scope string) (r Replay, found bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the request context and, for POST requests, checks for a
// prior completed request via the supplied lookup.
//
// Behavior:
//   - If header is absent: the middleware is a no-op.
//   - If header fails validation: responds 400 with the error envelope.
//   - If lookup finds a stored outcome: ReplayOf reports it to the handler.
//
// This middleware does not itself return a cached payload; handlers remain in
// control of how to serve replays (e.g., by fetching the stored resource).
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			rid := requestIDOf(c)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": rid,
				"code":       "bad_idempotency_key",
				"error":      "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && c.Request.Method == http.MethodPost {
			r, found, err := lookup(c.Request.Context(), key, IdempotencyScope(c))
			switch {
			case err != nil:
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			case found:
				c.Set(ctxKeyIdemReplay, r)
			}
		}

		c.Next()
	}
}
