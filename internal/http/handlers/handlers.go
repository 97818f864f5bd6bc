package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/http/middleware"
	"github.com/tbourn/mission-control/internal/services"
)

//
// Service contracts (context-aware)
//

// MissionService defines mission lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MissionService interface {
	Create(ctx context.Context, in domain.Mission) (*domain.Mission, error)
	List(ctx context.Context) ([]domain.Mission, error)
	Get(ctx context.Context, id string) (*domain.Mission, error)
	// Update replaces every editable field of the mission.
	Update(ctx context.Context, id string, in domain.Mission) (*domain.Mission, error)
	Delete(ctx context.Context, id string) error
	// Stats returns the row count and latest update time, used for ETags.
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// IncidentService defines incident operations. Incidents are created under
// an existing mission and updated field by field.
type IncidentService interface {
	Create(ctx context.Context, missionID string, in domain.Incident) (*domain.Incident, error)
	ListByMission(ctx context.Context, missionID string) ([]domain.Incident, error)
	Get(ctx context.Context, id string) (*domain.Incident, error)
	Update(ctx context.Context, id string, p services.IncidentPatch) (*domain.Incident, error)
	Delete(ctx context.Context, id string) error
}

// UserService defines user account operations.
type UserService interface {
	Create(ctx context.Context, in domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// IdempotencyRecorder stores the outcome of a create request made with an
// Idempotency-Key so a retry can be answered with the same resource.
type IdempotencyRecorder interface {
	Remember(ctx context.Context, key, scope, resourceID string, status int) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for missions, incidents and users.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	missions  MissionService
	incidents IncidentService
	users     UserService
	idem      IdempotencyRecorder // optional
}

// New constructs and returns a Handlers instance bound to the given services.
// idem may be nil, in which case Idempotency-Key headers are validated but
// never recorded.
func New(missions MissionService, incidents IncidentService, users UserService, idem IdempotencyRecorder) *Handlers {
	return &Handlers{missions: missions, incidents: incidents, users: users, idem: idem}
}

//
// Helpers
//

// remember records a completed create for the request's Idempotency-Key.
// Failures are logged and otherwise ignored: the resource already exists.
func (h *Handlers) remember(c *gin.Context, resourceID string, status int) {
	if h.idem == nil {
		return
	}
	key, present := middleware.GetIdempotencyKey(c)
	if !present {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), key, middleware.IdempotencyScope(c), resourceID, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("resource_id", resourceID).Msg("idempotency record failed")
	}
}

// replay answers a retried create with the stored resource. It reports false
// when there is nothing to replay or the resource no longer exists, in which
// case the handler proceeds with a normal create.
func replay[T any](c *gin.Context, get func(context.Context, string) (*T, error)) bool {
	rp, found := middleware.ReplayOf(c)
	if !found {
		return false
	}
	v, err := get(c.Request.Context(), rp.ResourceID)
	if err != nil {
		return false
	}
	middleware.CountReplay()
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	ok(c, rp.Status, v)
	return true
}

// notModified sets a weak ETag derived from (count, latest update) and
// reports whether the client's If-None-Match already matches it. Stats
// errors disable the ETag instead of failing the request.
func notModified(c *gin.Context, kind string, stats func(context.Context) (int64, *time.Time, error)) bool {
	count, maxTS, err := stats(c.Request.Context())
	if err != nil {
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	etag := fmt.Sprintf(`W/"%s:%d:%d"`, kind, count, ts)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
