package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/mission-control/internal/http/middleware"
	"github.com/tbourn/mission-control/internal/repo"
	"github.com/tbourn/mission-control/internal/services"
)

// newTestStore opens a private in-memory SQLite database with the full schema.
func newTestStore(t *testing.T) *repo.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repo.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := repo.NewStore(db)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

// newTestRouter mounts every handler on a bare engine, backed by st.
func newTestRouter(t *testing.T, st services.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	idem := services.NewIdempotencyService(st, time.Hour)
	h := New(
		services.NewMissionService(st),
		services.NewIncidentService(st, st),
		services.NewUserService(st),
		idem,
	)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(ctx context.Context, key, scope string) (middleware.Replay, bool, error) {
			rec, found, err := idem.Lookup(ctx, key, scope)
			if err != nil || !found {
				return middleware.Replay{}, false, err
			}
			return middleware.Replay{ResourceID: rec.ResourceID, Status: rec.Status}, true, nil
		}))
	mount(r.Group("/api"), h)
	return r
}

func mount(api *gin.RouterGroup, h *Handlers) {
	api.POST("/missions", h.CreateMission)
	api.GET("/missions", h.ListMissions)
	api.GET("/missions/:id", h.GetMission)
	api.PUT("/missions/:id", h.UpdateMission)
	api.DELETE("/missions/:id", h.DeleteMission)
	api.POST("/missions/:id/incidents", h.CreateIncident)
	api.GET("/missions/:id/incidents", h.ListMissionIncidents)
	api.GET("/incidents/:id", h.GetIncident)
	api.PUT("/incidents/:id", h.UpdateIncident)
	api.DELETE("/incidents/:id", h.DeleteIncident)
	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)
}

// do sends a request; body may be nil, a string (sent verbatim) or any value
// (JSON encoded). hdr holds header name/value pairs.
func do(t *testing.T, r http.Handler, method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}

// wantError asserts status and the `error` text of the envelope.
func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d; want %d (body=%s)", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if msg != "" && er.Error != msg {
		t.Fatalf("error = %q; want %q", er.Error, msg)
	}
}
