package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/services"
	"github.com/tbourn/mission-control/internal/store"
)

func TestFailFor_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		resource string
		err      error
		status   int
		code     string
		msg      string
	}{
		{"conflict", resMission, store.E("missions.create", store.KindDuplicateKey, errors.New("UNIQUE")), http.StatusBadRequest, ErrCodeConflict, "Mission with this name already exists"},
		{"not found", resUser, store.NotFound("users.get"), http.StatusNotFound, ErrCodeNotFound, "User not found"},
		{"malformed id", resIncident, store.E("incidents.get", store.KindMalformedID, nil), http.StatusNotFound, ErrCodeNotFound, "Incident not found"},
		{"mission missing under incident", resIncident, fmt.Errorf("%w: %w", services.ErrMissionNotFound, store.NotFound("missions.get")), http.StatusNotFound, ErrCodeNotFound, "Mission not found"},
		{"validation", resMission, &domain.ValidationError{Resource: "mission", Problems: []string{"name is required"}}, http.StatusInternalServerError, ErrCodeInvalidInput, ""},
		{"internal", resMission, errors.New("connection refused"), http.StatusInternalServerError, ErrCodeInternal, "connection refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			failFor(c, tc.resource, tc.err)

			if w.Code != tc.status {
				t.Fatalf("status = %d; want %d", w.Code, tc.status)
			}
			er := decode[ErrorResponse](t, w)
			if er.Code != tc.code {
				t.Fatalf("code = %q; want %q", er.Code, tc.code)
			}
			if tc.msg != "" && er.Error != tc.msg {
				t.Fatalf("error = %q; want %q", er.Error, tc.msg)
			}
			if tc.msg == "" && er.Error == "" {
				t.Fatalf("validation message must not be empty")
			}
		})
	}
}

// brokenMissions fails every call as an unreachable store would.
type brokenMissions struct{ err error }

func (b brokenMissions) Create(context.Context, domain.Mission) (*domain.Mission, error) {
	return nil, b.err
}
func (b brokenMissions) List(context.Context) ([]domain.Mission, error)        { return nil, b.err }
func (b brokenMissions) Get(context.Context, string) (*domain.Mission, error) { return nil, b.err }
func (b brokenMissions) Update(context.Context, string, domain.Mission) (*domain.Mission, error) {
	return nil, b.err
}
func (b brokenMissions) Delete(context.Context, string) error { return b.err }
func (b brokenMissions) Stats(context.Context) (int64, *time.Time, error) {
	return 0, nil, b.err
}

func TestMissions_StoreFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(brokenMissions{err: store.E("missions.list", store.KindUnknown, errors.New("server selection timeout"))}, nil, nil, nil)
	r := gin.New()
	r.GET("/missions", h.ListMissions)
	r.POST("/missions", h.CreateMission)

	w := do(t, r, http.MethodGet, "/missions", nil)
	wantError(t, w, http.StatusInternalServerError, "")
	if w.Header().Get("ETag") != "" {
		t.Fatalf("no ETag expected when stats fail")
	}

	// with no recorder configured, an Idempotency-Key is simply ignored
	wantError(t, do(t, r, http.MethodPost, "/missions", leiaReq(), "Idempotency-Key", "k"), http.StatusInternalServerError, "")
}

func TestValidationFailureIs500(t *testing.T) {
	r := newTestRouter(t, newTestStore(t))

	w := do(t, r, http.MethodPost, "/api/missions", MissionRequest{Name: "Hoth"})
	wantError(t, w, http.StatusInternalServerError, "")
	er := decode[ErrorResponse](t, w)
	if er.Code != ErrCodeInvalidInput || !strings.Contains(er.Error, "description is required") {
		t.Fatalf("unexpected body: %+v", er)
	}

	// a body that cannot be decoded never reaches validation
	w = do(t, r, http.MethodPost, "/api/missions", `{"name":`)
	wantError(t, w, http.StatusBadRequest, "invalid JSON body")
	if er := decode[ErrorResponse](t, w); er.Code != ErrCodeBadRequest {
		t.Fatalf("code = %q", er.Code)
	}
}
