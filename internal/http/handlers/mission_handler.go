// Mission HTTP handlers.
//
// This file exposes REST endpoints for mission resources:
//   - POST   /missions       (create, Idempotency-Key aware)
//   - GET    /missions       (list, weak ETag support)
//   - GET    /missions/{id}  (get)
//   - PUT    /missions/{id}  (full update)
//   - DELETE /missions/{id}  (delete)
//
// Handlers are transport-thin: they decode input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/domain"
)

// MissionRequest is the JSON payload for creating or replacing a mission.
// Any "incidents" field sent by the client is ignored.
type MissionRequest struct {
	Name        string `json:"name"        example:"Rescue Princess Leia"`
	Description string `json:"description" example:"Rescue Princess Leia from the Death Star."`
	// Status is one of pending, in progress, completed. Defaults to pending.
	Status    string `json:"status"    example:"pending"`
	Commander string `json:"commander" example:"Luke Skywalker"`
}

func (r MissionRequest) mission() domain.Mission {
	return domain.Mission{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Commander:   r.Commander,
	}
}

// CreateMission godoc
// @ID          createMission
// @Summary     Create a mission
// @Description Creates a mission. Names are unique; a repeated name is rejected with 400.
// @Tags        Missions
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Retry-safe key"  example(3f1c2a8e-create-1)
// @Param       body             body    handlers.MissionRequest  true  "Mission payload"
//
// @Success     201  {object}  domain.Mission
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON or duplicate name"
// @Failure     500  {object}  handlers.ErrorResponse  "Validation failed or internal error"
// @Router      /missions [post]
func (h *Handlers) CreateMission(c *gin.Context) {
	if replay(c, h.missions.Get) {
		return
	}
	var req MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resMission)
		return
	}

	m, err := h.missions.Create(c.Request.Context(), req.mission())
	if err != nil {
		failFor(c, resMission, err)
		return
	}
	h.remember(c, m.ID, http.StatusCreated)
	ok(c, http.StatusCreated, m)
}

// ListMissions godoc
// @ID          listMissions
// @Summary     List missions
// @Description Returns every mission in creation order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Missions
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"missions:3:1700000000\")
//
// @Success     200  {array}   domain.Mission
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /missions [get]
func (h *Handlers) ListMissions(c *gin.Context) {
	if notModified(c, "missions", h.missions.Stats) {
		return
	}
	items, err := h.missions.List(c.Request.Context())
	if err != nil {
		failFor(c, resMission, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetMission godoc
// @ID          getMission
// @Summary     Get a mission
// @Tags        Missions
// @Produce     json
//
// @Param       id  path  string  true  "Mission ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f901)
//
// @Success     200  {object}  domain.Mission
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /missions/{id} [get]
func (h *Handlers) GetMission(c *gin.Context) {
	m, err := h.missions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFor(c, resMission, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMission godoc
// @ID          updateMission
// @Summary     Replace a mission
// @Description Replaces name, description, status and commander. An absent status resets to pending. The incidents list is kept.
// @Tags        Missions
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Mission ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f901)
// @Param       body  body  handlers.MissionRequest  true  "Mission payload"
//
// @Success     200  {object}  domain.Mission
// @Failure     400  {object}  handlers.ErrorResponse "Malformed JSON or duplicate name"
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found"
// @Failure     500  {object}  handlers.ErrorResponse "Validation failed or internal error"
// @Router      /missions/{id} [put]
func (h *Handlers) UpdateMission(c *gin.Context) {
	var req MissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resMission)
		return
	}
	m, err := h.missions.Update(c.Request.Context(), c.Param("id"), req.mission())
	if err != nil {
		failFor(c, resMission, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMission godoc
// @ID          deleteMission
// @Summary     Delete a mission
// @Description Deletes the mission. Incidents filed under it are kept.
// @Tags        Missions
// @Produce     json
//
// @Param       id  path  string  true  "Mission ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f901)
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /missions/{id} [delete]
func (h *Handlers) DeleteMission(c *gin.Context) {
	if err := h.missions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFor(c, resMission, err)
		return
	}
	deleted(c, resMission)
}
