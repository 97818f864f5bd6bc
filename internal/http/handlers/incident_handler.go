// Incident HTTP handlers.
//
//   - POST   /missions/{id}/incidents  (create under a mission)
//   - GET    /missions/{id}/incidents  (list for a mission)
//   - GET    /incidents/{id}
//   - PUT    /incidents/{id}           (partial update)
//   - DELETE /incidents/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/domain"
	"github.com/tbourn/mission-control/internal/services"
)

// IncidentRequest is the JSON payload for filing an incident. The owning
// mission comes from the URL; a "mission" field in the body is ignored.
type IncidentRequest struct {
	Title       string `json:"title"       example:"Tractor beam"`
	Description string `json:"description" example:"Millennium Falcon captured on approach."`
	// Status is free-form. Defaults to pending.
	Status string `json:"status" example:"pending"`
}

// IncidentUpdateRequest carries the fields to change. Omitted fields keep
// their current value; the owning mission cannot be changed.
type IncidentUpdateRequest struct {
	Title       *string `json:"title,omitempty"       example:"Tractor beam disabled"`
	Description *string `json:"description,omitempty" example:"Kenobi shut down the generator."`
	Status      *string `json:"status,omitempty"      example:"resolved"`
}

// CreateIncident godoc
// @ID          createIncident
// @Summary     File an incident under a mission
// @Description Creates an incident for an existing mission and appends its id to the mission's incidents list.
// @Tags        Incidents
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Retry-safe key"  example(3f1c2a8e-incident-1)
// @Param       id    path  string  true  "Mission ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f901)
// @Param       body  body  handlers.IncidentRequest  true  "Incident payload"
//
// @Success     201  {object}  domain.Incident
// @Failure     400  {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found"
// @Failure     500  {object}  handlers.ErrorResponse "Validation failed or internal error"
// @Router      /missions/{id}/incidents [post]
func (h *Handlers) CreateIncident(c *gin.Context) {
	if replay(c, h.incidents.Get) {
		return
	}
	var req IncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resIncident)
		return
	}

	inc, err := h.incidents.Create(c.Request.Context(), c.Param("id"), domain.Incident{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		failFor(c, resIncident, err)
		return
	}
	h.remember(c, inc.ID, http.StatusCreated)
	ok(c, http.StatusCreated, inc)
}

// ListMissionIncidents godoc
// @ID          listMissionIncidents
// @Summary     List a mission's incidents
// @Description Returns the incidents filed under the mission in creation order. An unknown but well-formed mission id yields an empty list.
// @Tags        Incidents
// @Produce     json
//
// @Param       id  path  string  true  "Mission ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f901)
//
// @Success     200  {array}   domain.Incident
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found (malformed id)"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /missions/{id}/incidents [get]
func (h *Handlers) ListMissionIncidents(c *gin.Context) {
	items, err := h.incidents.ListByMission(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFor(c, resIncident, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetIncident godoc
// @ID          getIncident
// @Summary     Get an incident
// @Tags        Incidents
// @Produce     json
//
// @Param       id  path  string  true  "Incident ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f902)
//
// @Success     200  {object}  domain.Incident
// @Failure     404  {object}  handlers.ErrorResponse "Incident not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /incidents/{id} [get]
func (h *Handlers) GetIncident(c *gin.Context) {
	inc, err := h.incidents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFor(c, resIncident, err)
		return
	}
	ok(c, http.StatusOK, inc)
}

// UpdateIncident godoc
// @ID          updateIncident
// @Summary     Update an incident
// @Description Changes title, description and/or status. At least one field is required.
// @Tags        Incidents
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Incident ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f902)
// @Param       body  body  handlers.IncidentUpdateRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Incident
// @Failure     400  {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     404  {object}  handlers.ErrorResponse "Incident not found"
// @Failure     500  {object}  handlers.ErrorResponse "Validation failed or internal error"
// @Router      /incidents/{id} [put]
func (h *Handlers) UpdateIncident(c *gin.Context) {
	var req IncidentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resIncident)
		return
	}
	inc, err := h.incidents.Update(c.Request.Context(), c.Param("id"), services.IncidentPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		failFor(c, resIncident, err)
		return
	}
	ok(c, http.StatusOK, inc)
}

// DeleteIncident godoc
// @ID          deleteIncident
// @Summary     Delete an incident
// @Description Deletes the incident. Its id stays in the owning mission's incidents list.
// @Tags        Incidents
// @Produce     json
//
// @Param       id  path  string  true  "Incident ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f902)
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     404  {object}  handlers.ErrorResponse "Incident not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /incidents/{id} [delete]
func (h *Handlers) DeleteIncident(c *gin.Context) {
	if err := h.incidents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFor(c, resIncident, err)
		return
	}
	deleted(c, resIncident)
}
