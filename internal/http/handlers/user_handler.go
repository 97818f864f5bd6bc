// User HTTP handlers.
//
//   - POST   /users       (create, Idempotency-Key aware)
//   - GET    /users       (list, weak ETag support)
//   - GET    /users/{id}
//   - PUT    /users/{id}  (full update)
//   - DELETE /users/{id}
//
// Email addresses are not unique and passwords are returned as stored.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/mission-control/internal/domain"
)

// UserRequest is the JSON payload for creating or replacing a user.
type UserRequest struct {
	Name     string `json:"name"     example:"John Doe"`
	Email    string `json:"email"    example:"john@example.com"`
	Password string `json:"password" example:"123456"`
}

func (r UserRequest) user() domain.User {
	return domain.User{Name: r.Name, Email: r.Email, Password: r.Password}
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Retry-safe key"  example(3f1c2a8e-user-1)
// @Param       body             body    handlers.UserRequest  true  "User payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     500  {object}  handlers.ErrorResponse "Validation failed or internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	if replay(c, h.users.Get) {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resUser)
		return
	}
	u, err := h.users.Create(c.Request.Context(), req.user())
	if err != nil {
		failFor(c, resUser, err)
		return
	}
	h.remember(c, u.ID, http.StatusCreated)
	ok(c, http.StatusCreated, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users
// @Tags        Users
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.User
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	if notModified(c, "users", h.users.Stats) {
		return
	}
	items, err := h.users.List(c.Request.Context())
	if err != nil {
		failFor(c, resUser, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f903)
//
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse "User not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFor(c, resUser, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Replace a user
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "User ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f903)
// @Param       body  body  handlers.UserRequest  true  "User payload"
//
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     404  {object}  handlers.ErrorResponse "User not found"
// @Failure     500  {object}  handlers.ErrorResponse "Validation failed or internal error"
// @Router      /users/{id} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, resUser)
		return
	}
	u, err := h.users.Update(c.Request.Context(), c.Param("id"), req.user())
	if err != nil {
		failFor(c, resUser, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user
// @Tags        Users
// @Produce     json
//
// @Param       id  path  string  true  "User ID (ObjectID hex)"  example(64b7f0c2e1a4b5c6d7e8f903)
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     404  {object}  handlers.ErrorResponse "User not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /users/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failFor(c, resUser, err)
		return
	}
	deleted(c, resUser)
}
