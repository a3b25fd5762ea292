package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser returns the User row for the authenticated principal. The
// row is created lazily by the identity middleware on first access, so the
// handler only needs to report whether this request performed the creation.
// @Summary     Get current user
// @Description Get the authenticated user's row, creating it on first access
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Existing user"
// @Success     201 {object} models.User "User created on first access"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if created, exists := c.Get(middleware.UserCreatedKey); exists && created.(bool) {
		status = http.StatusCreated
	}

	c.JSON(status, user)
}
