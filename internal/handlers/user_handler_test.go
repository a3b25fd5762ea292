package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/uuid"
)

func newUserRouter(userID string, created bool, mock *mockUserService) *gin.Engine {
	router := gin.New()
	handler := NewUserHandler(mock)

	group := router.Group("/api/v1")
	if userID != "" {
		group.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDKey, userID)
			c.Set(middleware.UserCreatedKey, created)
			c.Next()
		})
	}
	group.GET("/users/me", handler.GetCurrentUser)

	return router
}

func TestGetCurrentUser(t *testing.T) {
	userID := uuid.New()

	mock := &mockUserService{
		getByIDFn: func(id string) (*models.User, error) {
			if id != userID {
				t.Errorf("expected user %s, got %s", userID, id)
			}
			return &models.User{Base: models.Base{ID: id}, ExternalID: "auth0|someone"}, nil
		},
	}

	t.Run("existing user returns 200 with a bare body", func(t *testing.T) {
		w := doRequest(t, newUserRouter(userID, false, mock), http.MethodGet, "/api/v1/users/me", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		// The user endpoint responds with the row itself, not an envelope.
		var user models.User
		decodeBody(t, w, &user)
		if user.ID != userID || user.ExternalID != "auth0|someone" {
			t.Errorf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("first access returns 201", func(t *testing.T) {
		w := doRequest(t, newUserRouter(userID, true, mock), http.MethodGet, "/api/v1/users/me", nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("missing principal is unauthorized", func(t *testing.T) {
		w := doRequest(t, newUserRouter("", false, mock), http.MethodGet, "/api/v1/users/me", nil)
		assertErrorCode(t, w, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	t.Run("lookup failure surfaces", func(t *testing.T) {
		failing := &mockUserService{
			getByIDFn: func(string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}

		w := doRequest(t, newUserRouter(userID, false, failing), http.MethodGet, "/api/v1/users/me", nil)
		assertErrorCode(t, w, http.StatusNotFound, "USER_NOT_FOUND")
	})
}
