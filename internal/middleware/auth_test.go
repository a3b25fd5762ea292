package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

type stubUserService struct {
	getOrCreateFn func(externalID string) (*models.User, bool, error)
}

func (s *stubUserService) GetOrCreateUser(externalID string) (*models.User, bool, error) {
	return s.getOrCreateFn(externalID)
}

func (s *stubUserService) GetUserByID(string) (*models.User, error) {
	return nil, errors.New("not used")
}

func signToken(t *testing.T, subject string, key []byte, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authRouter(users services.UserServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(users))
	router.GET("/probe", func(c *gin.Context) {
		userID, _ := c.Get(UserIDKey)
		created, _ := c.Get(UserCreatedKey)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "created": created})
	})
	return router
}

func probe(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	key := []byte(config.Get().JWTSecret)

	t.Run("valid token resolves the principal", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(externalID string) (*models.User, bool, error) {
				if externalID != "auth0|alice" {
					t.Errorf("expected subject to be passed through, got %q", externalID)
				}
				return &models.User{Base: models.Base{ID: "user-1"}, ExternalID: externalID}, true, nil
			},
		}

		token := signToken(t, "auth0|alice", key, jwt.SigningMethodHS256)
		w := probe(authRouter(users), "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
		}
	})

	t.Run("missing header rejected", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				t.Error("user lookup should not run without a token")
				return nil, false, nil
			},
		}

		w := probe(authRouter(users), "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				t.Error("user lookup should not run with a malformed header")
				return nil, false, nil
			},
		}

		token := signToken(t, "auth0|alice", key, jwt.SigningMethodHS256)
		for _, header := range []string{token, "Basic " + token, "Bearer"} {
			if w := probe(authRouter(users), header); w.Code != http.StatusUnauthorized {
				t.Errorf("header %q: expected 401, got %d", header, w.Code)
			}
		}
	})

	t.Run("wrong signing key rejected", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				t.Error("user lookup should not run with a bad signature")
				return nil, false, nil
			},
		}

		token := signToken(t, "auth0|alice", []byte("some-other-key"), jwt.SigningMethodHS256)
		if w := probe(authRouter(users), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("token without subject rejected", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				t.Error("user lookup should not run without a subject")
				return nil, false, nil
			},
		}

		token := signToken(t, "", key, jwt.SigningMethodHS256)
		if w := probe(authRouter(users), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				t.Error("user lookup should not run with an expired token")
				return nil, false, nil
			},
		}

		claims := jwt.RegisteredClaims{
			Subject:   "auth0|alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		if w := probe(authRouter(users), "Bearer "+token); w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("principal resolution failure is an internal error", func(t *testing.T) {
		users := &stubUserService{
			getOrCreateFn: func(string) (*models.User, bool, error) {
				return nil, false, errors.New("store down")
			},
		}

		token := signToken(t, "auth0|alice", key, jwt.SigningMethodHS256)
		if w := probe(authRouter(users), "Bearer "+token); w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
	})
}
