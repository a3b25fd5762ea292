package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single
// test, with foreign keys enabled so cascade and SET NULL behavior matches
// the production store.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared&_fk=1", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, wired exactly as in cmd/api.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(userService))

	users := v1.Group("/users")
	users.GET("/me", userHandler.GetCurrentUser)

	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.GetUserAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.PATCH("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PATCH("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	return &testApp{DB: db, Router: router}
}

// tokenFor signs an identity-provider token for the given external identity,
// using the same shared secret the middleware verifies with.
func tokenFor(t *testing.T, externalID string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   externalID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.Get().JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// data extracts the envelope payload as a map.
func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	payload, ok := parseJSON(t, rec)["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected object envelope, got %s", rec.Body.String())
	}
	return payload
}

// dataList extracts the envelope payload as a list.
func dataList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	payload, ok := parseJSON(t, rec)["data"].([]interface{})
	if !ok {
		t.Fatalf("expected array envelope, got %s", rec.Body.String())
	}
	return payload
}

// createAccount creates an account over the API and returns its id.
func (app *testApp) createAccount(t *testing.T, token, name, accountType string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, accountType)
	rec := app.request("POST", "/api/v1/accounts", body, token)
	if rec.Code != 201 {
		t.Fatalf("create account failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, rec)["id"].(string)
}

// createCategory creates a category over the API and returns its id.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != 201 {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, rec)["id"].(string)
}

// createTransaction creates a transaction over the API and returns its id.
func (app *testApp) createTransaction(t *testing.T, token, accountID, categoryID, transactionType, amount string) string {
	t.Helper()

	body := fmt.Sprintf(`{"accountId":%q,"type":%q,"amount":%q,"date":"2026-03-15T00:00:00Z"`, accountID, transactionType, amount)
	if categoryID != "" {
		body += fmt.Sprintf(`,"categoryId":%q`, categoryID)
	}
	body += "}"

	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != 201 {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	return data(t, rec)["id"].(string)
}
