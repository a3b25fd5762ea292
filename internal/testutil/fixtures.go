package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fintrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique external identity.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithExternalID(t, db, fmt.Sprintf("ext-user-%d", nextID()))
}

// CreateTestUserWithExternalID creates a user for the given external identity.
func CreateTestUserWithExternalID(t *testing.T, db *gorm.DB, externalID string) *models.User {
	t.Helper()

	user := &models.User{ExternalID: externalID}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a checking account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithName(t, db, userID, fmt.Sprintf("Test Account %d", nextID()))
}

// CreateTestAccountWithName creates a checking account with the given name.
func CreateTestAccountWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID: userID,
		Name:   name,
		Type:   models.AccountTypeChecking,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Test Category %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates a category with the given name and type.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates an expense transaction against the given account.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, categoryID *string, amount string) *models.Transaction {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", amount, err)
	}

	tx := &models.Transaction{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       models.TransactionTypeExpense,
		Amount:     amt,
		Date:       time.Now().UTC(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
