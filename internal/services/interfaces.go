package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// UserServicer defines the contract for principal resolution.
type UserServicer interface {
	// GetOrCreateUser returns the User row for an external identity,
	// creating it on first access. The boolean reports whether this call
	// performed the creation.
	GetOrCreateUser(externalID string) (*models.User, bool, error)
	GetUserByID(id string) (*models.User, error)
}

// AccountUpdate holds the writable account fields for a partial update.
// Nil fields are left unchanged.
type AccountUpdate struct {
	Name *string
	Type *models.AccountType
}

// AccountServicer defines the contract for account-related business logic.
// Every operation is constrained to rows owned by the given user.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType) (*models.Account, error)
	GetUserAccounts(userID string) ([]models.Account, error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, update AccountUpdate) (*models.Account, error)
	DeleteAccount(userID, accountID string) (*models.Account, error)
}

// CategoryUpdate holds the writable category fields for a partial update.
type CategoryUpdate struct {
	Name *string
	Type *models.CategoryType
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType) (*models.Category, error)
	GetUserCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) (*models.Category, error)
}

// TransactionFilter holds optional equality filters for listing transactions.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
}

// TransactionUpdate holds the writable transaction fields for a partial update.
type TransactionUpdate struct {
	AccountID   *string
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, categoryID *string, transactionType models.TransactionType, amount decimal.Decimal, description *string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) (*models.Transaction, error)
}
