package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the authenticated principal's row.
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"externalId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Account is a financial account owned by the authenticated user.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category is a transaction category owned by the authenticated user.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction is a financial transaction owned by the authenticated user.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	AccountID   string          `json:"accountId"`
	CategoryID  *string         `json:"categoryId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionFilter narrows a transaction list to an account, a category,
// or both. Distinct filters cache independently.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
}

// CreateAccountRequest holds the writable fields for creating an account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdateAccountRequest holds the writable fields for a partial account
// update. Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// CreateCategoryRequest holds the writable fields for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UpdateCategoryRequest holds the writable fields for a partial category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// CreateTransactionRequest holds the writable fields for creating a transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"accountId"`
	CategoryID  *string         `json:"categoryId,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}

// UpdateTransactionRequest holds the writable fields for a partial transaction update.
type UpdateTransactionRequest struct {
	AccountID   *string          `json:"accountId,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}
