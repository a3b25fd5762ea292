package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "Income"
	TransactionTypeExpense  TransactionType = "Expense"
	TransactionTypeTransfer TransactionType = "Transfer"
)

// Transaction represents a financial transaction. The amount is a signed
// decimal: negative for money leaving the account, positive for money
// coming in.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"userId"`
	AccountID   string          `gorm:"type:uuid;not null;index" json:"accountId"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"categoryId"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Description *string         `json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`

	// Relationships. Deleting an account cascades deletion of its
	// transactions; deleting a category nulls out the reference instead.
	Account  Account   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}
