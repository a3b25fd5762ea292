package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeCredit   AccountType = "Credit"
	AccountTypeCard     AccountType = "Card"
)

// Account represents a financial account owned by a single user.
type Account struct {
	Base
	UserID string      `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string      `gorm:"not null" json:"name"`
	Type   AccountType `gorm:"not null" json:"type"`
}
