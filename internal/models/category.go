package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "Income"
	CategoryTypeExpense CategoryType = "Expense"
)

// Category represents a transaction category owned by a single user.
type Category struct {
	Base
	UserID string       `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string       `gorm:"not null" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
}
