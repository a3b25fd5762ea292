// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Checking", "Savings", "Credit", "Card":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Income", "Expense":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Income", "Expense", "Transfer":
		return true
	}
	return false
}
