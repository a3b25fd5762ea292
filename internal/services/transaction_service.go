package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	accounts AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accounts AccountServicer) TransactionServicer {
	return &transactionService{db: db, accounts: accounts}
}

// checkCategoryOwnership verifies that a referenced category exists under the
// same owner. Reported as not found otherwise, never as forbidden.
func (s *transactionService) checkCategoryOwnership(userID, categoryID string) error {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateTransaction creates a new transaction. The referenced account, and
// category when given, must belong to the authenticated user.
func (s *transactionService) CreateTransaction(
	userID, accountID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	description *string,
	date time.Time,
) (*models.Transaction, error) {
	if _, err := s.accounts.GetAccountByID(userID, accountID); err != nil {
		return nil, err
	}
	if categoryID != nil {
		if err := s.checkCategoryOwnership(userID, *categoryID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions retrieves all transactions owned by a user, narrowed by
// the optional account and category equality filters.
func (s *transactionService) GetUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error) {
	query := s.db.Where("user_id = ?", userID)
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	transactions := make([]models.Transaction, 0)
	if err := query.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to an owned transaction.
// Re-pointing the account or category reference re-checks that the new
// target belongs to the same user.
func (s *transactionService) UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if update.AccountID != nil {
		if _, err := s.accounts.GetAccountByID(userID, *update.AccountID); err != nil {
			return nil, err
		}
	}
	if update.CategoryID != nil {
		if err := s.checkCategoryOwnership(userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes an owned transaction and returns its prior state.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}
