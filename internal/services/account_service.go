package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account. The owner reference is always the
// authenticated user, never a client-supplied value.
func (s *accountService) CreateAccount(userID, name string, accountType models.AccountType) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{
		UserID: userID,
		Name:   name,
		Type:   accountType,
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}

// GetUserAccounts retrieves all accounts owned by a user.
func (s *accountService) GetUserAccounts(userID string) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if err := s.db.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID for a specific user. A row that
// exists under another owner is reported as not found.
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount applies a partial update to an owned account. Identifier,
// owner, and creation timestamp are never touched; the update timestamp is
// refreshed on every call.
func (s *accountService) UpdateAccount(userID, accountID string, update AccountUpdate) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}

	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetAccountByID(userID, accountID)
}

// DeleteAccount removes an owned account and returns its prior state.
// Transactions referencing the account are deleted by the store's cascade.
func (s *accountService) DeleteAccount(userID, accountID string) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).Delete(&models.Account{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account, nil
}
