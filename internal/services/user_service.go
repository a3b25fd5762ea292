package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// userService handles principal resolution.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// GetOrCreateUser looks up the User row for an external identity and creates
// it if this is the identity's first authenticated access. The only
// client-independent field a new row carries is the identity reference.
func (s *userService) GetOrCreateUser(externalID string) (*models.User, bool, error) {
	if externalID == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "external identity is required")
	}

	var user models.User
	err := s.db.Where("external_id = ?", externalID).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user = models.User{ExternalID: externalID}
	if err := s.db.Create(&user).Error; err != nil {
		// Two first-access requests can race on the unique index; the
		// loser adopts the winner's row.
		var existing models.User
		if lookupErr := s.db.Where("external_id = ?", externalID).First(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &user, true, nil
}

// GetUserByID retrieves a user by its row identifier.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
