package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSocialAccountNotFound      = errors.New("social account not found")
	ErrSocialAccountAlreadyExists = errors.New("social account already exists")
)

type SocialAccountRepository interface {
	// FindByProviderUID looks up an identity by its globally-unique
	// (provider, provider_user_id) pair.
	FindByProviderUID(db *gorm.DB, provider, providerUserID string) (*models.SocialAccount, error)

	// FindByUserAndProvider returns the user's identity for one provider.
	FindByUserAndProvider(db *gorm.DB, userID, provider string) (*models.SocialAccount, error)

	ListByUserID(db *gorm.DB, userID string) ([]models.SocialAccount, error)
	CountByUserID(db *gorm.DB, userID string) (int64, error)

	// Create returns ErrSocialAccountAlreadyExists on a unique-constraint
	// violation so the caller can re-run its lookup.
	Create(db *gorm.DB, account *models.SocialAccount) error

	Delete(db *gorm.DB, id string) error
}

type socialAccountRepository struct{}

func NewSocialAccountRepository() SocialAccountRepository {
	return &socialAccountRepository{}
}

func (r *socialAccountRepository) FindByProviderUID(db *gorm.DB, provider, providerUserID string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocialAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepository) FindByUserAndProvider(db *gorm.DB, userID, provider string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	err := db.Where("user_id = ? AND provider = ?", userID, provider).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSocialAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepository) ListByUserID(db *gorm.DB, userID string) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}

func (r *socialAccountRepository) CountByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.SocialAccount{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *socialAccountRepository) Create(db *gorm.DB, account *models.SocialAccount) error {
	if err := db.Create(account).Error; err != nil {
		if IsDuplicateKeyError(err) {
			return ErrSocialAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *socialAccountRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.SocialAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSocialAccountNotFound
	}
	return nil
}
