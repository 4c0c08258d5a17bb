package repositories

import (
	"errors"
	"strings"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
// The services rely on this to resolve concurrent-insert races: the losing
// request re-runs its lookup instead of surfacing the constraint error.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error
	UpdatePasswordHash(db *gorm.DB, userID, hash string) error

	// Verification code lifecycle
	SetVerificationCode(db *gorm.DB, userID, code string, exp *time.Time) error
	FindByVerificationCode(db *gorm.DB, code string, now time.Time) (*models.User, error)
	MarkVerified(db *gorm.DB, userID string) error

	// Reset code lifecycle
	SetResetCode(db *gorm.DB, userID, code string, exp *time.Time) error
	FindByResetCode(db *gorm.DB, code string, now time.Time) (*models.User, error)
	ResetPassword(db *gorm.DB, userID, hash string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail compares case-insensitively; emails are stored lowercased but
// the comparison stays defensive against legacy rows.
func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"email":                 user.Email,
		"first_name":            user.FirstName,
		"last_name":             user.LastName,
		"status":                user.Status,
		"is_verified":           user.IsVerified,
		"verification_code":     user.VerificationCode,
		"verification_code_exp": user.VerificationCodeExp,
		"reset_code":            user.ResetCode,
		"reset_code_exp":        user.ResetCodeExp,
		"updated_at":            time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(db *gorm.DB, userID, hash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetVerificationCode(db *gorm.DB, userID, code string, exp *time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"verification_code":     code,
		"verification_code_exp": exp,
		"updated_at":            time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindByVerificationCode matches only unexpired codes. "No such code" and
// "expired code" are indistinguishable to the caller on purpose.
func (r *userRepository) FindByVerificationCode(db *gorm.DB, code string, now time.Time) (*models.User, error) {
	var user models.User
	err := db.Where("verification_code = ? AND verification_code <> '' AND verification_code_exp > ?", code, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// MarkVerified flips the verification flag and consumes the code so it
// cannot be replayed.
func (r *userRepository) MarkVerified(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":           true,
		"verification_code":     "",
		"verification_code_exp": nil,
		"updated_at":            time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetResetCode(db *gorm.DB, userID, code string, exp *time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"reset_code":     code,
		"reset_code_exp": exp,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByResetCode(db *gorm.DB, code string, now time.Time) (*models.User, error) {
	var user models.User
	err := db.Where("reset_code = ? AND reset_code <> '' AND reset_code_exp > ?", code, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ResetPassword stores the new hash and consumes the reset code in one update.
func (r *userRepository) ResetPassword(db *gorm.DB, userID, hash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":  hash,
		"reset_code":     "",
		"reset_code_exp": nil,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
