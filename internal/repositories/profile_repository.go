package repositories

import (
	"errors"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository exposes narrow, per-role queries. Callers fetch only
// the profile matching the account's role instead of preloading everything.
type ProfileRepository interface {
	CreateJobSeekerProfile(db *gorm.DB, profile *models.JobSeekerProfile) error
	FindJobSeekerProfileByUserID(db *gorm.DB, userID string) (*models.JobSeekerProfile, error)

	CreateEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error
	FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateJobSeekerProfile(db *gorm.DB, profile *models.JobSeekerProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindJobSeekerProfileByUserID(db *gorm.DB, userID string) (*models.JobSeekerProfile, error) {
	var profile models.JobSeekerProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CreateEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
