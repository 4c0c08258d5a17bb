package services

import (
	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/utils"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	// GetCurrentUser возвращает представление текущего аккаунта с профилем
	GetCurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error)

	// AdminCreateUser создает аккаунт от имени администратора,
	// без прохождения верификации email
	AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)

	// SetUserStatus активирует или деактивирует аккаунт
	SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	cfg         *config.Config
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	authService AuthService
}

func NewUserService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	authService AuthService,
) UserService {
	return &UserServiceImpl{
		cfg:         cfg,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		authService: authService,
	}
}

// GetCurrentUser возвращает представление текущего аккаунта
func (s *UserServiceImpl) GetCurrentUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return s.authService.BuildUserResponse(db, user), nil
}

// AdminCreateUser создает аккаунт от имени администратора.
// Аккаунт сразу помечен верифицированным: администратор ручается за email.
func (s *UserServiceImpl) AdminCreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if len(req.Password) < s.cfg.Auth.PasswordMinLength {
		return nil, apperrors.ErrWeakPassword
	}

	role := models.UserRole(req.Role)
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	emailAddr := utils.NormalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(db, emailAddr); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.createRoleProfile(tx, user)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	return s.authService.BuildUserResponse(db, user), nil
}

// SetUserStatus активирует или деактивирует аккаунт
func (s *UserServiceImpl) SetUserStatus(db *gorm.DB, userID string, status models.UserStatus) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Status != status {
		if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Status = status
	}

	return s.authService.BuildUserResponse(db, user), nil
}

// createRoleProfile создает профиль в зависимости от роли.
// Админский аккаунт профиля не имеет.
func (s *UserServiceImpl) createRoleProfile(tx *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.UserRoleJobSeeker:
		return s.profileRepo.CreateJobSeekerProfile(tx, &models.JobSeekerProfile{
			UserID:   user.ID,
			IsPublic: true,
		})
	case models.UserRoleEmployer:
		return s.profileRepo.CreateEmployerProfile(tx, &models.EmployerProfile{
			UserID: user.ID,
		})
	}
	return nil
}
