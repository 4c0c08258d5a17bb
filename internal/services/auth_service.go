package services

import (
	"time"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/utils"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(db *gorm.DB, code string) (*dto.LoginResponse, error)
	ResendVerification(db *gorm.DB, emailAddr string) error
	RequestPasswordReset(db *gorm.DB, emailAddr string) error
	ResetPassword(db *gorm.DB, code, newPassword string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error

	// IssueSession выпускает сессионный токен для уже аутентифицированного
	// аккаунта (используется социальным входом)
	IssueSession(user *models.User) (string, error)

	// BuildUserResponse строит публичное представление аккаунта
	// с профилем, соответствующим его роли
	BuildUserResponse(db *gorm.DB, user *models.User) *dto.UserResponse
}

type AuthServiceImpl struct {
	cfg           *config.Config
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	emailProvider email.Provider
}

func NewAuthService(
	cfg *config.Config,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		cfg:           cfg,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя с локальным паролем.
// Аккаунт создается неверифицированным; код подтверждения живет 15 минут.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleJobSeeker
	}
	if role != models.UserRoleJobSeeker && role != models.UserRoleEmployer {
		return nil, apperrors.ErrInvalidUserRole
	}

	emailAddr := utils.NormalizeEmail(req.Email)
	if _, err := s.userRepo.FindByEmail(db, emailAddr); err == nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}

	hashedPassword, err := auth.HashPassword(req.Password, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationCode := auth.GenerateCode()
	codeExp := auth.CodeExpiry(time.Duration(s.cfg.Auth.VerificationCodeTTLMin) * time.Minute)

	user := &models.User{
		Email:               emailAddr,
		PasswordHash:        hashedPassword,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Role:                role,
		Status:              models.UserStatusActive,
		IsVerified:          false,
		VerificationCode:    verificationCode,
		VerificationCodeExp: codeExp,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.createRoleProfile(tx, user)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Параллельная регистрация успела раньше
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user, verificationCode)

	return s.BuildUserResponse(db, user), nil
}

// Login - аутентификация по email и паролю.
// Неизвестный email и неверный пароль дают один и тот же ответ.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, utils.NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.HasPassword() || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperrors.ErrEmailNotVerified
	}
	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrAccountDeactivated
	}

	token, err := s.IssueSession(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        s.BuildUserResponse(db, user),
	}, nil
}

// VerifyEmail - подтверждение email по одноразовому коду.
// Успешная верификация сразу выпускает сессию (авто-логин).
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, code string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByVerificationCode(db, code, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidOrExpiredCode
		}
		return nil, apperrors.InternalError(err)
	}

	// Недостижимо при нормальной работе: MarkVerified стирает код.
	if user.IsVerified {
		return nil, apperrors.ErrAlreadyVerified
	}

	if err := s.userRepo.MarkVerified(db, user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.IsVerified = true
	user.VerificationCode = ""
	user.VerificationCodeExp = nil

	token, err := s.IssueSession(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcomeEmail(user)

	return &dto.LoginResponse{
		AccessToken: token,
		User:        s.BuildUserResponse(db, user),
	}, nil
}

// ResendVerification - перевыпуск кода подтверждения.
// Старый код инвалидируется.
func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, utils.NormalizeEmail(emailAddr))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	code := auth.GenerateCode()
	exp := auth.CodeExpiry(time.Duration(s.cfg.Auth.VerificationCodeTTLMin) * time.Minute)
	if err := s.userRepo.SetVerificationCode(db, user.ID, code, exp); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendVerificationEmail(user, code)
	return nil
}

// RequestPasswordReset - запрос сброса пароля.
// Всегда завершается успешно, существование email не раскрывается.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, utils.NormalizeEmail(emailAddr))
	if err != nil {
		// Не раскрываем существование email
		return nil
	}

	code := auth.GenerateCode()
	exp := auth.CodeExpiry(time.Duration(s.cfg.Auth.ResetCodeTTLMin) * time.Minute)
	if err := s.userRepo.SetResetCode(db, user.ID, code, exp); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(user, code)
	return nil
}

// ResetPassword - сброс пароля по одноразовому коду.
// Уже выпущенные сессионные токены остаются действительными до истечения
// (stateless-токены негде отозвать); см. DESIGN.md.
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, code, newPassword string) error {
	user, err := s.userRepo.FindByResetCode(db, code, time.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidOrExpiredCode
		}
		return apperrors.InternalError(err)
	}

	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword, 0)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.ResetPassword(db, user.ID, hashedPassword); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword - смена пароля при известном текущем.
// Также позволяет аккаунту социального входа установить первый пароль,
// если текущего пароля нет.
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if user.HasPassword() && !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword, 0)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePasswordHash(db, user.ID, hashedPassword); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// IssueSession выпускает сессионный токен с абсолютным сроком действия
func (s *AuthServiceImpl) IssueSession(user *models.User) (string, error) {
	ttl := time.Duration(s.cfg.JWT.SessionTTLDays) * 24 * time.Hour
	return auth.GenerateSessionToken(user.ID, string(user.Role), s.cfg.JWT.Secret, ttl)
}

// BuildUserResponse строит ответ с данными пользователя и профилем его роли
func (s *AuthServiceImpl) BuildUserResponse(db *gorm.DB, user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
	}

	// Загружаем только профиль, соответствующий роли
	switch user.Role {
	case models.UserRoleJobSeeker:
		if profile, err := s.profileRepo.FindJobSeekerProfileByUserID(db, user.ID); err == nil {
			resp.Profile = profile
		}
	case models.UserRoleEmployer:
		if profile, err := s.profileRepo.FindEmployerProfileByUserID(db, user.ID); err == nil {
			resp.Profile = profile
		}
	}

	return resp
}

// --- Helper functions ---

// validatePassword применяет единую политику длины пароля
func (s *AuthServiceImpl) validatePassword(password string) error {
	if len(password) < s.cfg.Auth.PasswordMinLength {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// createRoleProfile создает профиль в зависимости от роли
func (s *AuthServiceImpl) createRoleProfile(tx *gorm.DB, user *models.User) error {
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

// sendVerificationEmail отправляет письмо с кодом подтверждения.
// Отправка best-effort: ошибка логируется и не влияет на результат операции.
func (s *AuthServiceImpl) sendVerificationEmail(user *models.User, code string) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := s.emailProvider.SendVerification(user.Email, user.FirstName, code); err != nil {
			logger.Warn("Failed to send verification email", "error", err, "user_id", user.ID)
		}
	}()
}

// sendPasswordResetEmail отправляет письмо с кодом сброса пароля
func (s *AuthServiceImpl) sendPasswordResetEmail(user *models.User, code string) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := s.emailProvider.SendPasswordReset(user.Email, user.FirstName, code); err != nil {
			logger.Warn("Failed to send password reset email", "error", err, "user_id", user.ID)
		}
	}()
}

// sendWelcomeEmail отправляет приветственное письмо после верификации
func (s *AuthServiceImpl) sendWelcomeEmail(user *models.User) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		if err := s.emailProvider.SendWelcome(user.Email, user.FirstName); err != nil {
			logger.Warn("Failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}()
}
