package services

import (
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/social"
	"jobboard_backend/internal/utils"
	"jobboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SocialService interface {
	// Resolve обрабатывает утверждение провайдера после OAuth callback:
	// повторный вход, неявное слияние по email или создание нового аккаунта
	Resolve(db *gorm.DB, assertion *social.Assertion) (*dto.LoginResponse, error)

	// LinkIdentity явно привязывает идентичность к текущему аккаунту
	LinkIdentity(db *gorm.DB, userID string, req *dto.LinkSocialRequest) (*dto.SocialAccountResponse, error)

	// UnlinkIdentity отвязывает идентичность провайдера от аккаунта
	UnlinkIdentity(db *gorm.DB, userID, provider string) error

	// ListIdentities возвращает привязанные идентичности аккаунта
	ListIdentities(db *gorm.DB, userID string) ([]dto.SocialAccountResponse, error)
}

type SocialServiceImpl struct {
	userRepo    repositories.UserRepository
	socialRepo  repositories.SocialAccountRepository
	profileRepo repositories.ProfileRepository
	authService AuthService
}

func NewSocialService(
	userRepo repositories.UserRepository,
	socialRepo repositories.SocialAccountRepository,
	profileRepo repositories.ProfileRepository,
	authService AuthService,
) SocialService {
	return &SocialServiceImpl{
		userRepo:    userRepo,
		socialRepo:  socialRepo,
		profileRepo: profileRepo,
		authService: authService,
	}
}

// Resolve - разрешение федеративного входа.
//
// Порядок проверок фиксирован: сначала соответствие по (provider, id),
// затем по email. Если email пользователя у провайдера сменился после
// первой привязки, он все равно будет узнан по идентичности провайдера,
// а не уйдет во второй путь слияния.
func (s *SocialServiceImpl) Resolve(db *gorm.DB, assertion *social.Assertion) (*dto.LoginResponse, error) {
	// Две попытки: проигравший гонку вставки повторяет поиск,
	// вместо того чтобы отдать наружу ошибку уникального индекса
	for attempt := 0; attempt < 2; attempt++ {
		resp, retry, err := s.resolveOnce(db, assertion)
		if retry {
			continue
		}
		return resp, err
	}
	return nil, apperrors.InternalError(gorm.ErrDuplicatedKey)
}

func (s *SocialServiceImpl) resolveOnce(db *gorm.DB, assertion *social.Assertion) (*dto.LoginResponse, bool, error) {
	// Шаг 1: соответствие по идентичности. Путь повторного входа,
	// без единой записи в БД.
	account, err := s.socialRepo.FindByProviderUID(db, assertion.Provider, assertion.ProviderUserID)
	if err == nil {
		resp, err := s.authenticateOwner(db, account.UserID)
		return resp, false, err
	}
	if !apperrors.Is(err, repositories.ErrSocialAccountNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	// Без email нечего дедуплицировать и некуда писать - вход невозможен
	if assertion.EmailClaim == "" {
		return nil, false, apperrors.ErrMissingEmailClaim
	}

	emailAddr := utils.NormalizeEmail(assertion.EmailClaim)

	// Шаг 2: соответствие по email - неявное слияние
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err == nil {
		if user.Status == models.UserStatusDeactivated {
			return nil, false, apperrors.ErrAccountDeactivated
		}

		if createErr := s.socialRepo.Create(db, newSocialAccount(user.ID, assertion)); createErr != nil {
			if apperrors.Is(createErr, repositories.ErrSocialAccountAlreadyExists) {
				// Параллельный запрос успел привязать идентичность - перечитываем
				return nil, true, nil
			}
			return nil, false, apperrors.InternalError(createErr)
		}

		// Провайдер подтвердил email, локальная верификация больше не нужна
		if !user.IsVerified {
			if err := s.userRepo.MarkVerified(db, user.ID); err != nil {
				return nil, false, apperrors.InternalError(err)
			}
			user.IsVerified = true
		}

		resp, err := s.buildLogin(db, user)
		return resp, false, err
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	// Шаг 3: новый аккаунт. Федеративная идентичность считается
	// подтвержденной провайдером, пароль отсутствует.
	newUser := &models.User{
		Email:      emailAddr,
		FirstName:  assertion.DisplayName,
		Role:       models.UserRoleJobSeeker,
		Status:     models.UserStatusActive,
		IsVerified: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, newUser); err != nil {
			return err
		}
		if err := s.socialRepo.Create(tx, newSocialAccount(newUser.ID, assertion)); err != nil {
			return err
		}
		return s.profileRepo.CreateJobSeekerProfile(tx, &models.JobSeekerProfile{
			UserID:   newUser.ID,
			IsPublic: true,
		})
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) ||
			apperrors.Is(err, repositories.ErrSocialAccountAlreadyExists) {
			// Другой запрос создал аккаунт или идентичность первым
			return nil, true, nil
		}
		return nil, false, apperrors.InternalError(err)
	}

	resp, err := s.buildLogin(db, newUser)
	return resp, false, err
}

// LinkIdentity - явная привязка, требует аутентифицированной сессии
func (s *SocialServiceImpl) LinkIdentity(db *gorm.DB, userID string, req *dto.LinkSocialRequest) (*dto.SocialAccountResponse, error) {
	existing, err := s.socialRepo.FindByProviderUID(db, req.Provider, req.ProviderUserID)
	if err == nil {
		if existing.UserID == userID {
			return nil, apperrors.ErrIdentityAlreadyLinkedToSelf
		}
		return nil, apperrors.ErrIdentityAlreadyLinkedElsewhere
	}
	if !apperrors.Is(err, repositories.ErrSocialAccountNotFound) {
		return nil, apperrors.InternalError(err)
	}

	account := &models.SocialAccount{
		UserID:         userID,
		Provider:       req.Provider,
		ProviderUserID: req.ProviderUserID,
		EmailClaim:     utils.NormalizeEmail(req.EmailClaim),
		DisplayName:    req.DisplayName,
		AvatarURL:      req.AvatarURL,
	}

	if err := s.socialRepo.Create(db, account); err != nil {
		if apperrors.Is(err, repositories.ErrSocialAccountAlreadyExists) {
			// Гонка с параллельной привязкой: смотрим, кто выиграл
			winner, lookupErr := s.socialRepo.FindByProviderUID(db, req.Provider, req.ProviderUserID)
			if lookupErr == nil && winner.UserID == userID {
				return nil, apperrors.ErrIdentityAlreadyLinkedToSelf
			}
			return nil, apperrors.ErrIdentityAlreadyLinkedElsewhere
		}
		return nil, apperrors.InternalError(err)
	}

	return toSocialAccountResponse(account), nil
}

// UnlinkIdentity - отвязка идентичности.
// Запрещено удалять последний оставшийся способ входа: аккаунт без пароля
// и без идентичностей не смог бы аутентифицироваться вообще.
func (s *SocialServiceImpl) UnlinkIdentity(db *gorm.DB, userID, provider string) error {
	account, err := s.socialRepo.FindByUserAndProvider(db, userID, provider)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSocialAccountNotFound) {
			return apperrors.ErrNotLinked
		}
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if !user.HasPassword() {
		count, err := s.socialRepo.CountByUserID(db, userID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if count <= 1 {
			return apperrors.ErrLastAuthMethod
		}
	}

	if err := s.socialRepo.Delete(db, account.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ListIdentities возвращает привязанные идентичности аккаунта
func (s *SocialServiceImpl) ListIdentities(db *gorm.DB, userID string) ([]dto.SocialAccountResponse, error) {
	accounts, err := s.socialRepo.ListByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.SocialAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *toSocialAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// --- Helper functions ---

// authenticateOwner аутентифицирует владельца найденной идентичности
func (s *SocialServiceImpl) authenticateOwner(db *gorm.DB, userID string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrAccountDeactivated
	}
	return s.buildLogin(db, user)
}

func (s *SocialServiceImpl) buildLogin(db *gorm.DB, user *models.User) (*dto.LoginResponse, error) {
	token, err := s.authService.IssueSession(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        s.authService.BuildUserResponse(db, user),
	}, nil
}

func newSocialAccount(userID string, assertion *social.Assertion) *models.SocialAccount {
	return &models.SocialAccount{
		UserID:         userID,
		Provider:       assertion.Provider,
		ProviderUserID: assertion.ProviderUserID,
		EmailClaim:     utils.NormalizeEmail(assertion.EmailClaim),
		DisplayName:    assertion.DisplayName,
		AvatarURL:      assertion.AvatarURL,
	}
}

func toSocialAccountResponse(account *models.SocialAccount) *dto.SocialAccountResponse {
	return &dto.SocialAccountResponse{
		ID:          account.ID,
		Provider:    account.Provider,
		EmailClaim:  account.EmailClaim,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		LinkedAt:    account.CreatedAt,
	}
}
