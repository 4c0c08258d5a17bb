package services

import (
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/social"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService   AuthService
	SocialService SocialService
	UserService   UserService
	Providers     *social.Registry
	EmailProvider email.Provider
}

// NewServiceContainer собирает сервисы поверх репозиториев
func NewServiceContainer(cfg *config.Config, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	socialRepo := repositories.NewSocialAccountRepository()
	profileRepo := repositories.NewProfileRepository()

	authService := NewAuthService(cfg, userRepo, profileRepo, emailProvider)

	return &ServiceContainer{
		AuthService:   authService,
		SocialService: NewSocialService(userRepo, socialRepo, profileRepo, authService),
		UserService:   NewUserService(cfg, userRepo, profileRepo, authService),
		Providers:     social.NewRegistry(cfg),
		EmailProvider: emailProvider,
	}
}
