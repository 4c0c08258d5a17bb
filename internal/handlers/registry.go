package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	SocialHandler *SocialHandler
	UserHandler   *UserHandler
}
