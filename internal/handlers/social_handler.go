package handlers

import (
	"net/http"

	"jobboard_backend/internal/auth"
	"jobboard_backend/internal/config"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/internal/social"
	"jobboard_backend/pkg/apperrors"
	"jobboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// stateCookieMaxAge ограничивает окно между редиректом и callback
const stateCookieMaxAge = 10 * 60

type SocialHandler struct {
	*BaseHandler
	cfg           *config.Config
	providers     *social.Registry
	socialService services.SocialService
}

func NewSocialHandler(base *BaseHandler, cfg *config.Config, providers *social.Registry, socialService services.SocialService) *SocialHandler {
	return &SocialHandler{
		BaseHandler:   base,
		cfg:           cfg,
		providers:     providers,
		socialService: socialService,
	}
}

// RegisterRoutes регистрирует маршруты социального входа
func (h *SocialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/social/:provider", h.RedirectToProvider)
		auth.GET("/social/:provider/callback", h.Callback)
	}

	authed := rg.Group("/auth")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/social-accounts", h.ListSocialAccounts)
		authed.POST("/link-social", h.LinkSocial)
		authed.POST("/unlink-social", h.UnlinkSocial)
	}
}

// RedirectToProvider начинает OAuth-флоу: случайный state уходит
// в cookie и в URL авторизации провайдера
func (h *SocialHandler) RedirectToProvider(c *gin.Context) {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnsupportedProvider)
		return
	}

	state := auth.GenerateCode()
	c.SetCookie(contextkeys.OAuthStateCookieName, state, stateCookieMaxAge, "/", "", h.cfg.Server.Env != "development", true)

	c.Redirect(http.StatusTemporaryRedirect, provider.AuthCodeURL(state))
}

// Callback завершает OAuth-флоу: сверка state, обмен кода,
// запрос userinfo и разрешение аккаунта
func (h *SocialHandler) Callback(c *gin.Context) {
	provider, ok := h.providers.Get(c.Param("provider"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrUnsupportedProvider)
		return
	}

	if errCode := c.Query("error"); errCode != "" {
		logger.CtxWarn(c.Request.Context(), "Provider returned an error", "provider", c.Param("provider"), "error", errCode)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Provider sign-in was cancelled or failed"))
		return
	}

	stateCookie, err := c.Cookie(contextkeys.OAuthStateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("OAuth state mismatch"))
		return
	}
	c.SetCookie(contextkeys.OAuthStateCookieName, "", -1, "/", "", h.cfg.Server.Env != "development", true)

	ctx := c.Request.Context()

	token, err := provider.Exchange(ctx, c.Query("code"))
	if err != nil {
		logger.CtxWithError(ctx, "OAuth code exchange failed", err, "provider", c.Param("provider"))
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Failed to exchange authorization code"))
		return
	}

	assertion, err := provider.FetchAssertion(ctx, token)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to fetch provider userinfo", err, "provider", c.Param("provider"))
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	db := h.GetDB(c)

	response, err := h.socialService.Resolve(db, assertion)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	SetSessionCookie(c, h.cfg, response.AccessToken)
	c.JSON(http.StatusOK, response)
}

func (h *SocialHandler) ListSocialAccounts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	accounts, err := h.socialService.ListIdentities(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"social_accounts": accounts})
}

func (h *SocialHandler) LinkSocial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LinkSocialRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	account, err := h.socialService.LinkIdentity(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *SocialHandler) UnlinkSocial(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UnlinkSocialRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.socialService.UnlinkIdentity(db, userID, req.Provider); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Identity unlinked"})
}
