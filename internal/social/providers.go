package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/linkedin"
)

// Assertion - нормализованное утверждение провайдера о пользователе.
// EmailClaim может быть пустым: не каждый провайдер возвращает email.
type Assertion struct {
	Provider       string
	ProviderUserID string
	EmailClaim     string
	DisplayName    string
	AvatarURL      string
}

// Provider - один настроенный OAuth провайдер
type Provider struct {
	Name        string
	oauth       *oauth2.Config
	userInfoURL string
}

// Registry хранит сконфигурированные провайдеры.
// Конфигурация передается явно через конструктор, без глобального состояния.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry создает реестр провайдеров из конфигурации.
// Провайдеры без client_id не регистрируются.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{providers: make(map[string]*Provider)}

	if cfg.OAuth.Google.ClientID != "" {
		r.providers[models.ProviderGoogle] = &Provider{
			Name: models.ProviderGoogle,
			oauth: &oauth2.Config{
				ClientID:     cfg.OAuth.Google.ClientID,
				ClientSecret: cfg.OAuth.Google.ClientSecret,
				RedirectURL:  cfg.OAuth.Google.RedirectURL,
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			userInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		}
	}

	if cfg.OAuth.LinkedIn.ClientID != "" {
		r.providers[models.ProviderLinkedIn] = &Provider{
			Name: models.ProviderLinkedIn,
			oauth: &oauth2.Config{
				ClientID:     cfg.OAuth.LinkedIn.ClientID,
				ClientSecret: cfg.OAuth.LinkedIn.ClientSecret,
				RedirectURL:  cfg.OAuth.LinkedIn.RedirectURL,
				Scopes:       []string{"openid", "profile", "email"},
				Endpoint:     linkedin.Endpoint,
			},
			userInfoURL: "https://api.linkedin.com/v2/userinfo",
		}
	}

	if cfg.OAuth.Facebook.ClientID != "" {
		r.providers[models.ProviderFacebook] = &Provider{
			Name: models.ProviderFacebook,
			oauth: &oauth2.Config{
				ClientID:     cfg.OAuth.Facebook.ClientID,
				ClientSecret: cfg.OAuth.Facebook.ClientSecret,
				RedirectURL:  cfg.OAuth.Facebook.RedirectURL,
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
			userInfoURL: "https://graph.facebook.com/me?fields=id,name,email,picture.type(large)",
		}
	}

	return r
}

// Get возвращает провайдер по имени
func (r *Registry) Get(name string) (*Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// AuthCodeURL строит URL редиректа на страницу согласия провайдера
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange обменивает authorization code на токен
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauth.Exchange(ctx, code)
}

// FetchAssertion запрашивает userinfo и нормализует ответ провайдера
func (p *Provider) FetchAssertion(ctx context.Context, token *oauth2.Token) (*Assertion, error) {
	client := p.oauth.Client(ctx, token)

	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request to %s failed: %w", p.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo request to %s returned %d: %s", p.Name, resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	switch p.Name {
	case models.ProviderFacebook:
		return p.parseFacebook(raw)
	default:
		// Google и LinkedIn возвращают стандартный OIDC userinfo
		return p.parseOIDC(raw)
	}
}

func (p *Provider) parseOIDC(raw []byte) (*Assertion, error) {
	var info struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to decode %s userinfo: %w", p.Name, err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("%s userinfo has no subject identifier", p.Name)
	}

	return &Assertion{
		Provider:       p.Name,
		ProviderUserID: info.Sub,
		EmailClaim:     info.Email,
		DisplayName:    info.Name,
		AvatarURL:      info.Picture,
	}, nil
}

func (p *Provider) parseFacebook(raw []byte) (*Assertion, error) {
	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to decode facebook userinfo: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("facebook userinfo has no id")
	}

	return &Assertion{
		Provider:       p.Name,
		ProviderUserID: info.ID,
		EmailClaim:     info.Email,
		DisplayName:    info.Name,
		AvatarURL:      info.Picture.Data.URL,
	}, nil
}
