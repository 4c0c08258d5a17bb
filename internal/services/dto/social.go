package dto

import "time"

// LinkSocialRequest - явная привязка внешней идентичности к текущему аккаунту
type LinkSocialRequest struct {
	Provider       string `json:"provider" binding:"required" validate:"provider"` // Custom rule
	ProviderUserID string `json:"provider_user_id" binding:"required"`
	EmailClaim     string `json:"email_claim" binding:"omitempty,email"`
	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url" binding:"omitempty,url"`
}

// UnlinkSocialRequest - отвязка идентичности провайдера
type UnlinkSocialRequest struct {
	Provider string `json:"provider" binding:"required" validate:"provider"` // Custom rule
}

// SocialAccountResponse - представление привязанной идентичности
type SocialAccountResponse struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	EmailClaim  string    `json:"email_claim,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	LinkedAt    time.Time `json:"linked_at"`
}
