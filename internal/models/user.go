package models

import "time"

// User is the canonical account record. PasswordHash is empty when the
// account was created through a social login and never set a password;
// in that case at least one SocialAccount row must exist.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     // empty == no local credential
	FirstName    string     `gorm:"not null"`
	LastName     string
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'"`
	IsVerified   bool       `gorm:"default:false"`

	VerificationCode    string
	VerificationCodeExp *time.Time
	ResetCode           string
	ResetCodeExp        *time.Time

	// Relations
	JobSeekerProfile *JobSeekerProfile `gorm:"foreignKey:UserID"`
	EmployerProfile  *EmployerProfile  `gorm:"foreignKey:UserID"`
	SocialAccounts   []SocialAccount   `gorm:"foreignKey:UserID"`
}

// HasPassword reports whether the account has a usable local credential.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// SocialAccount links one user to one (provider, provider_user_id) pair.
// The composite unique index enforces that an external identity belongs
// to at most one account.
type SocialAccount struct {
	BaseModel
	UserID         string `gorm:"not null;index"`
	Provider       string `gorm:"type:varchar(50);not null;uniqueIndex:idx_social_provider_uid"`
	ProviderUserID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_social_provider_uid"`
	EmailClaim     string // email as asserted by the provider, may differ from User.Email
	DisplayName    string
	AvatarURL      string
}
