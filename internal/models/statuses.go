package models

type UserRole string
type UserStatus string

const (
	UserRoleJobSeeker UserRole = "jobseeker"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"

	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Providers, разрешенные для социального входа
const (
	ProviderGoogle   = "google"
	ProviderLinkedIn = "linkedin"
	ProviderFacebook = "facebook"
)

// IsValidProvider проверяет, поддерживается ли провайдер
func IsValidProvider(p string) bool {
	switch p {
	case ProviderGoogle, ProviderLinkedIn, ProviderFacebook:
		return true
	default:
		return false
	}
}

// IsValidRole проверяет валидность роли при создании аккаунта
func IsValidRole(r UserRole) bool {
	switch r {
	case UserRoleJobSeeker, UserRoleEmployer, UserRoleAdmin:
		return true
	default:
		return false
	}
}
