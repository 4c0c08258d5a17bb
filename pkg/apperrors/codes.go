package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и авторизация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeEmailNotVerified   ErrorCode = "EMAIL_NOT_VERIFIED"
	CodeAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"
	CodeInvalidCode        ErrorCode = "INVALID_OR_EXPIRED_CODE"
	CodeAlreadyVerified    ErrorCode = "ALREADY_VERIFIED"

	// Социальный вход
	CodeMissingEmailClaim ErrorCode = "MISSING_EMAIL_CLAIM"
	CodeIdentityLinked    ErrorCode = "IDENTITY_ALREADY_LINKED"
	CodeNotLinked         ErrorCode = "NOT_LINKED"
	CodeLastAuthMethod    ErrorCode = "LAST_AUTH_METHOD"
)
