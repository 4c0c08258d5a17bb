package apperrors

import "net/http"

/*
Предопределенные ошибки домена идентификации.
Каждая публичная операция сервиса возвращает ровно одну из них при отказе.
*/

// ErrInvalidCredentials - единая ошибка для "email не найден" и "пароль
// неверный". Не раскрываем, какой из случаев произошел.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailNotVerified - логин до подтверждения email
var ErrEmailNotVerified = New(
	CodeEmailNotVerified,
	"auth",
	"Email is not verified",
	http.StatusForbidden,
)

// ErrAccountDeactivated - аккаунт отключен администратором
var ErrAccountDeactivated = New(
	CodeAccountDeactivated,
	"auth",
	"Account is deactivated",
	http.StatusForbidden,
)

// ErrEmailAlreadyRegistered - email уже занят (без учета регистра)
var ErrEmailAlreadyRegistered = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

// ErrWeakPassword - пароль короче настроенного минимума
var ErrWeakPassword = New(
	CodeWeakPassword,
	"auth",
	"Password does not meet the minimum length requirement",
	http.StatusBadRequest,
)

// ErrInvalidOrExpiredCode - один ответ для "нет такого кода", "чужой код"
// и "код истек", чтобы не раскрывать, какой именно случай
var ErrInvalidOrExpiredCode = New(
	CodeInvalidCode,
	"auth",
	"Invalid or expired code",
	http.StatusBadRequest,
)

// ErrAlreadyVerified - повторная верификация
var ErrAlreadyVerified = New(
	CodeAlreadyVerified,
	"auth",
	"Email is already verified",
	http.StatusConflict,
)

// ErrUserNotFound - аккаунт не найден (там, где это можно раскрывать)
var ErrUserNotFound = New(
	CodeNotFound,
	"auth",
	"User not found",
	http.StatusNotFound,
)

// ErrInvalidUserRole - недопустимая роль при создании аккаунта
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid user role",
	http.StatusBadRequest,
)

// --- Социальный вход ---

// ErrMissingEmailClaim - провайдер не вернул email, дедупликация невозможна
var ErrMissingEmailClaim = New(
	CodeMissingEmailClaim,
	"social",
	"The identity provider did not supply an email address",
	http.StatusBadRequest,
)

// ErrIdentityAlreadyLinkedElsewhere - идентичность принадлежит другому аккаунту
var ErrIdentityAlreadyLinkedElsewhere = New(
	CodeIdentityLinked,
	"social",
	"This social identity is already linked to another account",
	http.StatusConflict,
)

// ErrIdentityAlreadyLinkedToSelf - идентичность уже привязана к этому аккаунту
var ErrIdentityAlreadyLinkedToSelf = New(
	CodeIdentityLinked,
	"social",
	"This social identity is already linked to your account",
	http.StatusConflict,
)

// ErrNotLinked - у аккаунта нет идентичности этого провайдера
var ErrNotLinked = New(
	CodeNotLinked,
	"social",
	"No linked identity for this provider",
	http.StatusNotFound,
)

// ErrLastAuthMethod - удаление последнего способа входа запрещено.
// Аккаунт без пароля и без социальных идентичностей не смог бы войти вообще.
var ErrLastAuthMethod = New(
	CodeLastAuthMethod,
	"social",
	"Cannot unlink the only remaining sign-in method",
	http.StatusConflict,
)

// ErrUnsupportedProvider - провайдер не из разрешенного набора
var ErrUnsupportedProvider = New(
	CodeInvalidOperation,
	"social",
	"Unsupported identity provider",
	http.StatusBadRequest,
)
