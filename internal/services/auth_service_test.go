package services

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(emailAddr string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     emailAddr,
		Password:  "correct-horse",
		FirstName: "Test",
		Role:      models.UserRoleJobSeeker,
	}
}

func TestRegisterAndVerifyFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.authService.Register(env.db, registerRequest("alice@example.com"))
	require.NoError(t, err)
	assert.False(t, resp.IsVerified)
	assert.NotNil(t, resp.Profile)

	// До верификации вход закрыт
	_, err = env.authService.Login(env.db, &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)

	user := mustFindUserByEmail(t, env.db, "alice@example.com")
	require.NotEmpty(t, user.VerificationCode)
	require.NotNil(t, user.VerificationCodeExp)

	// Верификация сразу открывает сессию
	login, err := env.authService.VerifyEmail(env.db, user.VerificationCode)
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.True(t, login.User.IsVerified)

	// Код одноразовый
	_, err = env.authService.VerifyEmail(env.db, user.VerificationCode)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredCode)

	// Теперь обычный вход работает
	login, err = env.authService.Login(env.db, &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("Bob@Example.com"))
	require.NoError(t, err)

	_, err = env.authService.Register(env.db, registerRequest("bob@example.COM"))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyRegistered)
}

func TestRegisterWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	req := registerRequest("carol@example.com")
	req.Password = "short"
	_, err := env.authService.Register(env.db, req)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestRegisterEmployerGetsEmployerProfile(t *testing.T) {
	env := newTestEnv(t)

	req := registerRequest("dora@example.com")
	req.Role = models.UserRoleEmployer
	resp, err := env.authService.Register(env.db, req)
	require.NoError(t, err)

	profile, ok := resp.Profile.(*models.EmployerProfile)
	require.True(t, ok)
	assert.Equal(t, resp.ID, profile.UserID)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("eve@example.com"))
	require.NoError(t, err)

	_, unknownErr := env.authService.Login(env.db, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever-pass"})
	_, wrongErr := env.authService.Login(env.db, &dto.LoginRequest{Email: "eve@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("frank@example.com"))
	require.NoError(t, err)
	user := mustFindUserByEmail(t, env.db, "frank@example.com")
	_, err = env.authService.VerifyEmail(env.db, user.VerificationCode)
	require.NoError(t, err)

	_, err = env.userService.SetUserStatus(env.db, user.ID, models.UserStatusDeactivated)
	require.NoError(t, err)

	_, err = env.authService.Login(env.db, &dto.LoginRequest{Email: "frank@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDeactivated)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("grace@example.com"))
	require.NoError(t, err)
	user := mustFindUserByEmail(t, env.db, "grace@example.com")

	past := time.Now().Add(-time.Minute)
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("verification_code_exp", &past).Error)

	_, err = env.authService.VerifyEmail(env.db, user.VerificationCode)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredCode)
}

func TestResendVerificationInvalidatesOldCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("henry@example.com"))
	require.NoError(t, err)
	oldCode := mustFindUserByEmail(t, env.db, "henry@example.com").VerificationCode

	require.NoError(t, env.authService.ResendVerification(env.db, "henry@example.com"))

	_, err = env.authService.VerifyEmail(env.db, oldCode)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredCode)

	newCode := mustFindUserByEmail(t, env.db, "henry@example.com").VerificationCode
	require.NotEqual(t, oldCode, newCode)
	_, err = env.authService.VerifyEmail(env.db, newCode)
	assert.NoError(t, err)
}

func TestResendVerificationErrors(t *testing.T) {
	env := newTestEnv(t)

	err := env.authService.ResendVerification(env.db, "missing@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = env.authService.Register(env.db, registerRequest("iris@example.com"))
	require.NoError(t, err)
	user := mustFindUserByEmail(t, env.db, "iris@example.com")
	_, err = env.authService.VerifyEmail(env.db, user.VerificationCode)
	require.NoError(t, err)

	err = env.authService.ResendVerification(env.db, "iris@example.com")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVerified)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("judy@example.com"))
	require.NoError(t, err)
	user := mustFindUserByEmail(t, env.db, "judy@example.com")
	_, err = env.authService.VerifyEmail(env.db, user.VerificationCode)
	require.NoError(t, err)

	require.NoError(t, env.authService.RequestPasswordReset(env.db, "judy@example.com"))
	code := mustFindUserByEmail(t, env.db, "judy@example.com").ResetCode
	require.NotEmpty(t, code)

	// Слабый пароль не потребляет код
	err = env.authService.ResetPassword(env.db, code, "tiny")
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	require.NoError(t, env.authService.ResetPassword(env.db, code, "brand-new-password"))

	// Код одноразовый
	err = env.authService.ResetPassword(env.db, code, "another-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrExpiredCode)

	// Старый пароль больше не подходит, новый работает
	_, err = env.authService.Login(env.db, &dto.LoginRequest{Email: "judy@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = env.authService.Login(env.db, &dto.LoginRequest{Email: "judy@example.com", Password: "brand-new-password"})
	assert.NoError(t, err)
}

func TestRequestPasswordResetDoesNotRevealEmails(t *testing.T) {
	env := newTestEnv(t)

	assert.NoError(t, env.authService.RequestPasswordReset(env.db, "ghost@example.com"))
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.Register(env.db, registerRequest("kate@example.com"))
	require.NoError(t, err)
	user := mustFindUserByEmail(t, env.db, "kate@example.com")

	err = env.authService.ChangePassword(env.db, user.ID, "wrong-current", "replacement-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, env.authService.ChangePassword(env.db, user.ID, "correct-horse", "replacement-pass"))

	updated := mustFindUserByEmail(t, env.db, "kate@example.com")
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
}
