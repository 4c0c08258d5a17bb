package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"jobboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	ts := newTestServer(t)

	body := `{"email": "not-an-email", "password": "correct-horse", "first_name": "Test"}`
	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	body := `{"email": "flow@example.com", "password": "correct-horse", "first_name": "Test", "role": "jobseeker"}`
	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, ts.db.Where("email = ?", "flow@example.com").First(&user).Error)
	require.NotEmpty(t, user.VerificationCode)

	// Подтверждение кода сразу открывает сессию
	w = ts.do(t, http.MethodPost, "/api/v1/auth/verify-email",
		fmt.Sprintf(`{"code": %q}`, user.VerificationCode), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sessionCookie(w))

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"email": "flow@example.com", "password": "correct-horse"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, ts.cfg.JWT.SessionTTLDays*24*60*60, cookie.MaxAge)
}

func TestLoginBeforeVerification(t *testing.T) {
	ts := newTestServer(t)

	body := `{"email": "unverified@example.com", "password": "correct-horse", "first_name": "Test"}`
	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"email": "unverified@example.com", "password": "correct-horse"}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createVerifiedUser(t, "me@example.com", models.UserRoleJobSeeker)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/me", "", ts.bearerFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "me@example.com")
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAdminRouteForbiddenForJobseeker(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createVerifiedUser(t, "notadmin@example.com", models.UserRoleJobSeeker)

	w := ts.do(t, http.MethodPatch, "/api/v1/admin/users/"+user.ID+"/status",
		`{"status": "deactivated"}`, ts.bearerFor(t, user))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminUpdateUserStatus(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createVerifiedUser(t, "admin@example.com", models.UserRoleAdmin)
	target := ts.createVerifiedUser(t, "target@example.com", models.UserRoleJobSeeker)

	// Значение вне enum отбрасывается на этапе валидации
	w := ts.do(t, http.MethodPatch, "/api/v1/admin/users/"+target.ID+"/status",
		`{"status": "paused"}`, ts.bearerFor(t, admin))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/v1/admin/users/"+target.ID+"/status",
		`{"status": "deactivated"}`, ts.bearerFor(t, admin))
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, ts.db.First(&updated, "id = ?", target.ID).Error)
	assert.Equal(t, models.UserStatusDeactivated, updated.Status)
}
