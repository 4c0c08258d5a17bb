package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"jobboard_backend/internal/models"
	"jobboard_backend/pkg/contextkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedirectToProviderSetsStateCookie(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/social/google", "", nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)

	var stateCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == contextkeys.OAuthStateCookieName {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.NotEmpty(t, stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)

	// state в URL авторизации совпадает со значением cookie
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, stateCookie.Value, location.Query().Get("state"))
}

func TestRedirectToUnsupportedProvider(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/social/twitter", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackRejectsMissingStateCookie(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/social/google/callback?state=abc&code=xyz", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "state mismatch")
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	ts := newTestServer(t)

	headers := map[string]string{
		"Cookie": contextkeys.OAuthStateCookieName + "=expected-state",
	}
	w := ts.do(t, http.MethodGet, "/api/v1/auth/social/google/callback?state=tampered&code=xyz", "", headers)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "state mismatch")
}

func TestCallbackProviderError(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/social/google/callback?error=access_denied", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLinkSocialRejectsUnknownProvider(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createVerifiedUser(t, "link@example.com", models.UserRoleJobSeeker)

	body := `{"provider": "github", "provider_user_id": "gh-1"}`
	w := ts.do(t, http.MethodPost, "/api/v1/auth/link-social", body, ts.bearerFor(t, user))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "supported identity provider")
}

func TestLinkSocialCreatesIdentity(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createVerifiedUser(t, "link2@example.com", models.UserRoleJobSeeker)

	body := `{"provider": "google", "provider_user_id": "g-777", "email_claim": "link2@gmail.com"}`
	w := ts.do(t, http.MethodPost, "/api/v1/auth/link-social", body, ts.bearerFor(t, user))

	require.Equal(t, http.StatusCreated, w.Code)

	var account models.SocialAccount
	require.NoError(t, ts.db.Where("user_id = ?", user.ID).First(&account).Error)
	assert.Equal(t, models.ProviderGoogle, account.Provider)
	assert.Equal(t, "g-777", account.ProviderUserID)
}

func TestUnlinkSocialNotLinked(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createVerifiedUser(t, "unlink@example.com", models.UserRoleJobSeeker)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/unlink-social", `{"provider": "google"}`, ts.bearerFor(t, user))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSocialAccountsRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/auth/social-accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
