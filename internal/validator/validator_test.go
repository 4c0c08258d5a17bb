package validator

import (
	"testing"

	"jobboard_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderRuleAcceptsKnownProviders(t *testing.T) {
	v := New()

	for _, provider := range []string{"google", "linkedin", "facebook"} {
		req := &dto.LinkSocialRequest{Provider: provider, ProviderUserID: "uid-1"}
		assert.NoError(t, v.Validate(req), provider)
	}
}

func TestProviderRuleRejectsUnknownProvider(t *testing.T) {
	v := New()

	err := v.Validate(&dto.UnlinkSocialRequest{Provider: "github"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Ключи ошибок используют json-теги, не имена полей Go
	assert.Equal(t, "Must be a supported identity provider", vErr.Errors["provider"])
}
