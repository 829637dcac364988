package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthenticatedPrincipal(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		p, err := NewAuthenticatedPrincipal("user", TokenPair{Primary: "jwt", Secondary: "ltpa"}, "realm")
		require.NoError(t, err)
		assert.True(t, p.Authenticated)
		assert.Equal(t, "user", p.Username)
		assert.Equal(t, "realm", p.Realm)
		assert.Equal(t, "jwt", p.Tokens.Primary)
		assert.Equal(t, "ltpa", p.Tokens.Secondary)
	})

	incomplete := map[string]struct {
		tokens TokenPair
		realm  string
	}{
		"missing primary":   {tokens: TokenPair{Secondary: "ltpa"}, realm: "realm"},
		"missing secondary": {tokens: TokenPair{Primary: "jwt"}, realm: "realm"},
		"missing realm":     {tokens: TokenPair{Primary: "jwt", Secondary: "ltpa"}},
	}
	for name, tc := range incomplete {
		t.Run(name, func(t *testing.T) {
			p, err := NewAuthenticatedPrincipal("user", tc.tokens, tc.realm)
			assert.ErrorIs(t, err, ErrIncompletePrincipal)
			assert.False(t, p.Authenticated)
		})
	}
}

func TestRetryPolicy_Normalized(t *testing.T) {
	assert.Equal(t, DefaultRetryPolicy(), RetryPolicy{InitialDelay: DefaultInitialDelay, Period: DefaultPeriod})
	got := RetryPolicy{InitialDelay: -1, Period: 0}.Normalized()
	assert.Equal(t, RetryPolicy{InitialDelay: 0, Period: DefaultPeriod}, got)
}
