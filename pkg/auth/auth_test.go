package auth_test

import (
	"testing"
	"time"

	"github.com/Dienay/rangos-api/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Minute)

	t.Run("issue and verify", func(t *testing.T) {
		token, err := manager.Issue("cust-1")
		require.NoError(t, err)

		subject, err := manager.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "cust-1", subject)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.Verify("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewTokenManager("other-secret", time.Minute)
		token, err := other.Issue("cust-1")
		require.NoError(t, err)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Issue("cust-1")
		require.NoError(t, err)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, auth.CheckPassword("secret123", hash))
	assert.ErrorIs(t, auth.CheckPassword("wrong", hash), auth.ErrWrongPassword)
}
