package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperstack/docshare/config"
)

func testConfig(ttl time.Duration) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "docshare-test",
		TokenTTL:  ttl,
	}
}

func TestJWTValidator(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token validates and round-trips claims", func(t *testing.T) {
		v := NewJWTValidator(testConfig(time.Hour))

		userID := uuid.New()
		roleID := uuid.New()

		token, err := v.Issue(userID, roleID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := v.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID())
		assert.Equal(t, roleID.String(), claims.RoleID)
		assert.Equal(t, "docshare-test", claims.Issuer)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		issuer := NewJWTValidator(config.AuthConfig{
			JWTSecret: "other-secret",
			Issuer:    "docshare-test",
			TokenTTL:  time.Hour,
		})
		v := NewJWTValidator(testConfig(time.Hour))

		token, err := issuer.Issue(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = v.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		v := NewJWTValidator(testConfig(-time.Minute))

		token, err := v.Issue(uuid.New(), uuid.New())
		require.NoError(t, err)

		_, err = v.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		v := NewJWTValidator(testConfig(time.Hour))

		_, err := v.ValidateToken(ctx, "not.a.token")
		assert.Error(t, err)
	})
}
