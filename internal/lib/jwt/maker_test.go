package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/lib/jwt"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("user-42", "donor", "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "donor", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionKey)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("user-42", "donor", "sess-1")
	require.NoError(t, err)

	other := jwt.NewMaker("another-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := jwt.NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("user-42", "donor", "sess-1")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}
