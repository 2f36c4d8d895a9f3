package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	j := NewJwt("test-secret")

	id := uuid.New()
	pair, err := j.GenerateTokenPair(&TokenPairParams{
		ID:      id,
		Email:   "admin@example.com",
		Roles:   []string{"admin"},
		JwtType: JWTTypeAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := j.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	pair, err := NewJwt("secret-a").GenerateTokenPair(&TokenPairParams{
		ID:      uuid.New(),
		Email:   "admin@example.com",
		Roles:   []string{"admin"},
		JwtType: JWTTypeAdmin,
	})
	require.NoError(t, err)

	_, err = NewJwt("secret-b").ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewJwt("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
