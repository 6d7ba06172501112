package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokens_Validation(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokens("secret", 0)
	assert.Error(t, err)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	signed, err := tokens.Issue(id)
	require.NoError(t, err)

	got, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokens_RejectsOtherSecret(t *testing.T) {
	issuer, err := NewTokens("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokens("secret-b", time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.Error(t, err)
}

func TestTokens_RejectsExpired(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		SessionID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokens_RejectsGarbage(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tokens.Parse("")
	assert.Error(t, err)
	_, err = tokens.Parse("not.a.token")
	assert.Error(t, err)
}

func TestTokens_RejectsNilSessionID(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := tokens.Issue(uuid.Nil)
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.Error(t, err)
}
