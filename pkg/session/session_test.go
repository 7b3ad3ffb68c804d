package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal("could not sign test token: ", err)
	}
	return signed
}

func TestFromToken(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"user_id":   "42",
		"user_type": "volunteer",
		"name":      "Amina",
	})

	s, err := FromToken(token)
	assert.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, "42", s.UserID)
	assert.Equal(t, "volunteer", s.UserType)
	assert.Equal(t, "Amina", s.DisplayName())
}

func TestFromTokenNumericUserID(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"user_id":   7,
		"user_type": "organization",
	})

	s, err := FromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "7", s.UserID)
}

func TestFromTokenEmpty(t *testing.T) {
	s, err := FromToken("")
	assert.NoError(t, err)
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.UserID)
}

func TestFromTokenGarbage(t *testing.T) {
	_, err := FromToken("not-a-token")
	assert.Error(t, err)
}

func TestDisplayNameFallbacks(t *testing.T) {
	token := signTestToken(t, jwt.MapClaims{
		"user_id":           "9",
		"user_type":         "organization",
		"organization_name": "Green Hands",
	})
	s, err := FromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "Green Hands", s.DisplayName())

	anon, err := FromToken(signTestToken(t, jwt.MapClaims{"user_id": "9"}))
	assert.NoError(t, err)
	assert.Equal(t, "You", anon.DisplayName())
}
