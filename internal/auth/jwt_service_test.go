package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateToken("ayesha")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ayesha", claims.Username())
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken("ayesha")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	secret := "test-secret"
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ayesha",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte(secret))
	assert.NoError(t, err)

	_, err = NewJWTService(secret).ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := NewJWTService("test-secret")

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.ValidateToken(bad)
		assert.Error(t, err, "token %q should not validate", bad)
	}
}

func TestJWTService_ExtractUsername(t *testing.T) {
	// Extraction is structural only: a token signed with a different
	// secret still yields its subject.
	token, err := NewJWTService("other-secret").GenerateToken("bilal")
	assert.NoError(t, err)

	username, err := NewJWTService("test-secret").ExtractUsername(token)
	assert.NoError(t, err)
	assert.Equal(t, "bilal", username)

	_, err = NewJWTService("test-secret").ExtractUsername("garbage")
	assert.Error(t, err)
}
