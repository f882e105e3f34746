package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	service := NewService("round-trip-secret")

	token, err := service.GenerateToken("user-1", "gold")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "gold", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewService("secret-a").GenerateToken("user-1", "free")
	assert.NoError(t, err)

	_, err = NewService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService("secret")

	for _, bad := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := service.ValidateToken(bad)
		assert.Error(t, err, "token %q should be rejected", bad)
	}
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	service := NewService("secret")

	token, err := service.GenerateToken("user-1", "free")
	assert.NoError(t, err)

	// Flip a byte in the payload segment; the signature no longer
	// matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	_, err = service.ValidateToken(string(tampered))
	assert.Error(t, err)
}

func TestValidateToken_RejectsUnsignedAlg(t *testing.T) {
	service := NewService("secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_SetsExpiryWindow(t *testing.T) {
	service := NewService("secret")

	token, err := service.GenerateToken("user-1", "free")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, lifetime)
}
