package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Name:     "Ada",
		Email:    "ada@example.com",
		Verified: true,
	}
}

func TestIssueAndVerify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, err := Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.True(t, claims.Verified)
}

func TestIssueWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Issue(testUser())
	assert.Error(t, err)
}

func TestVerifyTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, err := Issue(testUser())
	require.NoError(t, err)

	// Flip one character in the signature section
	tampered := raw[:len(raw)-2] + "xx"
	_, err = Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	raw, err := Issue(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = Verify(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
