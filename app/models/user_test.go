package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "secret123")
	require.NoError(t, err)

	assert.False(t, u.Verified)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), u.VerificationCode)
	assert.NotNil(t, u.VerificationSentAt)
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "short name", userName: "ab", email: "a@example.com", password: "secret123"},
		{name: "bad email", userName: "Ada", email: "not-an-email", password: "secret123"},
		{name: "short password", userName: "Ada", email: "a@example.com", password: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateUser(tt.userName, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestVerificationCodeValidity(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "secret123")
	require.NoError(t, err)

	assert.True(t, u.IsVerificationCodeValid(u.VerificationCode))
	assert.False(t, u.IsVerificationCodeValid("000000"))
	assert.False(t, u.IsVerificationCodeValid(""))
}

func TestVerificationCodeExpires(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "secret123")
	require.NoError(t, err)

	stale := time.Now().Add(-25 * time.Hour)
	u.VerificationSentAt = &stale

	assert.False(t, u.IsVerificationCodeValid(u.VerificationCode))
}

func TestMarkVerified(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "secret123")
	require.NoError(t, err)

	u.MarkVerified()

	assert.True(t, u.Verified)
	assert.Empty(t, u.VerificationCode)
	assert.Nil(t, u.VerificationSentAt)
	// A cleared code never validates again
	assert.False(t, u.IsVerificationCodeValid(""))
}

func TestGenerateVerificationCodeIsRandom(t *testing.T) {
	u := &User{}
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		require.NoError(t, u.GenerateVerificationCode())
		seen[u.VerificationCode] = true
	}
	// Ten draws all landing on one code would mean a broken generator
	assert.Greater(t, len(seen), 1)
}
