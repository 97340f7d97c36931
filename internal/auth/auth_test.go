package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/emilythestrangee/qanda/backend/internal/models"
)

func TestIssueAndParseToken(t *testing.T) {
	m := NewManager("secret", time.Hour, bcrypt.MinCost)
	user := &models.User{ID: 7, Username: "alice"}

	raw, err := m.IssueToken(user)
	require.NoError(t, err)

	claims, err := m.ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
}

func TestParseTokenRejects(t *testing.T) {
	m := NewManager("secret", time.Hour, bcrypt.MinCost)
	user := &models.User{ID: 7, Username: "alice"}

	other := NewManager("other-secret", time.Hour, bcrypt.MinCost)
	foreign, err := other.IssueToken(user)
	require.NoError(t, err)

	expired := NewManager("secret", time.Hour, bcrypt.MinCost)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.IssueToken(user)
	require.NoError(t, err)

	anonymous, err := m.IssueToken(&models.User{Username: "ghost"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"no user id", anonymous},
		{"alg none", none},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswords(t *testing.T) {
	m := NewManager("secret", time.Hour, bcrypt.MinCost)

	hash, err := m.HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, m.CheckPassword(hash, "password123"))
	assert.ErrorIs(t, m.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestNewManagerClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewManager("s", time.Hour, 0).bcryptCost)
	assert.Equal(t, bcrypt.DefaultCost, NewManager("s", time.Hour, 99).bcryptCost)
	assert.Equal(t, 12, NewManager("s", time.Hour, 12).bcryptCost)
}
