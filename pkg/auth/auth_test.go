package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/esamadhan/volunteer-api/pkg/config"
	"github.com/esamadhan/volunteer-api/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth() *Authenticator {
	return New(config.AuthConfig{
		JWTSecret:    "jwt-secret",
		MasterSecret: "master-secret",
		TokenTTL:     time.Hour,
	}).WithBcryptCost(4)
}

func TestTokenRoundTrip(t *testing.T) {
	a := testAuth()
	token, err := a.CreateToken("admin")
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	other := New(config.AuthConfig{JWTSecret: "different"})
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.VerifyToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	a := testAuth()
	a.tokenTTL = -time.Minute
	token, err := a.CreateToken("admin")
	require.NoError(t, err)

	_, err = a.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAPIKeys(t *testing.T) {
	a := testAuth()
	key := a.GenerateAPIKey("ngo.partner")

	partner, err := a.VerifyAPIKey(key)
	require.NoError(t, err)
	assert.Equal(t, "ngo.partner", partner)

	for _, bad := range []string{"", "nodot", ".sig", "partner.", key + "x", "other." + key[len("ngo.partner."):]} {
		_, err := a.VerifyAPIKey(bad)
		assert.ErrorIs(t, err, ErrInvalidAPIKey, "key %q", bad)
	}
}

func TestKeyPreview(t *testing.T) {
	assert.Equal(t, "****", KeyPreview("short"))
	assert.Equal(t, "ngo...cdef", KeyPreview("ngo.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	a := testAuth()

	created, err := a.EnsureAdminExists(db, "admin", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = a.EnsureAdminExists(db, "someone-else", "x")
	require.NoError(t, err)
	assert.False(t, created)

	var user database.MasterUser
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, CheckPasswordHash("s3cret", user.PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", user.PasswordHash))
}
