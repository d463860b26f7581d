package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse_RoundTrip(t *testing.T) {
	pair, err := Issue("Administrator", RoleAdmin, "eventpass", "test-key", time.Minute, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := Parse(pair.AccessToken, "test-key", "eventpass")
	require.NoError(t, err)
	assert.Equal(t, "Administrator", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParse_WrongKey(t *testing.T) {
	pair, err := Issue("Administrator", RoleAdmin, "eventpass", "test-key", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, "other-key", "eventpass")
	assert.Error(t, err)
}

func TestParse_IssuerMismatch(t *testing.T) {
	pair, err := Issue("Administrator", RoleAdmin, "someone-else", "test-key", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, "test-key", "eventpass")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	pair, err := Issue("Administrator", RoleAdmin, "eventpass", "test-key", -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = Parse(pair.AccessToken, "test-key", "eventpass")
	assert.Error(t, err)
}

func TestVerifyCredentials(t *testing.T) {
	assert.True(t, VerifyCredentials("admin", "admin123", "admin", "admin123"))
	assert.False(t, VerifyCredentials("admin", "wrong", "admin", "admin123"))
	assert.False(t, VerifyCredentials("root", "admin123", "admin", "admin123"))
	assert.False(t, VerifyCredentials("", "", "admin", "admin123"))
}
