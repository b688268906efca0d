package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("R1", "North Route", "route", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "R1", claims.RouteID)
	assert.Equal(t, "North Route", claims.RouteName)
	assert.Equal(t, "route", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("R1", "North Route", "route", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
