package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("u-1", "admin@example.com", user.RoleAdmin)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestSSEToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresIn, err := svc.GenerateSSEToken("u-2")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-2", userID)

	access, _, err := svc.GenerateAccessToken("u-2", "r@example.com", user.RoleReviewer)
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err, "access tokens are not valid for SSE")
}

func TestClaimsFromContext(t *testing.T) {
	ctx := NewContext(context.Background(), "u-9", user.RoleReviewer)

	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
	assert.Equal(t, user.RoleReviewer, claims.Role)

	_, err = ClaimsFromContext(context.Background())
	assert.Error(t, err)
}
