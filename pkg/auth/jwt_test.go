package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), RoleEmployee)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("issuer-secret", 15*time.Minute, 24*time.Hour)
	verifier := NewJWTManager("other-secret", 15*time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
