package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
)

func TestRoundTrip(t *testing.T) {
	svc := NewJWTService("test-key", "shiftwise", "shiftwise-api")
	tenantID := id.NewTenantID()
	userID := id.NewUserID()

	token, err := svc.GenerateAccessToken(tenantID, userID, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	gotTenant, gotUser, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
	assert.Equal(t, userID, gotUser)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("test-key", "shiftwise", "shiftwise-api")

	token, err := svc.GenerateAccessToken(id.NewTenantID(), id.NewUserID(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestWrongKeyRejected(t *testing.T) {
	issuer := NewJWTService("key-a", "shiftwise", "shiftwise-api")
	verifier := NewJWTService("key-b", "shiftwise", "shiftwise-api")

	token, err := issuer.GenerateAccessToken(id.NewTenantID(), id.NewUserID(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewJWTService("test-key", "shiftwise", "shiftwise-api")
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
