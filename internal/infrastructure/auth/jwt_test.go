package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/biztime"
)

var manager = actor.Actor{ID: "2", Username: "manager", Role: user.RoleAdmin}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("secret", "agencydesk", 60)

	token, err := svc.Generate(manager)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, manager, claims.Actor())
	assert.Equal(t, "2", claims.Subject)
	assert.False(t, svc.ShouldRefresh(claims))
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "agencydesk", 60)
	token, err := svc.Generate(manager)
	require.NoError(t, err)

	other := NewJWTService("other-secret", "agencydesk", 60)
	_, err = other.Verify(token.AccessToken)
	assert.Error(t, err, "wrong secret")

	foreign := NewJWTService("secret", "someone-else", 60)
	_, err = foreign.Verify(token.AccessToken)
	assert.Error(t, err, "wrong issuer")

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_ExpiryAndRefresh(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewJWTService("secret", "agencydesk", 10)
	svc.clock = biztime.Fixed(issued)

	token, err := svc.Generate(manager)
	require.NoError(t, err)

	svc.clock = biztime.Fixed(issued.Add(6 * time.Minute))
	claims, err := svc.Verify(token.AccessToken)
	require.NoError(t, err)
	assert.True(t, svc.ShouldRefresh(claims))

	refreshed, err := svc.RefreshAccessToken(claims)
	require.NoError(t, err)

	svc.clock = biztime.Fixed(issued.Add(11 * time.Minute))
	_, err = svc.Verify(token.AccessToken)
	assert.Error(t, err, "expired")
	_, err = svc.Verify(refreshed)
	assert.NoError(t, err)
}
