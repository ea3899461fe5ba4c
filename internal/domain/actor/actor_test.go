package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"agencydesk/internal/domain/user"
)

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	a := FromUser(user.User{ID: "1", Username: "admin", Role: user.RoleSuperAdmin})
	got, ok := FromContext(WithActor(context.Background(), a))
	assert.True(t, ok)
	assert.Equal(t, a, got)
}

func TestFromContext_RejectsBlankActor(t *testing.T) {
	_, ok := FromContext(WithActor(context.Background(), Actor{Username: "ghost"}))
	assert.False(t, ok)
}
