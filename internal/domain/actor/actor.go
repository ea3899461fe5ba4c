// Package actor carries the authenticated user through a request context.
package actor

import (
	"context"

	"agencydesk/internal/domain/user"
)

// Actor is the identity a mutation is attributed to.
type Actor struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Role     user.Role `json:"role"`
}

// FromUser projects a stored user onto an Actor.
func FromUser(u user.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

type ctxKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the actor stored in ctx, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	if !ok || a.ID == "" {
		return Actor{}, false
	}
	return a, true
}
