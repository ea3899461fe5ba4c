// Package common holds helpers shared by the application services.
package common

import (
	"context"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/shared/errors"
)

// RequireActor returns the authenticated actor or a NotAuthenticatedError.
func RequireActor(ctx context.Context, operation string) (actor.Actor, error) {
	a, ok := actor.FromContext(ctx)
	if !ok {
		return actor.Actor{}, errors.NewNotAuthenticatedError(operation)
	}
	return a, nil
}
