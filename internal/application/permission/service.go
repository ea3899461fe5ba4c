// Package permission authorizes the actor of a request against the role
// policies and the owner exceptions.
package permission

import (
	"context"
	"slices"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
)

type Service struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewService(enforcer permission.PermissionEnforcer, log logger.Interface) *Service {
	return &Service{enforcer: enforcer, logger: log}
}

// Authorize fails with NotAuthenticated when ctx carries no actor and with
// Forbidden when neither the actor's role nor ownership allows the action.
// ownerID is the id of the user owning the target record, or "".
func (s *Service) Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error {
	a, ok := actor.FromContext(ctx)
	if !ok {
		return errors.NewNotAuthenticatedError()
	}

	allowed, err := s.enforcer.Enforce(string(a.Role), resource, action)
	if err != nil {
		return errors.NewInternalError("permission check failed", err.Error())
	}
	if allowed {
		return nil
	}

	if ownerID != "" && ownerID == a.ID && slices.Contains(permission.OwnerMay[resource], action) {
		return nil
	}

	s.logger.Warnw("permission denied",
		"user_id", a.ID,
		"role", a.Role,
		"resource", resource,
		"action", action)
	return errors.NewForbiddenError("insufficient permissions", string(resource)+":"+string(action))
}

// Can reports whether the actor's role grants the action, ignoring ownership.
func (s *Service) Can(ctx context.Context, resource permission.Resource, action permission.Action) bool {
	return s.Authorize(ctx, resource, action, "") == nil
}
