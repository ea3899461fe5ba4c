package permission

import (
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/user"
)

// RoleHierarchy links each role to the role it inherits from.
var RoleHierarchy = [][2]string{
	{string(user.RoleSuperAdmin), string(user.RoleAdmin)},
	{string(user.RoleAdmin), string(user.RoleUser)},
}

func grant(role user.Role, resource permission.Resource, actions ...permission.Action) []permission.Policy {
	out := make([]permission.Policy, len(actions))
	for i, a := range actions {
		out[i] = permission.Policy{Role: string(role), Resource: resource, Action: a}
	}
	return out
}

// DefaultPolicies is written when the policy store is empty.
var DefaultPolicies = concat(
	grant(user.RoleUser, permission.ResourceTicket, permission.ActionRead, permission.ActionCreate),
	grant(user.RoleUser, permission.ResourceComment, permission.ActionRead, permission.ActionCreate),
	grant(user.RoleUser, permission.ResourceBrand, permission.ActionRead),
	grant(user.RoleUser, permission.ResourceResource, permission.ActionRead),
	grant(user.RoleUser, permission.ResourceSubmission, permission.ActionRead, permission.ActionCreate),
	grant(user.RoleUser, permission.ResourceUser, permission.ActionRead),
	grant(user.RoleUser, permission.ResourceNotification, permission.ActionRead, permission.ActionUpdate, permission.ActionDelete),
	grant(user.RoleUser, permission.ResourceDashboard, permission.ActionRead),

	grant(user.RoleAdmin, permission.ResourceTicket, permission.ActionUpdate, permission.ActionDelete, permission.ActionAssign),
	grant(user.RoleAdmin, permission.ResourceComment, permission.ActionDelete),
	grant(user.RoleAdmin, permission.ResourceBrand, permission.ActionCreate, permission.ActionUpdate, permission.ActionDelete),
	grant(user.RoleAdmin, permission.ResourceResource, permission.ActionCreate, permission.ActionUpdate, permission.ActionDelete),
	grant(user.RoleAdmin, permission.ResourceSubmission, permission.ActionUpdate, permission.ActionReview, permission.ActionDelete),

	grant(user.RoleSuperAdmin, permission.ResourceUser, permission.ActionCreate, permission.ActionUpdate, permission.ActionDelete),
)

func concat(groups ...[]permission.Policy) []permission.Policy {
	var out []permission.Policy
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
