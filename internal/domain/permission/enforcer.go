package permission

// PermissionEnforcer answers whether a role may perform action on resource.
type PermissionEnforcer interface {
	Enforce(role string, resource Resource, action Action) (bool, error)
	AddPolicy(role string, resource Resource, action Action) error
	RemovePolicy(role string, resource Resource, action Action) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
