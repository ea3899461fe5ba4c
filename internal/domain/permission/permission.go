// Package permission names what roles may do to which collections.
package permission

type Resource string

const (
	ResourceTicket       Resource = "ticket"
	ResourceComment      Resource = "comment"
	ResourceBrand        Resource = "brand"
	ResourceResource     Resource = "resource"
	ResourceSubmission   Resource = "submission"
	ResourceUser         Resource = "user"
	ResourceNotification Resource = "notification"
	ResourceDashboard    Resource = "dashboard"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionReview covers submission status changes and feedback.
	ActionReview Action = "review"
	ActionAssign Action = "assign"
)

// Policy grants Role the Action on Resource.
type Policy struct {
	Role     string
	Resource Resource
	Action   Action
}

// OwnerMay lists the actions a record's owner may perform even when the
// owner's role does not grant them.
var OwnerMay = map[Resource][]Action{
	ResourceTicket:     {ActionUpdate},
	ResourceComment:    {ActionDelete},
	ResourceSubmission: {ActionDelete},
}
