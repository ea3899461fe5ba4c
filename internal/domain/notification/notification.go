// Package notification holds in-app notices raised by store mutations.
package notification

import "time"

type Type string

const (
	TypeTicket  Type = "ticket"
	TypeBrand   Type = "brand"
	TypeUser    Type = "user"
	TypeSystem  Type = "system"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
)

var validTypes = map[Type]bool{
	TypeTicket: true, TypeBrand: true, TypeUser: true, TypeSystem: true,
	TypeInfo: true, TypeSuccess: true, TypeWarning: true,
}

func (t Type) IsValid() bool { return validTypes[t] }

type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft is a notification before the center assigns id, time and read state.
type Draft struct {
	Type    Type
	Title   string
	Message string
	Link    string
}
