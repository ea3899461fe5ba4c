// Package ticket holds agency work requests and the comments on them.
package ticket

import (
	"fmt"
	"slices"
	"time"

	vo "agencydesk/internal/domain/ticket/valueobjects"
)

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
)

type Attachment struct {
	ID        string         `json:"id"`
	TicketID  string         `json:"ticketId"`
	Type      AttachmentType `json:"type" validate:"oneof=image video"`
	URL       string         `json:"url" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Size      int64          `json:"size" validate:"gte=0"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Ticket is a unit of work requested for a brand.
type Ticket struct {
	ID          string       `json:"id"`
	BrandID     string       `json:"brandId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    vo.Priority  `json:"priority"`
	Status      vo.Status    `json:"status"`
	Category    vo.Category  `json:"category"`
	Type        string       `json:"type"`
	AssignedTo  *string      `json:"assignedTo"`
	CreatedBy   string       `json:"createdBy"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of t.
func (t Ticket) Clone() Ticket {
	t.Attachments = slices.Clone(t.Attachments)
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		t.AssignedTo = &a
	}
	return t
}

// IsAssignedTo reports whether userID is the assignee.
func (t Ticket) IsAssignedTo(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// Validate checks the enumerations and the category/type pairing.
func (t Ticket) Validate() error {
	if !t.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", t.Category)
	}
	if !t.Category.AllowsType(t.Type) {
		return fmt.Errorf("type %q is not valid for category %s", t.Type, t.Category)
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	BrandID     *string       `json:"brandId,omitempty"`
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description,omitempty"`
	Priority    *vo.Priority  `json:"priority,omitempty" validate:"omitempty,ticket_priority"`
	Status      *vo.Status    `json:"status,omitempty" validate:"omitempty,ticket_status"`
	Category    *vo.Category  `json:"category,omitempty" validate:"omitempty,ticket_category"`
	Type        *string       `json:"type,omitempty"`
	AssignedTo  *string       `json:"assignedTo,omitempty"`
	Unassign    bool          `json:"unassign,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`
}

// Apply merges p into t. Moving to a category that does not allow the
// current type resets the type to the category default; an explicit type
// must belong to the resulting category.
func (p Patch) Apply(t *Ticket) error {
	category := t.Category
	if p.Category != nil {
		category = *p.Category
	}
	typ := t.Type
	if p.Type != nil {
		typ = *p.Type
		if !category.AllowsType(typ) {
			return fmt.Errorf("type %q is not valid for category %s", typ, category)
		}
	} else if !category.AllowsType(typ) {
		typ = category.DefaultType()
	}

	if p.BrandID != nil {
		t.BrandID = *p.BrandID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	t.Category = category
	t.Type = typ

	switch {
	case p.Unassign:
		t.AssignedTo = nil
	case p.AssignedTo != nil:
		a := *p.AssignedTo
		t.AssignedTo = &a
	}
	if p.Attachments != nil {
		t.Attachments = slices.Clone(*p.Attachments)
	}
	return nil
}

// Filter narrows a ticket listing. Empty fields match everything.
type Filter struct {
	BrandID    string
	Status     vo.Status
	Priority   vo.Priority
	Category   vo.Category
	AssignedTo string
	CreatedBy  string
}

func (f Filter) Matches(t Ticket) bool {
	switch {
	case f.BrandID != "" && t.BrandID != f.BrandID:
		return false
	case f.Status != "" && t.Status != f.Status:
		return false
	case f.Priority != "" && t.Priority != f.Priority:
		return false
	case f.Category != "" && t.Category != f.Category:
		return false
	case f.AssignedTo != "" && !t.IsAssignedTo(f.AssignedTo):
		return false
	case f.CreatedBy != "" && t.CreatedBy != f.CreatedBy:
		return false
	}
	return true
}
