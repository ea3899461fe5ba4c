// Package submission holds deliverables handed in for review.
package submission

import (
	"slices"
	"time"

	"agencydesk/internal/domain/ticket"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusInReview Status = "in_review"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusPending: true, StatusInReview: true, StatusApproved: true, StatusRejected: true,
}

func (s Status) IsValid() bool { return validStatuses[s] }

// IsFinal is true once a reviewer has decided.
func (s Status) IsFinal() bool { return s == StatusApproved || s == StatusRejected }

type DocumentType string

const (
	DocumentReport       DocumentType = "report"
	DocumentGraphic      DocumentType = "graphic"
	DocumentPresentation DocumentType = "presentation"
	DocumentDocument     DocumentType = "document"
	DocumentOther        DocumentType = "other"
)

var validDocumentTypes = map[DocumentType]bool{
	DocumentReport: true, DocumentGraphic: true, DocumentPresentation: true,
	DocumentDocument: true, DocumentOther: true,
}

func (d DocumentType) IsValid() bool { return validDocumentTypes[d] }

type Link struct {
	ID    string `json:"id"`
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title" validate:"required"`
}

type Feedback struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Author    ticket.Author `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
}

type Submission struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	FileName     string       `json:"fileName"`
	FileURL      string       `json:"fileUrl"`
	FileSize     int64        `json:"fileSize"`
	DocumentType DocumentType `json:"documentType"`
	BrandID      string       `json:"brandId"`
	Status       Status       `json:"status"`
	SubmittedBy  string       `json:"submittedBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	Feedback     []Feedback   `json:"feedback"`
	Links        []Link       `json:"links"`
}

// Clone returns a copy that shares no slices or pointers with s.
func (s Submission) Clone() Submission {
	s.Feedback = slices.Clone(s.Feedback)
	s.Links = slices.Clone(s.Links)
	if s.Deadline != nil {
		d := *s.Deadline
		s.Deadline = &d
	}
	return s
}

// IsOverdue reports whether the deadline has passed without a decision.
func (s Submission) IsOverdue(now time.Time) bool {
	return s.Deadline != nil && !s.Status.IsFinal() && now.After(*s.Deadline)
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title        *string       `json:"title,omitempty" validate:"omitempty,min=1"`
	Description  *string       `json:"description,omitempty"`
	DocumentType *DocumentType `json:"documentType,omitempty" validate:"omitempty,document_type"`
	BrandID      *string       `json:"brandId,omitempty"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Links        *[]Link       `json:"links,omitempty" validate:"omitempty,dive"`
}

func (p Patch) Apply(s *Submission) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.DocumentType != nil {
		s.DocumentType = *p.DocumentType
	}
	if p.BrandID != nil {
		s.BrandID = *p.BrandID
	}
	if p.Deadline != nil {
		d := *p.Deadline
		s.Deadline = &d
	}
	if p.Links != nil {
		s.Links = slices.Clone(*p.Links)
	}
}
