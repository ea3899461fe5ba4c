// Package ticket runs ticket and comment use cases on top of their stores.
package ticket

import (
	"context"
	"strings"

	"agencydesk/internal/application/common"
	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/ticket"
	vo "agencydesk/internal/domain/ticket/valueobjects"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/markdown"
	"agencydesk/internal/shared/utils"
)

func init() {
	utils.RegisterEnum("ticket_priority", func(s string) bool { return vo.Priority(s).IsValid() })
	utils.RegisterEnum("ticket_status", func(s string) bool { return vo.Status(s).IsValid() })
	utils.RegisterEnum("ticket_category", func(s string) bool { return vo.Category(s).IsValid() })
}

// Directory answers whether an id names a stored record.
type Directory interface {
	Exists(id string) bool
}

type AttachmentInput struct {
	Type ticket.AttachmentType `json:"type" validate:"required,oneof=image video"`
	URL  string                `json:"url" validate:"required"`
	Name string                `json:"name" validate:"required"`
	Size int64                 `json:"size" validate:"gte=0"`
}

type CreateTicketCommand struct {
	BrandID     string            `json:"brandId" validate:"required"`
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description" validate:"required"`
	Priority    vo.Priority       `json:"priority" validate:"required,ticket_priority"`
	Status      vo.Status         `json:"status" validate:"omitempty,ticket_status"`
	Category    vo.Category       `json:"category" validate:"required,ticket_category"`
	Type        string            `json:"type"`
	AssignedTo  *string           `json:"assignedTo"`
	Attachments []AttachmentInput `json:"attachments" validate:"dive"`
}

func (c *CreateTicketCommand) trim() {
	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
}

type Service struct {
	tickets  *store.Store[ticket.Ticket]
	comments *store.Store[ticket.Comment]
	brands   Directory
	users    Directory
	md       markdown.Renderer
	ids      id.Generator
	logger   logger.Interface
}

// NewService wires the ticket use cases. users may be nil, in which case
// assignees are not checked.
func NewService(
	tickets *store.Store[ticket.Ticket],
	comments *store.Store[ticket.Comment],
	brands Directory,
	users Directory,
	md markdown.Renderer,
	log logger.Interface,
) *Service {
	return &Service{
		tickets:  tickets,
		comments: comments,
		brands:   brands,
		users:    users,
		md:       md,
		ids:      id.UUID(),
		logger:   log,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateTicketCommand) (ticket.Ticket, error) {
	s.logger.Infow("executing create ticket", "title", cmd.Title, "brand_id", cmd.BrandID)

	author, err := common.RequireActor(ctx, "create ticket")
	if err != nil {
		return ticket.Ticket{}, err
	}
	cmd.trim()
	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create ticket command", "error", err)
		return ticket.Ticket{}, err
	}
	if err := s.checkBrand(cmd.BrandID); err != nil {
		return ticket.Ticket{}, err
	}
	if cmd.AssignedTo != nil {
		if err := s.checkAssignee(*cmd.AssignedTo); err != nil {
			return ticket.Ticket{}, err
		}
	}

	typ := cmd.Type
	if typ == "" {
		typ = cmd.Category.DefaultType()
	}
	status := cmd.Status
	if status == "" {
		status = vo.StatusNew
	}

	t := ticket.Ticket{
		BrandID:     cmd.BrandID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Priority:    cmd.Priority,
		Status:      status,
		Category:    cmd.Category,
		Type:        typ,
		AssignedTo:  cmd.AssignedTo,
		CreatedBy:   author.ID,
		Attachments: make([]ticket.Attachment, 0, len(cmd.Attachments)),
	}
	for _, a := range cmd.Attachments {
		t.Attachments = append(t.Attachments, ticket.Attachment{
			ID:   s.ids.NewID(),
			Type: a.Type,
			URL:  a.URL,
			Name: a.Name,
			Size: a.Size,
		})
	}
	if err := t.Validate(); err != nil {
		return ticket.Ticket{}, errors.NewValidationError("invalid ticket", err.Error())
	}

	return s.tickets.Create(ctx, t)
}

// Update merges patch into the ticket. A category change that invalidates the
// current type falls back to the category default.
func (s *Service) Update(ctx context.Context, ticketID string, patch ticket.Patch) (ticket.Ticket, error) {
	s.logger.Infow("executing update ticket", "ticket_id", ticketID)

	if err := utils.ValidateStruct(patch); err != nil {
		return ticket.Ticket{}, err
	}
	if patch.BrandID != nil {
		if err := s.checkBrand(*patch.BrandID); err != nil {
			return ticket.Ticket{}, err
		}
	}
	if patch.AssignedTo != nil && !patch.Unassign {
		if err := s.checkAssignee(*patch.AssignedTo); err != nil {
			return ticket.Ticket{}, err
		}
	}

	return s.tickets.Update(ctx, ticketID, func(t *ticket.Ticket) error {
		if err := patch.Apply(t); err != nil {
			return errors.NewValidationError("invalid ticket update", err.Error())
		}
		return nil
	})
}

// Assign sets the assignee; an empty userID clears it.
func (s *Service) Assign(ctx context.Context, ticketID, userID string) (ticket.Ticket, error) {
	if userID == "" {
		return s.Update(ctx, ticketID, ticket.Patch{Unassign: true})
	}
	return s.Update(ctx, ticketID, ticket.Patch{AssignedTo: &userID})
}

func (s *Service) Delete(ctx context.Context, ticketID string) error {
	s.logger.Infow("executing delete ticket", "ticket_id", ticketID)
	_, err := s.tickets.Delete(ctx, ticketID)
	return err
}

func (s *Service) Get(ticketID string) (ticket.Ticket, error) {
	return s.tickets.Get(ticketID)
}

func (s *Service) List(filter ticket.Filter) []ticket.Ticket {
	out := s.tickets.Find(filter.Matches)
	if out == nil {
		return []ticket.Ticket{}
	}
	return out
}

func (s *Service) Exists(ticketID string) bool {
	return s.tickets.Exists(ticketID)
}

// CountForBrand implements brand.Referrer.
func (s *Service) CountForBrand(brandID string) int {
	return len(s.tickets.Find(func(t ticket.Ticket) bool { return t.BrandID == brandID }))
}

// DeleteForBrand implements brand.Referrer.
func (s *Service) DeleteForBrand(ctx context.Context, brandID string) error {
	for _, t := range s.tickets.Find(func(t ticket.Ticket) bool { return t.BrandID == brandID }) {
		if _, err := s.tickets.Delete(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) checkBrand(brandID string) error {
	if s.brands != nil && !s.brands.Exists(brandID) {
		return errors.NewValidationError("unknown brand", brandID)
	}
	return nil
}

func (s *Service) checkAssignee(userID string) error {
	if s.users != nil && !s.users.Exists(userID) {
		return errors.NewValidationError("unknown assignee", userID)
	}
	return nil
}
