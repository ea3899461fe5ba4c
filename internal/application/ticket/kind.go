package ticket

import (
	"fmt"
	"time"

	"agencydesk/internal/application/store"
	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/ticket"
)

const (
	Slot        = "tickets"
	CommentSlot = "comments"
)

func link(ticketID string) string { return "/tickets/" + ticketID }

// Kind describes ticket persistence and notifications.
func Kind() store.Kind[ticket.Ticket] {
	return store.Kind[ticket.Ticket]{
		Slot: Slot,
		Noun: "ticket",
		ID:   func(t ticket.Ticket) string { return t.ID },
		Init: func(t *ticket.Ticket, id string, now time.Time) {
			t.ID, t.CreatedAt, t.UpdatedAt = id, now, now
			for i := range t.Attachments {
				t.Attachments[i].TicketID = id
				if t.Attachments[i].CreatedAt.IsZero() {
					t.Attachments[i].CreatedAt = now
				}
			}
		},
		UpdatedAt:    func(t ticket.Ticket) time.Time { return t.UpdatedAt },
		SetUpdatedAt: func(t *ticket.Ticket, at time.Time) { t.UpdatedAt = at },
		CreatedAt:    func(t ticket.Ticket) time.Time { return t.CreatedAt },
		SetCreatedAt: func(t *ticket.Ticket, at time.Time) { t.CreatedAt = at },
		Clone:        ticket.Ticket.Clone,
		Created: func(t ticket.Ticket) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeInfo,
				Title:   "New ticket created",
				Message: fmt.Sprintf("Ticket %q has been created", t.Title),
				Link:    link(t.ID),
			}
		},
		Updated: func(before, _ ticket.Ticket) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeSuccess,
				Title:   "Ticket updated",
				Message: fmt.Sprintf("Ticket %q has been updated", before.Title),
				Link:    link(before.ID),
			}
		},
		Deleted: func(t ticket.Ticket) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeWarning,
				Title:   "Ticket deleted",
				Message: fmt.Sprintf("Ticket %q has been deleted", t.Title),
			}
		},
	}
}

// CommentKind describes comment persistence. Comments are never edited, so
// the update hooks only satisfy the store contract.
func CommentKind() store.Kind[ticket.Comment] {
	return store.Kind[ticket.Comment]{
		Slot: CommentSlot,
		Noun: "comment",
		ID:   func(c ticket.Comment) string { return c.ID },
		Init: func(c *ticket.Comment, id string, now time.Time) {
			c.ID, c.CreatedAt = id, now
		},
		UpdatedAt:    func(c ticket.Comment) time.Time { return c.CreatedAt },
		SetUpdatedAt: func(*ticket.Comment, time.Time) {},
		CreatedAt:    func(c ticket.Comment) time.Time { return c.CreatedAt },
		SetCreatedAt: func(c *ticket.Comment, at time.Time) { c.CreatedAt = at },
		Created: func(c ticket.Comment) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeTicket,
				Title:   "New comment",
				Message: fmt.Sprintf("%s commented on a ticket", c.Author.Username),
				Link:    link(c.TicketID),
			}
		},
		Deleted: func(c ticket.Comment) notification.Draft {
			return notification.Draft{
				Type:    notification.TypeWarning,
				Title:   "Comment deleted",
				Message: fmt.Sprintf("A comment by %s has been deleted", c.Author.Username),
				Link:    link(c.TicketID),
			}
		},
	}
}
