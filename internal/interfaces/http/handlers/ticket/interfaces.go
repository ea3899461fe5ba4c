package ticket

import (
	"context"

	appticket "agencydesk/internal/application/ticket"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/ticket"
)

type ticketService interface {
	Create(ctx context.Context, cmd appticket.CreateTicketCommand) (ticket.Ticket, error)
	Update(ctx context.Context, ticketID string, patch ticket.Patch) (ticket.Ticket, error)
	Assign(ctx context.Context, ticketID, userID string) (ticket.Ticket, error)
	Delete(ctx context.Context, ticketID string) error
	Get(ticketID string) (ticket.Ticket, error)
	List(filter ticket.Filter) []ticket.Ticket

	AddComment(ctx context.Context, cmd appticket.AddCommentCommand) (ticket.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	GetComment(commentID string) (ticket.Comment, error)
	Comments(ticketID string) ([]appticket.CommentView, error)
}

type authorizer interface {
	Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error
}
