package ticket

import (
	"context"
	"strings"

	"agencydesk/internal/application/common"
	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/shared/errors"
)

type AddCommentCommand struct {
	TicketID string `json:"ticketId" validate:"required"`
	Content  string `json:"content" validate:"required,max=5000"`
}

// CommentView is a stored comment with its rendered body.
type CommentView struct {
	ticket.Comment
	HTML string `json:"html"`
}

// AddComment records a comment by the current actor. Markup in the content is
// stripped before storage; markdown is rendered on read.
func (s *Service) AddComment(ctx context.Context, cmd AddCommentCommand) (ticket.Comment, error) {
	s.logger.Infow("executing add comment", "ticket_id", cmd.TicketID)

	author, err := common.RequireActor(ctx, "add comment")
	if err != nil {
		return ticket.Comment{}, err
	}
	content := strings.TrimSpace(s.md.Clean(cmd.Content))
	if content == "" {
		return ticket.Comment{}, errors.NewValidationError("Validation failed", "content is required")
	}
	if !s.tickets.Exists(cmd.TicketID) {
		return ticket.Comment{}, errors.NewNotFoundError("ticket not found", cmd.TicketID)
	}

	return s.comments.Create(ctx, ticket.Comment{
		TicketID: cmd.TicketID,
		Content:  content,
		Author:   ticket.Author{ID: author.ID, Username: author.Username},
	})
}

func (s *Service) DeleteComment(ctx context.Context, commentID string) error {
	_, err := s.comments.Delete(ctx, commentID)
	return err
}

// GetComment returns one stored comment.
func (s *Service) GetComment(commentID string) (ticket.Comment, error) {
	return s.comments.Get(commentID)
}

// Comments lists the comments on a ticket, oldest first, with rendered HTML.
func (s *Service) Comments(ticketID string) ([]CommentView, error) {
	if !s.tickets.Exists(ticketID) {
		return nil, errors.NewNotFoundError("ticket not found", ticketID)
	}

	found := s.comments.Find(func(c ticket.Comment) bool { return c.TicketID == ticketID })
	views := make([]CommentView, 0, len(found))
	for _, c := range found {
		html, err := s.md.ToHTML(c.Content)
		if err != nil {
			s.logger.Warnw("failed to render comment", "comment_id", c.ID, "error", err)
			html = ""
		}
		views = append(views, CommentView{Comment: c, HTML: html})
	}
	return views, nil
}

// AllComments returns every stored comment.
func (s *Service) AllComments() []ticket.Comment {
	return s.comments.List()
}
