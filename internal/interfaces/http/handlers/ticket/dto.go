package ticket

import (
	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/domain/ticket"
	vo "agencydesk/internal/domain/ticket/valueobjects"
)

type AssignTicketRequest struct {
	AssigneeID string `json:"assigneeId" binding:"required"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// parseFilter reads the list filters from the query string. mine=true limits
// the list to tickets created by the caller.
func parseFilter(c *gin.Context) (ticket.Filter, error) {
	f := ticket.Filter{
		BrandID:    c.Query("brandId"),
		AssignedTo: c.Query("assignedTo"),
		CreatedBy:  c.Query("createdBy"),
	}

	if s := c.Query("status"); s != "" {
		status, err := vo.NewStatus(s)
		if err != nil {
			return ticket.Filter{}, err
		}
		f.Status = status
	}
	if s := c.Query("priority"); s != "" {
		priority, err := vo.NewPriority(s)
		if err != nil {
			return ticket.Filter{}, err
		}
		f.Priority = priority
	}
	if s := c.Query("category"); s != "" {
		category, err := vo.NewCategory(s)
		if err != nil {
			return ticket.Filter{}, err
		}
		f.Category = category
	}
	if c.Query("mine") == "true" {
		if a, ok := actor.FromContext(c.Request.Context()); ok {
			f.CreatedBy = a.ID
		}
	}
	return f, nil
}
