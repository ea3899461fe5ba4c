package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appticket "agencydesk/internal/application/ticket"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/ticket"
	vo "agencydesk/internal/domain/ticket/valueobjects"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/interfaces/http/handlers/testutil"
	"agencydesk/internal/shared/errors"
)

// =====================================================================
// Mocks
// =====================================================================

type mockTicketService struct {
	createFn        func(ctx context.Context, cmd appticket.CreateTicketCommand) (ticket.Ticket, error)
	updateFn        func(ctx context.Context, id string, patch ticket.Patch) (ticket.Ticket, error)
	assignFn        func(ctx context.Context, id, userID string) (ticket.Ticket, error)
	deleteFn        func(ctx context.Context, id string) error
	getFn           func(id string) (ticket.Ticket, error)
	listFn          func(filter ticket.Filter) []ticket.Ticket
	addCommentFn    func(ctx context.Context, cmd appticket.AddCommentCommand) (ticket.Comment, error)
	deleteCommentFn func(ctx context.Context, id string) error
	getCommentFn    func(id string) (ticket.Comment, error)
	commentsFn      func(ticketID string) ([]appticket.CommentView, error)
}

func (m *mockTicketService) Create(ctx context.Context, cmd appticket.CreateTicketCommand) (ticket.Ticket, error) {
	if m.createFn != nil {
		return m.createFn(ctx, cmd)
	}
	return ticket.Ticket{}, nil
}

func (m *mockTicketService) Update(ctx context.Context, id string, patch ticket.Patch) (ticket.Ticket, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return ticket.Ticket{ID: id}, nil
}

func (m *mockTicketService) Assign(ctx context.Context, id, userID string) (ticket.Ticket, error) {
	if m.assignFn != nil {
		return m.assignFn(ctx, id, userID)
	}
	return ticket.Ticket{ID: id, AssignedTo: &userID}, nil
}

func (m *mockTicketService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTicketService) Get(id string) (ticket.Ticket, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return ticket.Ticket{ID: id}, nil
}

func (m *mockTicketService) List(filter ticket.Filter) []ticket.Ticket {
	if m.listFn != nil {
		return m.listFn(filter)
	}
	return nil
}

func (m *mockTicketService) AddComment(ctx context.Context, cmd appticket.AddCommentCommand) (ticket.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, cmd)
	}
	return ticket.Comment{TicketID: cmd.TicketID, Content: cmd.Content}, nil
}

func (m *mockTicketService) DeleteComment(ctx context.Context, id string) error {
	if m.deleteCommentFn != nil {
		return m.deleteCommentFn(ctx, id)
	}
	return nil
}

func (m *mockTicketService) GetComment(id string) (ticket.Comment, error) {
	if m.getCommentFn != nil {
		return m.getCommentFn(id)
	}
	return ticket.Comment{ID: id}, nil
}

func (m *mockTicketService) Comments(ticketID string) ([]appticket.CommentView, error) {
	if m.commentsFn != nil {
		return m.commentsFn(ticketID)
	}
	return nil, nil
}

type mockAuthorizer struct {
	authorizeFn func(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error
}

func (m *mockAuthorizer) Authorize(ctx context.Context, resource permission.Resource, action permission.Action, ownerID string) error {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, resource, action, ownerID)
	}
	return nil
}

func newTestTicketHandler(svc *mockTicketService, authz *mockAuthorizer) *TicketHandler {
	if authz == nil {
		authz = &mockAuthorizer{}
	}
	return NewTicketHandler(svc, authz, testutil.NewMockLogger())
}

// =====================================================================
// Tests
// =====================================================================

func TestTicketHandler_CreateTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		svcErr     error
		wantStatus int
	}{
		{
			name:       "created",
			body:       map[string]any{"brandId": "1", "title": "Landing page", "priority": "high", "category": "web_development"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       "not an object",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service validation error",
			body:       map[string]any{"title": "x"},
			svcErr:     errors.NewValidationError("Validation failed", "brandId is required"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated",
			body:       map[string]any{"title": "x"},
			svcErr:     errors.NewNotAuthenticatedError("create ticket"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTicketService{
				createFn: func(_ context.Context, cmd appticket.CreateTicketCommand) (ticket.Ticket, error) {
					if tt.svcErr != nil {
						return ticket.Ticket{}, tt.svcErr
					}
					return ticket.Ticket{ID: "t1", Title: cmd.Title, Priority: cmd.Priority}, nil
				},
			}
			h := newTestTicketHandler(svc, nil)
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", tt.body)
			testutil.SetAuthContext(c, "1", user.RoleUser)

			h.CreateTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTicketHandler_ListTickets_Filters(t *testing.T) {
	var got ticket.Filter
	svc := &mockTicketService{
		listFn: func(f ticket.Filter) []ticket.Ticket {
			got = f
			return []ticket.Ticket{{ID: "a"}, {ID: "b"}, {ID: "c"}}
		},
	}
	h := newTestTicketHandler(svc, nil)
	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, "7", user.RoleUser)
	testutil.SetQueryParams(c, map[string]string{
		"status": "in_progress", "priority": "urgent", "mine": "true",
		"page": "2", "page_size": "2",
	})

	h.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vo.StatusInProgress, got.Status)
	assert.Equal(t, vo.PriorityUrgent, got.Priority)
	assert.Equal(t, "7", got.CreatedBy)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var page struct {
		Items []ticket.Ticket `json:"items"`
		Total int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c", page.Items[0].ID)
}

func TestTicketHandler_ListTickets_InvalidFilter(t *testing.T) {
	h := newTestTicketHandler(&mockTicketService{}, nil)
	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "archived"})

	h.ListTickets(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_UpdateTicket_Ownership(t *testing.T) {
	tests := []struct {
		name       string
		authErr    error
		wantStatus int
		wantUpdate bool
	}{
		{name: "allowed", wantStatus: http.StatusOK, wantUpdate: true},
		{name: "forbidden", authErr: errors.NewForbiddenError("insufficient permissions"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var owner string
			updated := false
			svc := &mockTicketService{
				getFn: func(id string) (ticket.Ticket, error) {
					return ticket.Ticket{ID: id, CreatedBy: "3"}, nil
				},
				updateFn: func(_ context.Context, id string, _ ticket.Patch) (ticket.Ticket, error) {
					updated = true
					return ticket.Ticket{ID: id}, nil
				},
			}
			authz := &mockAuthorizer{
				authorizeFn: func(_ context.Context, res permission.Resource, act permission.Action, ownerID string) error {
					assert.Equal(t, permission.ResourceTicket, res)
					assert.Equal(t, permission.ActionUpdate, act)
					owner = ownerID
					return tt.authErr
				},
			}
			h := newTestTicketHandler(svc, authz)
			c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/t1", map[string]any{"title": "New title"})
			testutil.SetURLParam(c, "id", "t1")
			testutil.SetAuthContext(c, "3", user.RoleUser)

			h.UpdateTicket(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "3", owner)
			assert.Equal(t, tt.wantUpdate, updated)
		})
	}
}

func TestTicketHandler_UpdateTicket_NotFound(t *testing.T) {
	svc := &mockTicketService{
		getFn: func(id string) (ticket.Ticket, error) {
			return ticket.Ticket{}, errors.NewNotFoundError("ticket not found", id)
		},
	}
	h := newTestTicketHandler(svc, nil)
	c, w := testutil.NewTestContext(http.MethodPatch, "/tickets/missing", map[string]any{})
	testutil.SetURLParam(c, "id", "missing")

	h.UpdateTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketHandler_AssignTicket(t *testing.T) {
	var assignee string
	svc := &mockTicketService{
		assignFn: func(_ context.Context, id, userID string) (ticket.Ticket, error) {
			assignee = userID
			return ticket.Ticket{ID: id, AssignedTo: &userID}, nil
		},
	}
	h := newTestTicketHandler(svc, nil)
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/t1/assign", map[string]any{"assigneeId": "2"})
	testutil.SetURLParam(c, "id", "t1")

	h.AssignTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", assignee)
}

func TestTicketHandler_DeleteTicket(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "missing", err: errors.NewNotFoundError("ticket not found"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTicketService{
				deleteFn: func(context.Context, string) error { return tt.err },
			}
			h := newTestTicketHandler(svc, nil)
			c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/t1", nil)
			testutil.SetURLParam(c, "id", "t1")

			h.DeleteTicket(c)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTicketHandler_AddComment(t *testing.T) {
	var got appticket.AddCommentCommand
	svc := &mockTicketService{
		addCommentFn: func(_ context.Context, cmd appticket.AddCommentCommand) (ticket.Comment, error) {
			got = cmd
			return ticket.Comment{ID: "c1", TicketID: cmd.TicketID, Content: cmd.Content}, nil
		},
	}
	h := newTestTicketHandler(svc, nil)
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/t1/comments", map[string]any{"content": "Looks **good**"})
	testutil.SetURLParam(c, "id", "t1")
	testutil.SetAuthContext(c, "1", user.RoleAdmin)

	h.AddComment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "t1", got.TicketID)
	assert.Equal(t, "Looks **good**", got.Content)
}

func TestTicketHandler_AddComment_RequiresContent(t *testing.T) {
	h := newTestTicketHandler(&mockTicketService{}, nil)
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/t1/comments", map[string]any{})
	testutil.SetURLParam(c, "id", "t1")

	h.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_DeleteComment_ChecksAuthor(t *testing.T) {
	var owner string
	deleted := false
	svc := &mockTicketService{
		getCommentFn: func(id string) (ticket.Comment, error) {
			return ticket.Comment{ID: id, Author: ticket.Author{ID: "5", Username: "sam"}}, nil
		},
		deleteCommentFn: func(context.Context, string) error {
			deleted = true
			return nil
		},
	}
	authz := &mockAuthorizer{
		authorizeFn: func(_ context.Context, res permission.Resource, _ permission.Action, ownerID string) error {
			assert.Equal(t, permission.ResourceComment, res)
			owner = ownerID
			return errors.NewForbiddenError("insufficient permissions")
		},
	}
	h := newTestTicketHandler(svc, authz)
	c, w := testutil.NewTestContext(http.MethodDelete, "/comments/c1", nil)
	testutil.SetURLParam(c, "id", "c1")
	testutil.SetAuthContext(c, "6", user.RoleUser)

	h.DeleteComment(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "5", owner)
	assert.False(t, deleted)
}
