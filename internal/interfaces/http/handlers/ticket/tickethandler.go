package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appticket "agencydesk/internal/application/ticket"
	"agencydesk/internal/domain/permission"
	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type TicketHandler struct {
	tickets ticketService
	authz   authorizer
	logger  logger.Interface
}

func NewTicketHandler(tickets ticketService, authz authorizer, logger logger.Interface) *TicketHandler {
	return &TicketHandler{
		tickets: tickets,
		authz:   authz,
		logger:  logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body appticket.CreateTicketCommand true "Ticket data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var cmd appticket.CreateTicketCommand
	if !common.BindJSON(c, &cmd) {
		return
	}

	result, err := h.tickets.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.tickets.Get(ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param category query string false "Filter by category"
// @Param brandId query string false "Filter by brand"
// @Param assignedTo query string false "Filter by assignee"
// @Param createdBy query string false "Filter by creator"
// @Param mine query bool false "Only tickets assigned to the caller"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid filter", err.Error()))
		return
	}

	result := h.tickets.List(filter)
	utils.ListSuccessResponse(c, utils.Paginate(result, utils.ParsePagination(c)), len(result))
}

// UpdateTicket handles PATCH /tickets/:id. Admins may edit any ticket, the
// creator may edit their own.
// @Summary Update a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Param ticket body ticket.Patch true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var patch ticket.Patch
	if !common.BindJSON(c, &patch) {
		return
	}

	current, err := h.tickets.Get(ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.authz.Authorize(c.Request.Context(), permission.ResourceTicket, permission.ActionUpdate, current.CreatedBy); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.tickets.Update(c.Request.Context(), ticketID, patch)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// AssignTicket handles POST /tickets/:id/assign
// @Summary Assign a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Param assignment body AssignTicketRequest true "Assignee"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/assign [post]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var req AssignTicketRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.tickets.Assign(c.Request.Context(), ticketID, req.AssigneeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.tickets.Delete(c.Request.Context(), ticketID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListComments handles GET /tickets/:id/comments
// @Summary List ticket comments
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/comments [get]
func (h *TicketHandler) ListComments(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.tickets.Comments(ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result, len(result))
}

// AddComment handles POST /tickets/:id/comments
// @Summary Comment on a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Param comment body AddCommentRequest true "Comment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	var req AddCommentRequest
	if !common.BindJSON(c, &req) {
		return
	}

	result, err := h.tickets.AddComment(c.Request.Context(), appticket.AddCommentCommand{
		TicketID: ticketID,
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// DeleteComment handles DELETE /comments/:id. Authors may delete their own
// comments.
// @Summary Delete a comment
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /comments/{id} [delete]
func (h *TicketHandler) DeleteComment(c *gin.Context) {
	commentID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.tickets.GetComment(commentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := h.authz.Authorize(c.Request.Context(), permission.ResourceComment, permission.ActionDelete, comment.Author.ID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.tickets.DeleteComment(c.Request.Context(), commentID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
