package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/application/dashboard"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type DashboardHandler struct {
	dashboard dashboardService
	logger    logger.Interface
}

func NewDashboardHandler(dashboard dashboardService, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// GetOverview handles GET /dashboard/overview
// @Summary Get dashboard counters
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.dashboard.Overview())
}

// GetCharts handles GET /dashboard/charts
// @Summary Get dashboard chart series
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /dashboard/charts [get]
func (h *DashboardHandler) GetCharts(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.dashboard.Charts())
}

// GetTeam handles GET /dashboard/team
// @Summary Get team workload
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /dashboard/team [get]
func (h *DashboardHandler) GetTeam(c *gin.Context) {
	result := h.dashboard.Team()
	utils.ListSuccessResponse(c, result, len(result))
}

// GetActivity handles GET /dashboard/activity?limit=
// @Summary Get recent activity
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param limit query int false "Maximum number of entries" default(10)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /dashboard/activity [get]
func (h *DashboardHandler) GetActivity(c *gin.Context) {
	limit := dashboard.DefaultActivityLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid limit", s))
			return
		}
		limit = n
	}

	result := h.dashboard.Recent(limit)
	utils.ListSuccessResponse(c, result, len(result))
}

// GetTicketSLA handles GET /dashboard/tickets/:id/sla
// @Summary Get ticket SLA status
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /dashboard/tickets/{id}/sla [get]
func (h *DashboardHandler) GetTicketSLA(c *gin.Context) {
	ticketID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	result, err := h.dashboard.SLA(ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
