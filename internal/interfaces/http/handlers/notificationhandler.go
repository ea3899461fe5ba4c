package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydesk/internal/domain/actor"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/shared/logger"
	"agencydesk/internal/shared/utils"
)

type NotificationHandler struct {
	center notificationCenter
	sse    *common.SSEHandlerBase
	logger logger.Interface
}

// NewNotificationHandler wires the notification endpoints. sse may be nil,
// in which case the stream endpoint answers 503.
func NewNotificationHandler(center notificationCenter, sse *common.SSEHandlerBase, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		center: center,
		sse:    sse,
		logger: logger,
	}
}

// ListNotifications handles GET /notifications, newest first.
// @Summary List notifications
// @Description Newest first.
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	result := h.center.List()
	utils.ListSuccessResponse(c, utils.Paginate(result, utils.ParsePagination(c)), len(result))
}

// GetUnreadCount handles GET /notifications/unread-count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"count": h.center.UnreadCount()})
}

// MarkAsRead handles PATCH /notifications/:id/read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notificationID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.center.MarkAsRead(c.Request.Context(), notificationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllAsRead handles PATCH /notifications/read-all
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.center.MarkAllAsRead(c.Request.Context()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", nil)
}

// ClearNotification handles DELETE /notifications/:id
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) ClearNotification(c *gin.Context) {
	notificationID, ok := common.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.center.Clear(c.Request.Context(), notificationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ClearAll handles DELETE /notifications
// @Summary Delete all notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 204 "No Content"
// @Failure 401 {object} utils.APIResponse
// @Router /notifications [delete]
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	if err := h.center.ClearAll(c.Request.Context()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// Stream handles GET /notifications/stream, a server-sent event stream of
// new notifications.
// @Summary Stream new notifications
// @Description Server-sent events. Each new notification is sent as a notification event; idle connections get keep-alive comments.
// @Tags notifications
// @Produce text/event-stream
// @Security Bearer
// @Param access_token query string false "Bearer token for EventSource clients"
// @Success 200 {string} string "text/event-stream"
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.sse == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "notification stream is disabled")
		return
	}

	a, _ := actor.FromContext(c.Request.Context())
	conn, ok := h.sse.Open(a.ID)
	if !ok {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "too many connections")
		return
	}

	h.sse.SetupSSEResponse(c)
	if !h.sse.SendInitialConnection(c) {
		h.logger.Warnw("notification stream initial write failed", "conn_id", conn.ID)
		h.sse.Close(conn)
		return
	}

	h.logger.Infow("notification stream opened", "conn_id", conn.ID, "user_id", a.ID)
	h.sse.RunEventLoop(c, conn)
}
