// Package common provides shared HTTP handler utilities.
package common

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agencydesk/internal/infrastructure/pubsub"
	"agencydesk/internal/shared/logger"
)

const (
	// SSEKeepaliveInterval is the interval for sending keepalive messages.
	SSEKeepaliveInterval = 30 * time.Second

	SSEContentType = "text/event-stream"
)

// SSEHandlerBase provides the event stream plumbing on top of a hub.
type SSEHandlerBase struct {
	hub       *pubsub.Hub
	keepalive time.Duration
	logger    logger.Interface
}

func NewSSEHandlerBase(hub *pubsub.Hub, log logger.Interface) *SSEHandlerBase {
	return &SSEHandlerBase{
		hub:       hub,
		keepalive: SSEKeepaliveInterval,
		logger:    log,
	}
}

// SetupSSEResponse sets common SSE response headers.
// Note: CORS headers are handled by global CORS middleware.
func (h *SSEHandlerBase) SetupSSEResponse(c *gin.Context) {
	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable Nginx buffering
}

// Open registers a stream for userID. ok is false when the hub is full.
func (h *SSEHandlerBase) Open(userID string) (*pubsub.Conn, bool) {
	return h.hub.Register(uuid.NewString(), userID)
}

// SendInitialConnection sends the initial SSE connection comment.
// Returns true if successful, false if write failed.
func (h *SSEHandlerBase) SendInitialConnection(c *gin.Context) bool {
	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

// RunEventLoop copies hub frames to the response until the client goes away.
func (h *SSEHandlerBase) RunEventLoop(c *gin.Context, conn *pubsub.Conn) {
	defer h.hub.Unregister(conn.ID)

	keepAliveTicker := time.NewTicker(h.keepalive)
	defer keepAliveTicker.Stop()

	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			h.logger.Infow("notification stream closed by client",
				"conn_id", conn.ID,
				"user_id", conn.UserID,
			)
			return

		case data, ok := <-conn.Send:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(data); err != nil {
				h.logger.Warnw("notification stream write error",
					"conn_id", conn.ID,
					"error", err,
				)
				return
			}
			c.Writer.Flush()

		case <-keepAliveTicker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				h.logger.Warnw("notification stream keepalive error",
					"conn_id", conn.ID,
					"error", err,
				)
				return
			}
			c.Writer.Flush()
		}
	}
}

// Close releases a stream that never entered the event loop.
func (h *SSEHandlerBase) Close(conn *pubsub.Conn) {
	h.hub.Unregister(conn.ID)
}
