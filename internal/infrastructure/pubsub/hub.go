package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/logger"
)

// connBuffer is the number of events a slow stream may lag behind before it
// starts dropping them.
const connBuffer = 16

// Conn is one open notification stream.
type Conn struct {
	ID     string
	UserID string
	Send   chan []byte
}

// Hub fans new notifications out to the open event streams of this process.
// It is a notification sink.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*Conn
	limit  int
	logger logger.Interface
}

// NewHub returns a hub accepting at most limit concurrent streams; zero means
// no limit.
func NewHub(limit int, log logger.Interface) *Hub {
	return &Hub{
		conns:  make(map[string]*Conn),
		limit:  limit,
		logger: log.With("component", "pubsub.hub"),
	}
}

func (h *Hub) Name() string { return "stream" }

// Register opens a stream. ok is false when the hub is full.
func (h *Hub) Register(connID, userID string) (conn *Conn, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.limit > 0 && len(h.conns) >= h.limit {
		return nil, false
	}
	conn = &Conn{ID: connID, UserID: userID, Send: make(chan []byte, connBuffer)}
	h.conns[connID] = conn
	h.logger.Debugw("stream registered", "conn_id", connID, "user_id", userID)
	return conn, true
}

func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.conns[connID]; ok {
		close(conn.Send)
		delete(h.conns, connID)
	}
}

// Close ends every open stream. Frames already queued are still written.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.conns {
		close(conn.Send)
		delete(h.conns, id)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Deliver writes n as a server-sent event to every open stream. Streams whose
// buffer is full miss the event.
func (h *Hub) Deliver(_ context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	frame := []byte(fmt.Sprintf("event: notification\nid: %s\ndata: %s\n\n", n.ID, data))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.conns {
		select {
		case conn.Send <- frame:
		default:
			h.logger.Warnw("stream buffer full, dropping notification",
				"conn_id", conn.ID,
				"notification_id", n.ID,
			)
		}
	}
	return nil
}
