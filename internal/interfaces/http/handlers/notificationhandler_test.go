package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/domain/notification"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/infrastructure/pubsub"
	"agencydesk/internal/interfaces/http/handlers/common"
	"agencydesk/internal/interfaces/http/handlers/testutil"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/logger"
)

func TestNotificationHandler_ListNotifications(t *testing.T) {
	center := &mockNotificationCenter{
		items: []notification.Notification{{ID: "3"}, {ID: "2"}, {ID: "1"}},
	}
	h := NewNotificationHandler(center, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "1", "page_size": "2"})

	h.ListNotifications(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list struct {
		Items []notification.Notification `json:"items"`
		Total int                         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "3", list.Items[0].ID)
}

func TestNotificationHandler_GetUnreadCount(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationCenter{unread: 4}, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/unread-count", nil)

	h.GetUnreadCount(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.JSONEq(t, `{"count":4}`, string(resp.Data))
}

func TestNotificationHandler_MarkAsRead(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "marked", wantStatus: http.StatusOK},
		{name: "unknown id", err: errors.NewNotFoundError("notification not found"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			center := &mockNotificationCenter{
				markAsReadFn: func(_ context.Context, id string) error {
					got = id
					return tt.err
				},
			}
			h := NewNotificationHandler(center, nil, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPatch, "/notifications/n1/read", nil)
			testutil.SetURLParam(c, "id", "n1")

			h.MarkAsRead(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "n1", got)
		})
	}
}

func TestNotificationHandler_ClearAll(t *testing.T) {
	cleared := false
	center := &mockNotificationCenter{
		clearAllFn: func(context.Context) error {
			cleared = true
			return nil
		},
	}
	h := NewNotificationHandler(center, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodDelete, "/notifications", nil)

	h.ClearAll(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, cleared)
}

func TestNotificationHandler_Stream(t *testing.T) {
	hub := pubsub.NewHub(0, logger.Nop())
	h := NewNotificationHandler(&mockNotificationCenter{}, common.NewSSEHandlerBase(hub, logger.Nop()), testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/stream", nil)
	testutil.SetAuthContext(c, "1", user.RoleUser)

	done := make(chan struct{})
	go func() {
		h.Stream(c)
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hub.Deliver(context.Background(), notification.Notification{ID: "n9", Title: "Brand updated"}))
	hub.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end")
	}

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, ": connected\n\n"))
	assert.Contains(t, body, "event: notification\nid: n9\n")
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
}

func TestNotificationHandler_Stream_Disabled(t *testing.T) {
	h := NewNotificationHandler(&mockNotificationCenter{}, nil, testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/stream", nil)

	h.Stream(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNotificationHandler_Stream_Full(t *testing.T) {
	hub := pubsub.NewHub(1, logger.Nop())
	_, ok := hub.Register("other", "2")
	require.True(t, ok)
	h := NewNotificationHandler(&mockNotificationCenter{}, common.NewSSEHandlerBase(hub, logger.Nop()), testutil.NewMockLogger())
	c, w := testutil.NewTestContext(http.MethodGet, "/notifications/stream", nil)

	h.Stream(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
