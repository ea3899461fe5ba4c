package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
)

type memSlots struct {
	data     map[string][]byte
	SaveFunc func(name string) error
}

func (m *memSlots) Load(_ context.Context, name string) ([]byte, bool, error) {
	d, ok := m.data[name]
	return d, ok, nil
}

func (m *memSlots) Save(_ context.Context, name string, data []byte) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(name); err != nil {
			return err
		}
	}
	m.data[name] = data
	return nil
}

type mockSink struct {
	delivered   []domain.Notification
	DeliverFunc func(n domain.Notification) error
}

func (m *mockSink) Name() string { return "mock" }

func (m *mockSink) Deliver(_ context.Context, n domain.Notification) error {
	if m.DeliverFunc != nil {
		return m.DeliverFunc(n)
	}
	m.delivered = append(m.delivered, n)
	return nil
}

func newTestCenter(t *testing.T, slots *memSlots, sinks ...Sink) *Center {
	t.Helper()
	c := NewCenter(slots,
		WithIDs(id.NewSequence("n")),
		WithClock(biztime.Fixed(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))),
		WithLogger(logger.Nop()),
		WithSinks(sinks...),
	)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestAdd_PrependsUnread(t *testing.T) {
	slots := &memSlots{data: map[string][]byte{}}
	c := newTestCenter(t, slots)
	ctx := context.Background()

	_, err := c.Add(ctx, domain.TypeInfo, "New ticket created", "Ticket \"Banner\" has been created", "/tickets/t1")
	require.NoError(t, err)
	second, err := c.Add(ctx, domain.TypeWarning, "Ticket deleted", "Ticket \"Banner\" has been deleted", "")
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.False(t, list[0].Read)
	assert.Equal(t, 2, c.UnreadCount())

	var persisted []domain.Notification
	require.NoError(t, json.Unmarshal(slots.data[Slot], &persisted))
	assert.Equal(t, list, persisted)
}

func TestAdd_RejectsUnknownType(t *testing.T) {
	c := newTestCenter(t, &memSlots{data: map[string][]byte{}})
	_, err := c.Add(context.Background(), domain.Type("alert"), "x", "y", "")
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, c.List())
}

func TestReadTracking(t *testing.T) {
	c := newTestCenter(t, &memSlots{data: map[string][]byte{}})
	ctx := context.Background()

	a, _ := c.Add(ctx, domain.TypeInfo, "a", "a", "")
	_, _ = c.Add(ctx, domain.TypeInfo, "b", "b", "")
	_, _ = c.Add(ctx, domain.TypeInfo, "c", "c", "")

	require.NoError(t, c.MarkAsRead(ctx, a.ID))
	assert.Equal(t, 2, c.UnreadCount())

	require.NoError(t, c.MarkAsRead(ctx, "missing"))
	assert.Equal(t, 2, c.UnreadCount())

	require.NoError(t, c.MarkAllAsRead(ctx))
	assert.Equal(t, 0, c.UnreadCount())
}

func TestClear(t *testing.T) {
	c := newTestCenter(t, &memSlots{data: map[string][]byte{}})
	ctx := context.Background()

	a, _ := c.Add(ctx, domain.TypeInfo, "a", "a", "")
	b, _ := c.Add(ctx, domain.TypeInfo, "b", "b", "")

	require.NoError(t, c.Clear(ctx, "missing"))
	assert.Len(t, c.List(), 2)

	require.NoError(t, c.Clear(ctx, a.ID))
	require.Len(t, c.List(), 1)
	assert.Equal(t, b.ID, c.List()[0].ID)

	require.NoError(t, c.ClearAll(ctx))
	assert.Empty(t, c.List())
	assert.Equal(t, 0, c.UnreadCount())
}

func TestLoad_RestoresPersistedList(t *testing.T) {
	slots := &memSlots{data: map[string][]byte{}}
	c := newTestCenter(t, slots)
	ctx := context.Background()
	_, _ = c.Add(ctx, domain.TypeBrand, "New brand added", "Brand \"Shell\" has been added", "/settings")
	_, _ = c.Add(ctx, domain.TypeUser, "User updated", "User \"admin\" has been updated", "/settings")
	require.NoError(t, c.MarkAllAsRead(ctx))

	reloaded := newTestCenter(t, slots)
	assert.Equal(t, c.List(), reloaded.List())
	assert.Equal(t, 0, reloaded.UnreadCount())
}

func TestPersistFailure(t *testing.T) {
	slots := &memSlots{data: map[string][]byte{}}
	c := newTestCenter(t, slots)
	ctx := context.Background()
	a, _ := c.Add(ctx, domain.TypeInfo, "a", "a", "")

	slots.SaveFunc = func(string) error { return fmt.Errorf("storage full") }

	_, err := c.Add(ctx, domain.TypeInfo, "b", "b", "")
	assert.Error(t, err)
	assert.Error(t, c.MarkAsRead(ctx, a.ID))

	require.Len(t, c.List(), 1)
	assert.Equal(t, 1, c.UnreadCount())
}

func TestSinks(t *testing.T) {
	ok := &mockSink{}
	failing := &mockSink{DeliverFunc: func(domain.Notification) error { return fmt.Errorf("broker down") }}
	c := newTestCenter(t, &memSlots{data: map[string][]byte{}}, failing, ok)

	err := c.Notify(context.Background(), domain.Draft{Type: domain.TypeSuccess, Title: "Ticket updated"})
	require.NoError(t, err)

	require.Len(t, ok.delivered, 1)
	assert.Equal(t, "Ticket updated", ok.delivered[0].Title)
	assert.Len(t, c.List(), 1)
}
