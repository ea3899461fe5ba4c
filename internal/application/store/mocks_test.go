package store

import (
	"context"
	"sync"
	"time"

	"agencydesk/internal/domain/notification"
)

type mockSlots struct {
	mu       sync.Mutex
	data     map[string][]byte
	saves    int
	LoadFunc func(ctx context.Context, name string) ([]byte, bool, error)
	SaveFunc func(ctx context.Context, name string, data []byte) error
}

func newMockSlots() *mockSlots {
	return &mockSlots{data: map[string][]byte{}}
}

func (m *mockSlots) Load(ctx context.Context, name string) ([]byte, bool, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[name]
	return d, ok, nil
}

func (m *mockSlots) Save(ctx context.Context, name string, data []byte) error {
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ctx, name, data); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.data[name] = append([]byte(nil), data...)
	return nil
}

type mockNotifier struct {
	drafts     []notification.Draft
	NotifyFunc func(ctx context.Context, d notification.Draft) error
}

func (m *mockNotifier) Notify(ctx context.Context, d notification.Draft) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, d)
	}
	m.drafts = append(m.drafts, d)
	return nil
}

// steppingClock advances by step on every reading.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type widget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func widgetKind(seed ...widget) Kind[widget] {
	return Kind[widget]{
		Slot: "widgets",
		Noun: "widget",
		ID:   func(w widget) string { return w.ID },
		Init: func(w *widget, id string, now time.Time) {
			w.ID, w.CreatedAt, w.UpdatedAt = id, now, now
		},
		UpdatedAt:    func(w widget) time.Time { return w.UpdatedAt },
		SetUpdatedAt: func(w *widget, at time.Time) { w.UpdatedAt = at },
		CreatedAt:    func(w widget) time.Time { return w.CreatedAt },
		SetCreatedAt: func(w *widget, at time.Time) { w.CreatedAt = at },
		Clone: func(w widget) widget {
			w.Tags = append([]string(nil), w.Tags...)
			return w
		},
		Seed: func(time.Time) []widget { return seed },
		Created: func(w widget) notification.Draft {
			return notification.Draft{Type: notification.TypeInfo, Title: "New widget", Message: w.Name}
		},
		Updated: func(before, _ widget) notification.Draft {
			return notification.Draft{Type: notification.TypeSuccess, Title: "Widget updated", Message: before.Name}
		},
		Deleted: func(w widget) notification.Draft {
			return notification.Draft{Type: notification.TypeWarning, Title: "Widget deleted", Message: w.Name}
		},
	}
}
