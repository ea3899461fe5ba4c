// Package notification implements the notification center: a persisted,
// newest-first list of notices with read tracking and optional fan-out to
// external sinks.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"agencydesk/internal/application/store"
	domain "agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
)

// Slot is the persistence slot holding the notification list.
const Slot = "notifications"

// Sink forwards new notifications outside the process. Delivery failures are
// logged and never fail the Add that triggered them.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, n domain.Notification) error
}

type Center struct {
	slots  store.Slots
	sinks  []Sink
	ids    id.Generator
	clock  biztime.Clock
	logger logger.Interface

	mu    sync.RWMutex
	items []domain.Notification
}

type Option func(*Center)

func WithSinks(sinks ...Sink) Option {
	return func(c *Center) { c.sinks = append(c.sinks, sinks...) }
}

func WithIDs(g id.Generator) Option {
	return func(c *Center) { c.ids = g }
}

func WithClock(clock biztime.Clock) Option {
	return func(c *Center) { c.clock = clock }
}

func WithLogger(l logger.Interface) Option {
	return func(c *Center) { c.logger = l }
}

func NewCenter(slots store.Slots, opts ...Option) *Center {
	c := &Center{
		slots:  slots,
		ids:    id.UUID(),
		clock:  biztime.System,
		logger: logger.NewLogger(),
		items:  []domain.Notification{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "notification.center")
	return c
}

// Load reads the persisted list. A missing slot starts an empty list.
func (c *Center) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok, err := c.slots.Load(ctx, Slot)
	if err != nil {
		return fmt.Errorf("load %s: %w", Slot, err)
	}
	if !ok {
		c.items = []domain.Notification{}
		return c.persist(ctx, c.items)
	}

	var items []domain.Notification
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode %s: %w", Slot, err)
	}
	if items == nil {
		items = []domain.Notification{}
	}
	c.items = items
	return nil
}

// Add records an unread notification at the head of the list.
func (c *Center) Add(ctx context.Context, typ domain.Type, title, message, link string) (domain.Notification, error) {
	if !typ.IsValid() {
		return domain.Notification{}, errors.NewValidationError("invalid notification type", string(typ))
	}

	c.mu.Lock()
	newID, err := id.Unique(c.ids, c.exists)
	if err != nil {
		c.mu.Unlock()
		return domain.Notification{}, errors.NewInternalError("failed to allocate id", err.Error())
	}
	n := domain.Notification{
		ID:        newID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: c.clock.Now(),
	}

	next := make([]domain.Notification, 0, len(c.items)+1)
	next = append(next, n)
	next = append(next, c.items...)
	if err := c.persist(ctx, next); err != nil {
		c.mu.Unlock()
		return domain.Notification{}, err
	}
	c.items = next
	c.mu.Unlock()

	c.fanOut(ctx, n)
	return n, nil
}

// Notify adapts Add to store.Notifier.
func (c *Center) Notify(ctx context.Context, d domain.Draft) error {
	_, err := c.Add(ctx, d.Type, d.Title, d.Message, d.Link)
	return err
}

// MarkAsRead flags one notification. Unknown ids are ignored.
func (c *Center) MarkAsRead(ctx context.Context, notificationID string) error {
	return c.rewrite(ctx, func(items []domain.Notification) []domain.Notification {
		for i := range items {
			if items[i].ID == notificationID {
				items[i].Read = true
			}
		}
		return items
	})
}

func (c *Center) MarkAllAsRead(ctx context.Context) error {
	return c.rewrite(ctx, func(items []domain.Notification) []domain.Notification {
		for i := range items {
			items[i].Read = true
		}
		return items
	})
}

// Clear removes one notification. Unknown ids are ignored.
func (c *Center) Clear(ctx context.Context, notificationID string) error {
	return c.rewrite(ctx, func(items []domain.Notification) []domain.Notification {
		kept := items[:0]
		for _, n := range items {
			if n.ID != notificationID {
				kept = append(kept, n)
			}
		}
		return kept
	})
}

// ClearAll empties the list.
func (c *Center) ClearAll(ctx context.Context) error {
	return c.rewrite(ctx, func([]domain.Notification) []domain.Notification {
		return []domain.Notification{}
	})
}

// List returns the notifications newest first.
func (c *Center) List() []domain.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Notification{}, c.items...)
}

// UnreadCount is derived from the list on every call.
func (c *Center) UnreadCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, item := range c.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// rewrite applies edit to a copy of the list and persists the result.
func (c *Center) rewrite(ctx context.Context, edit func([]domain.Notification) []domain.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := edit(append([]domain.Notification{}, c.items...))
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

func (c *Center) persist(ctx context.Context, items []domain.Notification) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.NewInternalError("failed to encode notifications", err.Error())
	}
	if err := c.slots.Save(ctx, Slot, data); err != nil {
		c.logger.Errorw("failed to persist notifications", "error", err)
		return fmt.Errorf("persist %s: %w", Slot, errors.NewInternalError("failed to persist notifications", err.Error()))
	}
	return nil
}

func (c *Center) fanOut(ctx context.Context, n domain.Notification) {
	for _, sink := range c.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			c.logger.Warnw("notification sink failed",
				"sink", sink.Name(),
				"notification_id", n.ID,
				"error", err,
			)
		}
	}
}

func (c *Center) exists(candidate string) bool {
	for _, n := range c.items {
		if n.ID == candidate {
			return true
		}
	}
	return false
}
