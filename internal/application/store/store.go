// Package store keeps one entity collection in memory, mirrors it to a named
// persistence slot on every change and raises a notification per mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"agencydesk/internal/domain/notification"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
	"agencydesk/internal/shared/id"
	"agencydesk/internal/shared/logger"
)

// Slots persists whole collections as opaque blobs keyed by name.
type Slots interface {
	// Load returns the slot content and whether the slot exists.
	Load(ctx context.Context, name string) ([]byte, bool, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Notifier receives one draft per successful mutation.
type Notifier interface {
	Notify(ctx context.Context, d notification.Draft) error
}

// Kind describes how a Store handles one entity type.
type Kind[T any] struct {
	// Slot is the persistence slot name, e.g. "tickets".
	Slot string
	// Noun names the entity in errors and logs, e.g. "ticket".
	Noun string

	ID           func(T) string
	Init         func(item *T, id string, now time.Time)
	UpdatedAt    func(T) time.Time
	SetUpdatedAt func(item *T, at time.Time)
	// CreatedAt and SetCreatedAt let Update restore the creation time after a
	// mutation. Kinds without them rely on their patches alone.
	CreatedAt    func(T) time.Time
	SetCreatedAt func(item *T, at time.Time)
	// Clone deep-copies an item. Nil means a plain value copy is enough.
	Clone func(T) T
	// Seed provides the initial collection when the slot is empty.
	Seed func(now time.Time) []T

	Created func(item T) notification.Draft
	Updated func(before, after T) notification.Draft
	Deleted func(item T) notification.Draft
}

// Store is a persisted collection of T. Mutations run one at a time; the
// in-memory collection only changes after the slot write succeeded.
type Store[T any] struct {
	kind     Kind[T]
	slots    Slots
	notifier Notifier
	ids      id.Generator
	clock    biztime.Clock
	logger   logger.Interface

	mu     sync.RWMutex
	items  []T
	loaded bool
}

type Option[T any] func(*Store[T])

func WithIDs[T any](g id.Generator) Option[T] {
	return func(s *Store[T]) { s.ids = g }
}

func WithClock[T any](c biztime.Clock) Option[T] {
	return func(s *Store[T]) { s.clock = c }
}

func WithLogger[T any](l logger.Interface) Option[T] {
	return func(s *Store[T]) { s.logger = l }
}

// New builds a store for kind. notifier may be nil.
func New[T any](kind Kind[T], slots Slots, notifier Notifier, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		kind:     kind,
		slots:    slots,
		notifier: notifier,
		ids:      id.UUID(),
		clock:    biztime.System,
		logger:   logger.NewLogger(),
		items:    []T{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("store", kind.Slot)
	return s
}

// Load reads the slot. An absent slot is initialized with the kind's seed.
func (s *Store[T]) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.slots.Load(ctx, s.kind.Slot)
	if err != nil {
		s.logger.Errorw("failed to read slot", "error", err)
		return fmt.Errorf("load %s: %w", s.kind.Slot, err)
	}

	if !ok {
		var seeded []T
		if s.kind.Seed != nil {
			seeded = s.kind.Seed(s.clock.Now())
		}
		if seeded == nil {
			seeded = []T{}
		}
		if err := s.persist(ctx, seeded); err != nil {
			return err
		}
		s.items, s.loaded = seeded, true
		s.logger.Infow("slot initialized", "count", len(seeded))
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Errorw("failed to decode slot", "error", err)
		return fmt.Errorf("decode %s: %w", s.kind.Slot, err)
	}
	if items == nil {
		items = []T{}
	}
	s.items, s.loaded = items, true
	s.logger.Debugw("slot loaded", "count", len(items))
	return nil
}

// Loaded reports whether Load has completed successfully.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// List returns a copy of the collection in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	for i, item := range s.items {
		out[i] = s.clone(item)
	}
	return out
}

// Find returns copies of the items matching keep.
func (s *Store[T]) Find(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, item := range s.items {
		if keep(item) {
			out = append(out, s.clone(item))
		}
	}
	return out
}

func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Get(itemID string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(itemID)
	if i < 0 {
		var zero T
		return zero, s.notFound(itemID)
	}
	return s.clone(s.items[i]), nil
}

func (s *Store[T]) Exists(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(itemID) >= 0
}

// Create assigns a fresh id and timestamps to item, appends it and persists.
func (s *Store[T]) Create(ctx context.Context, item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newID, err := id.Unique(s.ids, func(candidate string) bool { return s.indexOf(candidate) >= 0 })
	if err != nil {
		var zero T
		return zero, errors.NewInternalError("failed to allocate id", err.Error())
	}

	created := s.clone(item)
	s.kind.Init(&created, newID, s.clock.Now())

	next := make([]T, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, created)

	if err := s.persist(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	s.items = next

	s.logger.Infow(s.kind.Noun+" created", "id", newID)
	if s.kind.Created != nil {
		s.notify(ctx, s.kind.Created(created))
	}
	return s.clone(created), nil
}

// Update applies mutate to a copy of the item and persists the result. The
// kind's Updated draft is raised on success.
func (s *Store[T]) Update(ctx context.Context, itemID string, mutate func(*T) error) (T, error) {
	return s.UpdateNotify(ctx, itemID, mutate, s.kind.Updated)
}

// UpdateNotify is Update with a caller-chosen notification. A nil draft
// function suppresses the notification.
func (s *Store[T]) UpdateNotify(
	ctx context.Context,
	itemID string,
	mutate func(*T) error,
	draft func(before, after T) notification.Draft,
) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i := s.indexOf(itemID)
	if i < 0 {
		return zero, s.notFound(itemID)
	}

	before := s.items[i]
	after := s.clone(before)
	if err := mutate(&after); err != nil {
		return zero, err
	}
	// identity is not patchable
	if s.kind.ID(after) != itemID {
		return zero, errors.NewValidationError(s.kind.Noun+" id cannot change", itemID)
	}
	if s.kind.CreatedAt != nil && s.kind.SetCreatedAt != nil {
		s.kind.SetCreatedAt(&after, s.kind.CreatedAt(before))
	}
	s.kind.SetUpdatedAt(&after, s.nextUpdatedAt(s.kind.UpdatedAt(before)))

	next := make([]T, len(s.items))
	copy(next, s.items)
	next[i] = after

	if err := s.persist(ctx, next); err != nil {
		return zero, err
	}
	s.items = next

	s.logger.Infow(s.kind.Noun+" updated", "id", itemID)
	if draft != nil {
		s.notify(ctx, draft(before, after))
	}
	return s.clone(after), nil
}

// Delete removes the item and persists the shrunk collection.
func (s *Store[T]) Delete(ctx context.Context, itemID string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i := s.indexOf(itemID)
	if i < 0 {
		return zero, s.notFound(itemID)
	}
	removed := s.items[i]

	next := make([]T, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return zero, err
	}
	s.items = next

	s.logger.Infow(s.kind.Noun+" deleted", "id", itemID)
	if s.kind.Deleted != nil {
		s.notify(ctx, s.kind.Deleted(removed))
	}
	return removed, nil
}

// nextUpdatedAt returns now, or one nanosecond past prev when the clock has
// not moved beyond it.
func (s *Store[T]) nextUpdatedAt(prev time.Time) time.Time {
	now := s.clock.Now()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

func (s *Store[T]) persist(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.NewInternalError("failed to encode "+s.kind.Slot, err.Error())
	}
	if err := s.slots.Save(ctx, s.kind.Slot, data); err != nil {
		s.logger.Errorw("failed to persist slot", "error", err)
		return fmt.Errorf("persist %s: %w", s.kind.Slot, errors.NewInternalError("failed to persist "+s.kind.Slot, err.Error()))
	}
	return nil
}

func (s *Store[T]) notify(ctx context.Context, d notification.Draft) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, d); err != nil {
		s.logger.Warnw("failed to record notification", "title", d.Title, "error", err)
	}
}

func (s *Store[T]) indexOf(itemID string) int {
	for i, item := range s.items {
		if s.kind.ID(item) == itemID {
			return i
		}
	}
	return -1
}

func (s *Store[T]) clone(item T) T {
	if s.kind.Clone != nil {
		return s.kind.Clone(item)
	}
	return item
}

func (s *Store[T]) notFound(itemID string) error {
	return errors.NewNotFoundError(s.kind.Noun+" not found", itemID)
}
