// Package storetest provides in-memory collaborators for store-backed tests.
package storetest

import (
	"context"
	"sync"

	"agencydesk/internal/domain/notification"
)

// Slots is a map-backed store.Slots. SaveErr, when set, fails every save.
type Slots struct {
	mu      sync.Mutex
	data    map[string][]byte
	SaveErr error
}

func NewSlots() *Slots {
	return &Slots{data: map[string][]byte{}}
}

func (s *Slots) Load(_ context.Context, name string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[name]
	return d, ok, nil
}

func (s *Slots) Save(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data[name] = append([]byte(nil), data...)
	return nil
}

// Raw returns the bytes last saved under name.
func (s *Slots) Raw(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[name])
}

// Notifier records every draft it receives.
type Notifier struct {
	mu     sync.Mutex
	Drafts []notification.Draft
}

func (n *Notifier) Notify(_ context.Context, d notification.Draft) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Drafts = append(n.Drafts, d)
	return nil
}

// Last returns the most recent draft, or the zero draft.
func (n *Notifier) Last() notification.Draft {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Drafts) == 0 {
		return notification.Draft{}
	}
	return n.Drafts[len(n.Drafts)-1]
}

func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Drafts)
}
