// Package id produces record identifiers.
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator yields a fresh identifier on every call.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// UUID returns a generator of random version-4 UUID strings.
func UUID() Generator { return uuidGenerator{} }

func (uuidGenerator) NewID() string { return uuid.NewString() }

// Sequence yields "<prefix>1", "<prefix>2", ... and is meant for tests and
// deterministic fixtures.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%d", s.prefix, s.n.Add(1))
}

// Unique draws from g until taken reports the candidate as free. It gives up
// after a bounded number of attempts.
func Unique(g Generator, taken func(string) bool) (string, error) {
	const attempts = 16
	for i := 0; i < attempts; i++ {
		candidate := g.NewID()
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free identifier after %d attempts", attempts)
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
