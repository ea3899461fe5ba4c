package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from least to most pressing.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var slaHours = map[Priority]int{
	PriorityUrgent: 24,
	PriorityHigh:   48,
	PriorityMedium: 72,
	PriorityLow:    96,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	_, ok := slaHours[p]
	return ok
}

// SLAHours is the resolution window for the priority, in hours.
func (p Priority) SLAHours() int {
	if h, ok := slaHours[p]; ok {
		return h
	}
	return slaHours[PriorityLow]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
