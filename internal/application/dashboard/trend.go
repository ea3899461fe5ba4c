// Package dashboard computes the console's derived metrics: period trends,
// SLA status, histograms and team figures. Everything here is recomputed
// from a snapshot on every call.
package dashboard

import (
	"math"
	"time"

	"agencydesk/internal/domain/ticket"
)

// Trend is the percentage change from previous to current. A zero previous
// count yields 100 when anything appeared and 0 otherwise.
func Trend(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Polarity states whether a metric improves when it grows or when it shrinks.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

// Direction maps a trend to the arrow shown next to the metric. A flat trend
// points the favorable way.
func (p Polarity) Direction(trend int) Direction {
	if p == LowerIsBetter {
		if trend <= 0 {
			return DirectionDown
		}
		return DirectionUp
	}
	if trend >= 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Favorable reports whether trend is an improvement for this polarity.
func (p Polarity) Favorable(trend int) bool {
	if p == LowerIsBetter {
		return trend <= 0
	}
	return trend >= 0
}

// Stat is one overview card.
type Stat struct {
	Current   int       `json:"current"`
	Previous  int       `json:"previous"`
	Trend     int       `json:"trend"`
	Direction Direction `json:"direction"`
	Favorable bool      `json:"favorable"`
}

func NewStat(current, previous int, p Polarity) Stat {
	trend := Trend(current, previous)
	return Stat{
		Current:   current,
		Previous:  previous,
		Trend:     trend,
		Direction: p.Direction(trend),
		Favorable: p.Favorable(trend),
	}
}

// Resolution summarises time-to-done in whole days.
type Resolution struct {
	CurrentDays  int       `json:"currentDays"`
	PreviousDays int       `json:"previousDays"`
	Trend        int       `json:"trend"`
	Direction    Direction `json:"direction"`
	Favorable    bool      `json:"favorable"`
}

// ResolutionTrend compares the average resolution time of done tickets in
// the two periods. A positive trend means tickets closed faster.
func ResolutionTrend(current, previous []ticket.Ticket) Resolution {
	cur, prev := averageDays(current), averageDays(previous)
	trend := int(math.Round(prev - cur))
	return Resolution{
		CurrentDays:  int(math.Round(cur)),
		PreviousDays: int(math.Round(prev)),
		Trend:        trend,
		Direction:    HigherIsBetter.Direction(trend),
		Favorable:    HigherIsBetter.Favorable(trend),
	}
}

func averageDays(tickets []ticket.Ticket) float64 {
	var total float64
	n := 0
	for _, t := range tickets {
		if !t.Status.IsDone() {
			continue
		}
		total += t.UpdatedAt.Sub(t.CreatedAt).Hours() / 24
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Window is the half-open interval (From, To].
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Contains(t time.Time) bool {
	return t.After(w.From) && !t.After(w.To)
}

const period = 7 * 24 * time.Hour

// SplitPeriods returns the last seven days and the seven days before them.
// A record created exactly seven days ago belongs to the previous window.
func SplitPeriods(now time.Time) (current, previous Window) {
	current = Window{From: now.Add(-period), To: now}
	previous = Window{From: now.Add(-2 * period), To: now.Add(-period)}
	return current, previous
}

// Partition splits tickets by creation time into the two windows. Tickets
// outside both are dropped.
func Partition(tickets []ticket.Ticket, now time.Time) (current, previous []ticket.Ticket) {
	cw, pw := SplitPeriods(now)
	for _, t := range tickets {
		switch {
		case cw.Contains(t.CreatedAt):
			current = append(current, t)
		case pw.Contains(t.CreatedAt):
			previous = append(previous, t)
		}
	}
	return current, previous
}
