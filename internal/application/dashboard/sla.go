package dashboard

import (
	"fmt"
	"time"

	"agencydesk/internal/domain/ticket"
)

type SLAStatus string

const (
	SLACompleted SLAStatus = "completed"
	SLAOverdue   SLAStatus = "overdue"
	SLAActive    SLAStatus = "active"
)

// atRiskShare is the fraction of the limit after which an active ticket is
// flagged.
const atRiskShare = 0.75

type SLA struct {
	ElapsedHours int       `json:"elapsedHours"`
	LimitHours   int       `json:"limitHours"`
	Status       SLAStatus `json:"status"`
	AtRisk       bool      `json:"atRisk"`
	Elapsed      string    `json:"elapsed"`
}

// SLAFor classifies t against its priority budget at now.
func SLAFor(t ticket.Ticket, now time.Time) SLA {
	elapsed := int(now.Sub(t.CreatedAt) / time.Hour)
	if elapsed < 0 {
		elapsed = 0
	}
	limit := t.Priority.SLAHours()

	s := SLA{ElapsedHours: elapsed, LimitHours: limit, Elapsed: FormatElapsed(elapsed)}
	switch {
	case t.Status.IsDone():
		s.Status = SLACompleted
	case elapsed > limit:
		s.Status = SLAOverdue
	default:
		s.Status = SLAActive
		s.AtRisk = float64(elapsed) > float64(limit)*atRiskShare
	}
	return s
}

// FormatElapsed renders hours as "5h", "2d" or "2d 3h".
func FormatElapsed(hours int) string {
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days, rest := hours/24, hours%24
	if rest == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, rest)
}
