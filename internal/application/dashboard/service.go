package dashboard

import (
	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/biztime"
)

// DefaultActivityLimit is the length of the recent activity feed.
const DefaultActivityLimit = 5

// TicketSource is the read side of the ticket service.
type TicketSource interface {
	List(filter ticket.Filter) []ticket.Ticket
	Get(ticketID string) (ticket.Ticket, error)
	AllComments() []ticket.Comment
}

// UserSource is the read side of the user service.
type UserSource interface {
	List() []user.User
}

// Overview holds the four stat cards.
type Overview struct {
	Total      Stat       `json:"total"`
	Open       Stat       `json:"open"`
	Completed  Stat       `json:"completed"`
	Resolution Resolution `json:"resolution"`
}

type Charts struct {
	Status   []Bucket `json:"status"`
	Priority []Bucket `json:"priority"`
	Category []Bucket `json:"category"`
}

type Service struct {
	tickets TicketSource
	users   UserSource
	clock   biztime.Clock
}

func NewService(tickets TicketSource, users UserSource, clock biztime.Clock) *Service {
	if clock == nil {
		clock = biztime.System
	}
	return &Service{tickets: tickets, users: users, clock: clock}
}

// Overview compares the last seven days with the seven before.
func (s *Service) Overview() Overview {
	cur, prev := Partition(s.tickets.List(ticket.Filter{}), s.clock.Now())
	return Overview{
		Total:      NewStat(len(cur), len(prev), HigherIsBetter),
		Open:       NewStat(countWhere(cur, isOpen), countWhere(prev, isOpen), LowerIsBetter),
		Completed:  NewStat(countWhere(cur, isDone), countWhere(prev, isDone), HigherIsBetter),
		Resolution: ResolutionTrend(cur, prev),
	}
}

// Charts groups the whole collection, not just the current period.
func (s *Service) Charts() Charts {
	all := s.tickets.List(ticket.Filter{})
	return Charts{
		Status:   Histogram(StatusChart, all),
		Priority: Histogram(PriorityChart, all),
		Category: Histogram(CategoryChart, all),
	}
}

func (s *Service) Team() []Performance {
	return TeamPerformance(s.users.List(), s.tickets.List(ticket.Filter{}))
}

func (s *Service) Recent(limit int) []Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return RecentActivity(s.tickets.List(ticket.Filter{}), s.tickets.AllComments(), limit)
}

// SLA evaluates one ticket at the current instant.
func (s *Service) SLA(ticketID string) (SLA, error) {
	t, err := s.tickets.Get(ticketID)
	if err != nil {
		return SLA{}, err
	}
	return SLAFor(t, s.clock.Now()), nil
}

func isOpen(t ticket.Ticket) bool { return !t.Status.IsDone() }
func isDone(t ticket.Ticket) bool { return t.Status.IsDone() }

func countWhere(tickets []ticket.Ticket, keep func(ticket.Ticket) bool) int {
	n := 0
	for _, t := range tickets {
		if keep(t) {
			n++
		}
	}
	return n
}
