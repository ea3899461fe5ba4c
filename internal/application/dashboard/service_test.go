package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydesk/internal/domain/ticket"
	vo "agencydesk/internal/domain/ticket/valueobjects"
	"agencydesk/internal/domain/user"
	"agencydesk/internal/shared/biztime"
	"agencydesk/internal/shared/errors"
)

type fakeTickets struct {
	tickets  []ticket.Ticket
	comments []ticket.Comment
}

func (f *fakeTickets) List(filter ticket.Filter) []ticket.Ticket {
	var out []ticket.Ticket
	for _, t := range f.tickets {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeTickets) Get(ticketID string) (ticket.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == ticketID {
			return t, nil
		}
	}
	return ticket.Ticket{}, errors.NewNotFoundError("ticket not found", ticketID)
}

func (f *fakeTickets) AllComments() []ticket.Comment { return f.comments }

type fakeUsers []user.User

func (f fakeUsers) List() []user.User { return f }

func TestOverview(t *testing.T) {
	day := 24 * time.Hour
	src := &fakeTickets{tickets: []ticket.Ticket{
		tk("1", vo.StatusNew, vo.PriorityLow, vo.CategorySEO, day),
		tk("2", vo.StatusNew, vo.PriorityLow, vo.CategorySEO, 2*day),
		tk("3", vo.StatusDone, vo.PriorityLow, vo.CategorySEO, 3*day),
		tk("4", vo.StatusNew, vo.PriorityLow, vo.CategorySEO, 8*day),
		tk("5", vo.StatusNew, vo.PriorityLow, vo.CategorySEO, 9*day),
		tk("6", vo.StatusNew, vo.PriorityLow, vo.CategorySEO, 10*day),
	}}
	svc := NewService(src, fakeUsers{}, biztime.Fixed(now))

	o := svc.Overview()

	assert.Equal(t, Stat{Current: 3, Previous: 3, Trend: 0, Direction: DirectionUp, Favorable: true}, o.Total)
	assert.Equal(t, Stat{Current: 2, Previous: 3, Trend: -33, Direction: DirectionDown, Favorable: true}, o.Open)
	assert.Equal(t, Stat{Current: 1, Previous: 0, Trend: 100, Direction: DirectionUp, Favorable: true}, o.Completed)
}

func TestCharts_WholeCollection(t *testing.T) {
	src := &fakeTickets{tickets: []ticket.Ticket{
		tk("1", vo.StatusNew, vo.PriorityUrgent, vo.CategoryEmailMarketing, time.Hour),
		tk("2", vo.StatusInProgress, vo.PriorityUrgent, vo.CategoryEmailMarketing, 60*24*time.Hour),
	}}
	svc := NewService(src, fakeUsers{}, biztime.Fixed(now))

	charts := svc.Charts()
	assert.Len(t, charts.Status, 2)
	assert.Len(t, charts.Priority, 4)
	require.Len(t, charts.Category, 1)
	assert.Equal(t, 2, charts.Category[0].Count)
}

func TestRecent_DefaultsToFive(t *testing.T) {
	src := &fakeTickets{}
	for i := 0; i < 8; i++ {
		src.tickets = append(src.tickets, tk(string(rune('a'+i)), vo.StatusNew, vo.PriorityLow, vo.CategorySEO, time.Duration(i)*time.Hour))
	}
	svc := NewService(src, fakeUsers{}, biztime.Fixed(now))

	feed := svc.Recent(0)
	require.Len(t, feed, 5)
	assert.Equal(t, "a", feed[0].ID)
}

func TestSLA(t *testing.T) {
	src := &fakeTickets{tickets: []ticket.Ticket{tk("1", vo.StatusNew, vo.PriorityUrgent, vo.CategorySEO, 30*time.Hour)}}
	svc := NewService(src, fakeUsers{{ID: "1", Username: "admin"}}, biztime.Fixed(now))

	sla, err := svc.SLA("1")
	require.NoError(t, err)
	assert.Equal(t, SLAOverdue, sla.Status)
	assert.Equal(t, "1d 6h", sla.Elapsed)

	_, err = svc.SLA("missing")
	assert.True(t, errors.IsNotFoundError(err))

	require.Len(t, svc.Team(), 1)
}
