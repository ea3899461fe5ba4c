package dashboard

import (
	"math"
	"sort"
	"time"

	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/domain/user"
)

type Performance struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Assigned  int    `json:"assigned"`
	Completed int    `json:"completed"`
	Percent   int    `json:"percent"`
}

// TeamPerformance reports, per user, the share of assigned tickets that are
// done. Users without assignments score 0.
func TeamPerformance(users []user.User, tickets []ticket.Ticket) []Performance {
	out := make([]Performance, 0, len(users))
	for _, u := range users {
		p := Performance{UserID: u.ID, Username: u.Username}
		for _, t := range tickets {
			if !t.IsAssignedTo(u.ID) {
				continue
			}
			p.Assigned++
			if t.Status.IsDone() {
				p.Completed++
			}
		}
		if p.Assigned > 0 {
			p.Percent = int(math.Round(float64(p.Completed) / float64(p.Assigned) * 100))
		}
		out = append(out, p)
	}
	return out
}

type ActivityKind string

const (
	ActivityTicket  ActivityKind = "ticket"
	ActivityComment ActivityKind = "comment"
)

// Activity is one row of the recent activity feed.
type Activity struct {
	Kind     ActivityKind `json:"kind"`
	ID       string       `json:"id"`
	TicketID string       `json:"ticketId"`
	Title    string       `json:"title,omitempty"`
	Status   string       `json:"status,omitempty"`
	Content  string       `json:"content,omitempty"`
	Author   string       `json:"author,omitempty"`
	At       time.Time    `json:"at"`
}

// RecentActivity merges ticket creations and comments, newest first, and keeps
// the first limit entries.
func RecentActivity(tickets []ticket.Ticket, comments []ticket.Comment, limit int) []Activity {
	feed := make([]Activity, 0, len(tickets)+len(comments))
	for _, t := range tickets {
		feed = append(feed, Activity{
			Kind:     ActivityTicket,
			ID:       t.ID,
			TicketID: t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			At:       t.CreatedAt,
		})
	}
	for _, c := range comments {
		feed = append(feed, Activity{
			Kind:     ActivityComment,
			ID:       c.ID,
			TicketID: c.TicketID,
			Content:  c.Content,
			Author:   c.Author.Username,
			At:       c.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool { return feed[i].At.After(feed[j].At) })
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}
