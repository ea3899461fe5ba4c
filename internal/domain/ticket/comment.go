package ticket

import "time"

// Author identifies who wrote a comment or feedback entry.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Comment struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}
