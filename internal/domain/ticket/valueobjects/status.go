package valueobjects

import "fmt"

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusDone       Status = "done"
)

// Statuses lists the workflow columns in board order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusInReview, StatusDone}

var validStatuses = map[Status]bool{
	StatusNew:        true,
	StatusInProgress: true,
	StatusInReview:   true,
	StatusDone:       true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsDone() bool {
	return s == StatusDone
}

// IsOpen reports whether work on the ticket is still outstanding.
func (s Status) IsOpen() bool {
	return s.IsValid() && s != StatusDone
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}
