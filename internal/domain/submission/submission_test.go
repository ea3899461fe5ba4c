package submission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmission_IsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		sub  Submission
		want bool
	}{
		{"no deadline", Submission{Status: StatusPending}, false},
		{"future deadline", Submission{Status: StatusPending, Deadline: &future}, false},
		{"past deadline pending", Submission{Status: StatusInReview, Deadline: &past}, true},
		{"past deadline approved", Submission{Status: StatusApproved, Deadline: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsOverdue(now))
		})
	}
}

func TestSubmission_Clone(t *testing.T) {
	d := time.Now()
	s := Submission{Deadline: &d, Links: []Link{{ID: "l1", Title: "Drive"}}}

	c := s.Clone()
	c.Links[0].Title = "Dropbox"
	*c.Deadline = d.Add(time.Hour)

	assert.Equal(t, "Drive", s.Links[0].Title)
	assert.Equal(t, d, *s.Deadline)
}

func TestPatch_Apply(t *testing.T) {
	s := Submission{Title: "Q2 report", DocumentType: DocumentReport}
	deck := DocumentPresentation

	Patch{DocumentType: &deck}.Apply(&s)

	assert.Equal(t, "Q2 report", s.Title)
	assert.Equal(t, DocumentPresentation, s.DocumentType)
}
