package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			input:    "needs **final** review",
			contains: []string{"<strong>final</strong>"},
		},
		{
			name:     "script removed",
			input:    "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			excludes: []string{"<script>"},
		},
		{
			name:     "links are linkified",
			input:    "see https://www.upopp.net",
			contains: []string{`href="https://www.upopp.net"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.ToHTML(tt.input)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderer_Clean(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "ship it", r.Clean("  <b>ship</b> it<script>x</script> "))
}
