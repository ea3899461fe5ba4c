package dashboard

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"agencydesk/internal/domain/ticket"
	vo "agencydesk/internal/domain/ticket/valueobjects"
)

// Bucket is one bar or slice of a chart.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartSpec describes how tickets are grouped for one chart. Keys fixes the
// bucket order; OmitZero drops empty buckets.
type ChartSpec struct {
	Name     string
	Keys     []string
	KeyOf    func(ticket.Ticket) string
	OmitZero bool
}

var (
	StatusChart = ChartSpec{
		Name:     "status",
		Keys:     keys(vo.Statuses),
		KeyOf:    func(t ticket.Ticket) string { return string(t.Status) },
		OmitZero: true,
	}
	PriorityChart = ChartSpec{
		Name:     "priority",
		Keys:     keys(vo.Priorities),
		KeyOf:    func(t ticket.Ticket) string { return string(t.Priority) },
		OmitZero: false,
	}
	CategoryChart = ChartSpec{
		Name:     "category",
		Keys:     keys(vo.Categories),
		KeyOf:    func(t ticket.Ticket) string { return string(t.Category) },
		OmitZero: true,
	}
)

func keys[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Histogram counts tickets per key of spec.
func Histogram(spec ChartSpec, tickets []ticket.Ticket) []Bucket {
	counts := make(map[string]int, len(spec.Keys))
	for _, t := range tickets {
		counts[spec.KeyOf(t)]++
	}

	out := make([]Bucket, 0, len(spec.Keys))
	for _, k := range spec.Keys {
		n := counts[k]
		if n == 0 && spec.OmitZero {
			continue
		}
		out = append(out, Bucket{Key: k, Label: Label(k), Count: n})
	}
	return out
}

var acronyms = map[string]string{"seo": "SEO", "pr": "PR", "ab": "A/B", "kpi": "KPI", "roi": "ROI"}

// Label turns an enum key such as "pr_outreach" into "PR Outreach".
func Label(key string) string {
	caser := cases.Title(language.English)
	words := strings.Split(key, "_")
	for i, w := range words {
		if a, ok := acronyms[w]; ok {
			words[i] = a
			continue
		}
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
