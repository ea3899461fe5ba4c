package stats

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"agencydesk/internal/application/dashboard"
)

// maxBar is the width of the longest histogram bar.
const maxBar = 30

var (
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	favorableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	adverseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Report is everything the stats command prints.
type Report struct {
	Overview dashboard.Overview      `json:"overview"`
	Charts   dashboard.Charts        `json:"charts"`
	Team     []dashboard.Performance `json:"team"`
}

// Render writes r as tables and bar charts.
func Render(w io.Writer, r Report) error {
	fmt.Fprintln(w, headingStyle.Render("Overview"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tCURRENT\tPREVIOUS\tTREND")
	writeStat(tw, "Total tickets", r.Overview.Total)
	writeStat(tw, "Open tickets", r.Overview.Open)
	writeStat(tw, "Completed", r.Overview.Completed)
	res := r.Overview.Resolution
	fmt.Fprintf(tw, "Avg resolution (days)\t%d\t%d\t%s\n",
		res.CurrentDays, res.PreviousDays, trend(res.Trend, res.Direction, res.Favorable))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, chart := range []struct {
		title   string
		buckets []dashboard.Bucket
	}{
		{"Tickets by status", r.Charts.Status},
		{"Tickets by priority", r.Charts.Priority},
		{"Tickets by category", r.Charts.Category},
	} {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render(chart.title))
		if err := writeHistogram(w, chart.buckets); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Team"))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tASSIGNED\tCOMPLETED\tRATE")
	for _, p := range r.Team {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", p.Username, p.Assigned, p.Completed, p.Percent)
	}
	return tw.Flush()
}

func writeStat(w io.Writer, name string, s dashboard.Stat) {
	fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, s.Current, s.Previous, trend(s.Trend, s.Direction, s.Favorable))
}

func trend(pct int, dir dashboard.Direction, favorable bool) string {
	if pct == 0 {
		return "-"
	}
	arrow := "↑"
	if dir == dashboard.DirectionDown {
		arrow = "↓"
	}
	style := adverseStyle
	if favorable {
		style = favorableStyle
	}
	return style.Render(fmt.Sprintf("%s %d%%", arrow, pct))
}

func writeHistogram(w io.Writer, buckets []dashboard.Bucket) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "  (no tickets)")
		return err
	}

	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, b := range buckets {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", b.Label, b.Count, barStyle.Render(bar(b.Count, peak)))
	}
	return tw.Flush()
}

// bar scales count against peak; any non-zero count gets at least one cell.
func bar(count, peak int) string {
	if count == 0 || peak == 0 {
		return ""
	}
	return strings.Repeat("█", max(1, count*maxBar/peak))
}
