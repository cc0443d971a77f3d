package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/store"
)

var kindLabels = map[string]string{
	"work":        "Work",
	"short_break": "Short breaks",
	"long_break":  "Long break",
}

func kindLabel(kind string) string {
	if l, ok := kindLabels[kind]; ok {
		return l
	}
	return kind
}

// Summary renders the end-of-run panel: minutes per stage kind as a bar
// chart with a table underneath.
func (t Theme) Summary(rows []store.KindSummary, width int) string {
	title := t.Title.Render("Run summary")
	if len(rows) == 0 {
		return t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", t.Muted.Render("  No stages ran")))
	}

	chartWidth := width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, r := range rows {
		style := t.Work
		if r.Kind != "work" {
			style = t.Break
		}
		bars = append(bars, barchart.BarData{
			Label: kindLabel(r.Kind),
			Values: []barchart.BarValue{{
				Name:  r.Kind,
				Value: float64(r.ElapsedSeconds) / 60.0,
				Style: style,
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	return t.Panel.Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", chart.View(), "", t.summaryTable(rows)),
	)
}

func (t Theme) summaryTable(rows []store.KindSummary) string {
	lines := []string{
		t.Muted.Render(fmt.Sprintf("  %-14s %5s %8s %8s %9s", "Stage", "Done", "Skipped", "Stopped", "Time")),
		t.Muted.Render("  " + strings.Repeat("─", 48)),
	}
	var total int64
	for _, r := range rows {
		total += r.ElapsedSeconds
		lines = append(lines, fmt.Sprintf("  %-14s %5d %8d %8d %9s",
			kindLabel(r.Kind), r.Completed, r.Skipped, r.Stopped, FormatRemaining(int(r.ElapsedSeconds)),
		))
	}
	lines = append(lines, t.Highlight.Render(fmt.Sprintf("  %-14s %34s", "Total", FormatRemaining(int(total)))))
	return strings.Join(lines, "\n")
}
