package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/upskill/internal/dashboard"
	"github.com/abhisek/upskill/internal/ui/theme"
)

const titleFull = `┬ ┬┌─┐┌─┐┬┌─┬┬  ┬
│ │├─┘└─┐├┴┐││  │
└─┘┴  └─┘┴ ┴┴┴─┘┴─┘`

const titleCompact = "u · p · s · k · i · l · l"

// contentWidth is the shared inner width so all boxes line up.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art))
}

func renderGreeting(name string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Welcome back, %s", name))
}

func renderStatsBar(sum *dashboard.Summary, cw int) string {
	if sum == nil {
		return ""
	}
	num := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := []string{
		num.Render(fmt.Sprintf("%d", sum.EnrolledCourses)) + dim.Render(" courses"),
		num.Render(fmt.Sprintf("%d%%", sum.AverageProgress)) + dim.Render(" avg progress"),
		num.Render(fmt.Sprintf("%d", len(sum.Certificates))) + dim.Render(" certificates"),
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(parts, dim.Render("  │  ")))
}

func renderMenuBox(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Render(menu)
}
