// Package components holds small reusable TUI widgets.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rishabh/certdeck/internal/ui/theme"
)

// ProgressBar displays a horizontal session progress bar.
type ProgressBar struct {
	Label     string
	Current   int
	Total     int
	Width     int
	ShowCount bool
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	countWidth := 0
	count := ""
	if p.ShowCount {
		count = fmt.Sprintf("  %d/%d", p.Current, p.Total)
		countWidth = lipgloss.Width(count)
	}

	barWidth := p.Width - lipgloss.Width(result) - countWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if p.Total > 0 {
		filled = barWidth * p.Current / p.Total
	}
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowCount {
		result += theme.Subtitle.Render(count)
	}

	return result
}
