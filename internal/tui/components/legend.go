package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/tui/themes"
	"github.com/Veraticus/drivetrain/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// LegendView renders the colour key of the visible bands.
type LegendView struct {
	theme themes.Theme
	width int
}

// NewLegendView creates a legend.
func NewLegendView(theme themes.Theme) LegendView {
	return LegendView{theme: theme}
}

// Resize sets the available width.
func (l *LegendView) Resize(width int) {
	l.width = width
}

// View renders entries, wrapping onto as many lines as needed.
func (l LegendView) View(entries []viewmodel.LegendEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string
	var line string
	for _, e := range entries {
		item := l.renderEntry(e)
		if line != "" && l.width > 0 && lipgloss.Width(line)+2+lipgloss.Width(item) > l.width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += "  "
		}
		line += item
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}

func (l LegendView) renderEntry(e viewmodel.LegendEntry) string {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("■")
	text := fmt.Sprintf("%s %s", e.Key, chart.FormatTick(float64(e.Total), 1))

	switch {
	case e.Focused:
		text = l.theme.Focused.Render(text)
	case e.Clickable:
		text = l.theme.Normal.Render(text)
	default:
		text = lipgloss.NewStyle().Foreground(l.theme.Muted).Render(text)
	}
	return swatch + " " + text
}
