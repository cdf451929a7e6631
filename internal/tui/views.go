package tui

import (
	"strings"

	"github.com/Veraticus/drivetrain/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const (
	titleRows  = 1
	legendRows = 2
	statusRows = 1
)

// chartTop is the screen row of the chart block's first line.
func (m Model) chartTop() int {
	return titleRows
}

// chartHeight is what remains of the screen for the chart block.
func (m Model) chartHeight() int {
	h := m.height - titleRows - statusRows
	if m.config.ShowLegend {
		h -= legendRows
	}
	if m.config.ShowHelp {
		h -= m.helpRows()
	}
	return max(h, 3)
}

func (m Model) helpRows() int {
	if !m.help.ShowAll {
		return 1
	}
	rows := 0
	for _, col := range m.keymap.FullHelp() {
		rows = max(rows, len(col))
	}
	return rows
}

// renderScreen stacks the title, chart, legend, status bar and help.
func (m Model) renderScreen() string {
	scene := m.engine.Scene()

	parts := []string{
		m.renderTitle(),
		m.chart.View(scene, m.focus),
	}
	if m.config.ShowLegend {
		parts = append(parts, m.renderLegend())
	}
	parts = append(parts, m.renderStatusBar())
	if m.config.ShowHelp {
		parts = append(parts, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTitle() string {
	title := m.theme.Title.Render("Hybrid & electric vehicle sales")
	subtitle := m.theme.Subtitle.Render("by powertrain, click to drill down")
	return title + "  " + subtitle
}

// renderLegend always fills legendRows lines so the chart keeps its place.
func (m Model) renderLegend() string {
	entries := viewmodel.Legend(m.engine.Scene(), m.focus)
	lines := strings.Split(m.legend.View(entries), "\n")
	if len(lines) > legendRows {
		lines = lines[:legendRows]
	}
	for len(lines) < legendRows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	sv := viewmodel.Status(m.engine.State(), m.engine.Busy(), m.lastErr)

	parts := []string{m.theme.StatusBar.Render(sv.Location)}
	if title := viewmodel.FocusTitle(m.engine.Scene(), m.focus); title != "" {
		parts = append(parts, m.theme.StatusBar.Render(title))
	}
	if sv.Animating {
		parts = append(parts, m.theme.StatusInfo.Render("animating"))
	}
	if sv.Message != "" {
		style := m.theme.StatusInfo
		if sv.IsError {
			style = m.theme.StatusError
		}
		parts = append(parts, style.Render(sv.Message))
	}

	return strings.Join(parts, m.theme.StatusBar.Render(" · "))
}
