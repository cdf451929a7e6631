package components

import (
	"math"
	"strings"

	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/tui/themes"
	"github.com/Veraticus/drivetrain/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	axisWidth     = 9
	valueTicks    = 5
	monthLabelGap = 2
	focusLighten  = 0.3
)

// ChartLayout places the chart parts inside a block of terminal cells.
// Row 0 holds the back button and caption, the plot fills the rows below it
// and the last row holds the month labels. The value axis sits to the right
// of the plot.
type ChartLayout struct {
	Width  int
	Height int
}

// PlotWidth returns the number of plot columns.
func (l ChartLayout) PlotWidth() int {
	return max(l.Width-axisWidth, 1)
}

// PlotHeight returns the number of plot rows.
func (l ChartLayout) PlotHeight() int {
	return max(l.Height-2, 1)
}

// CellToPlot converts a cell of the chart block to plot fractions, with y
// measured up from the bottom. ok is false outside the plot.
func (l ChartLayout) CellToPlot(x, y int) (xFrac, yFrac float64, ok bool) {
	row := y - 1
	if x < 0 || x >= l.PlotWidth() || row < 0 || row >= l.PlotHeight() {
		return 0, 0, false
	}
	xFrac = (float64(x) + 0.5) / float64(l.PlotWidth())
	yFrac = 1 - (float64(row)+0.5)/float64(l.PlotHeight())
	return xFrac, yFrac, true
}

// InBack reports whether a cell falls on a back button showing label.
func (l ChartLayout) InBack(x, y int, label string) bool {
	return y == 0 && x >= 0 && x < backWidth(label)
}

func backWidth(label string) int {
	return lipgloss.Width(label) + 2
}

// ChartView draws a scene into terminal cells.
type ChartView struct {
	theme  themes.Theme
	layout ChartLayout
}

// NewChartView creates a chart view.
func NewChartView(theme themes.Theme) ChartView {
	return ChartView{theme: theme}
}

// Resize sets the size of the chart block.
func (c *ChartView) Resize(width, height int) {
	c.layout = ChartLayout{Width: width, Height: height}
}

// Layout returns the current layout.
func (c ChartView) Layout() ChartLayout {
	return c.layout
}

// View renders the scene with the focused band highlighted.
func (c ChartView) View(scene *chart.Scene, focus viewmodel.BandRef) string {
	if c.layout.Width <= axisWidth || c.layout.Height < 3 {
		return ""
	}

	lines := make([]string, 0, c.layout.Height)
	lines = append(lines, c.renderHeader(scene))

	plot := c.renderPlot(scene, focus)
	axis := c.renderValueAxis(scene)
	for i := range plot {
		lines = append(lines, plot[i]+axis[i])
	}

	lines = append(lines, c.renderMonthAxis(scene))
	return strings.Join(lines, "\n")
}

func (c ChartView) renderHeader(scene *chart.Scene) string {
	var back string
	if scene.Back.Opacity > 0 && scene.Back.Label != "" {
		text := " " + scene.Back.Label + " "
		if scene.Back.Opacity < 0.5 {
			back = lipgloss.NewStyle().Foreground(c.theme.Muted).Render(text)
		} else {
			back = c.theme.BackButton.Render(text)
		}
	}

	caption := ""
	if scene.Label != "" {
		caption = c.theme.Caption.Render(scene.Label)
	}

	plotWidth := c.layout.PlotWidth()
	start := max((plotWidth-lipgloss.Width(caption))/2, lipgloss.Width(back)+1)
	pad := max(start-lipgloss.Width(back), 0)
	line := back + strings.Repeat(" ", pad) + caption

	if w := lipgloss.Width(line); w < c.layout.Width {
		line += strings.Repeat(" ", c.layout.Width-w)
	}
	return line
}

// renderPlot draws two pixels per cell with the upper half block: the
// foreground colour is the top pixel and the background the bottom one.
func (c ChartView) renderPlot(scene *chart.Scene, focus viewmodel.BandRef) []string {
	width, height := c.layout.PlotWidth(), c.layout.PlotHeight()
	background := toColorful(c.theme.Background)
	bands := scene.Bands()

	type bounds struct{ lo, hi float64 }
	columns := make([][]bounds, width)
	for x := 0; x < width; x++ {
		xFrac := (float64(x) + 0.5) / float64(width)
		columns[x] = make([]bounds, len(bands))
		for i, b := range bands {
			lo, hi := scene.BoundsAt(b, xFrac)
			columns[x][i] = bounds{lo: lo, hi: hi}
		}
	}

	fills := make([]colorful.Color, len(bands))
	for i, b := range bands {
		fills[i] = b.Color
		if b.Layer == focus.Layer && b.Key == focus.Key {
			fills[i] = b.Color.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, focusLighten)
		}
	}

	pixel := func(x int, yFrac float64) colorful.Color {
		col := background
		for i, b := range bands {
			if !b.Visible() {
				continue
			}
			bd := columns[x][i]
			if bd.hi > bd.lo && yFrac >= bd.lo && yFrac <= bd.hi {
				col = col.BlendRgb(fills[i], b.Opacity)
			}
		}
		return col
	}

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		top := 1 - (float64(2*y)+0.5)/float64(2*height)
		bottom := 1 - (float64(2*y)+1.5)/float64(2*height)

		var line strings.Builder
		runFg, runBg, run := "", "", 0
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(runFg)).Background(lipgloss.Color(runBg))
			line.WriteString(style.Render(strings.Repeat("▀", run)))
			run = 0
		}

		for x := 0; x < width; x++ {
			fg, bg := pixel(x, top).Hex(), pixel(x, bottom).Hex()
			if fg != runFg || bg != runBg {
				flush()
				runFg, runBg = fg, bg
			}
			run++
		}
		flush()
		rows[y] = line.String()
	}
	return rows
}

// renderValueAxis returns one axis cell string per plot row.
func (c ChartView) renderValueAxis(scene *chart.Scene) []string {
	height := c.layout.PlotHeight()
	labels := make([]string, height)

	domain := scene.AxisDomain
	scale := chart.NewLinearScale(0, domain, 0, 1)
	ticks := scale.Ticks(valueTicks)
	step := 1.0
	if domain > 0 {
		step = chart.TickStep(0, domain, valueTicks)
	}

	for _, v := range ticks {
		frac := 0.0
		if domain > 0 {
			frac = v / domain
		}
		row := int(math.Round((1 - frac) * float64(height-1)))
		if row >= 0 && row < height {
			labels[row] = chart.FormatTick(v, step)
		}
	}

	out := make([]string, height)
	for i, label := range labels {
		cell := "│"
		if label != "" {
			cell = "┤ " + label
		}
		if w := lipgloss.Width(cell); w < axisWidth {
			cell += strings.Repeat(" ", axisWidth-w)
		}
		out[i] = c.theme.Axis.Render(cell)
	}
	return out
}

func (c ChartView) renderMonthAxis(scene *chart.Scene) string {
	width := c.layout.PlotWidth()
	row := []rune(strings.Repeat(" ", c.layout.Width))
	if len(scene.Dates) == 0 {
		return string(row)
	}

	ts := chart.NewTimeScale(scene.Dates, 0, float64(width-1))
	ticks := ts.MonthTicks(max(width/(len("Jan 2006")+monthLabelGap), 1))
	if len(scene.Dates) == 1 {
		ticks = scene.Dates[:1]
	}

	next := 0
	for _, t := range ticks {
		label := []rune(dataset.FormatMonth(t))
		center := int(math.Round(ts.Scale(t)))
		start := max(center-len(label)/2, 0)
		if start+len(label) > len(row) {
			start = len(row) - len(label)
		}
		if start < next || start < 0 {
			continue
		}
		copy(row[start:], label)
		next = start + len(label) + monthLabelGap
	}

	return c.theme.Axis.Render(string(row))
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}
