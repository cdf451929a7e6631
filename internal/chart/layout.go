package chart

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Canvas is the logical drawing surface of the chart.
type Canvas struct {
	Width  float64
	Height float64
	Margin Margin
}

// Back control geometry, relative to the plot origin.
const (
	backOffsetY   = -17
	backHeight    = 30
	backPadding   = 16
	backCharWidth = 8
)

// DefaultCanvas returns the 1000x500 canvas with room for the value axis on the right.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  1000,
		Height: 500,
		Margin: Margin{Top: 40, Right: 80, Bottom: 40, Left: 40},
	}
}

// PlotWidth returns the width of the plot area.
func (c Canvas) PlotWidth() float64 {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// PlotHeight returns the height of the plot area.
func (c Canvas) PlotHeight() float64 {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// ToPlot converts canvas coordinates to plot fractions, with y measured up
// from the bottom of the plot. ok is false outside the plot area.
func (c Canvas) ToPlot(x, y float64) (xFrac, yFrac float64, ok bool) {
	w, h := c.PlotWidth(), c.PlotHeight()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	xFrac = (x - c.Margin.Left) / w
	yFrac = 1 - (y-c.Margin.Top)/h
	ok = xFrac >= 0 && xFrac <= 1 && yFrac >= 0 && yFrac <= 1
	return xFrac, yFrac, ok
}

// FromPlot converts plot fractions back to canvas coordinates.
func (c Canvas) FromPlot(xFrac, yFrac float64) (x, y float64) {
	return c.Margin.Left + xFrac*c.PlotWidth(), c.Margin.Top + (1-yFrac)*c.PlotHeight()
}

// Rect is an axis-aligned box in canvas coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// BackRect returns the box of the back control for a label, anchored at the
// top left of the plot and sized to the text.
func (c Canvas) BackRect(label string) Rect {
	return Rect{
		X: c.Margin.Left,
		Y: c.Margin.Top + backOffsetY,
		W: float64(len([]rune(label))*backCharWidth + backPadding),
		H: backHeight,
	}
}
