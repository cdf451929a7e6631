// Package snapshot draws a finished chart scene to SVG or PNG.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/dataset"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ErrUnknownFormat is returned for formats other than svg and png.
var ErrUnknownFormat = errors.New("unknown image format")

const (
	valueTicks = 5
	monthTicks = 12
	fontSize   = 11.0
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to SVG.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return PNG
	}
	return SVG
}

// Options control the output image.
type Options struct {
	Canvas chart.Canvas
	Format Format
}

// DefaultOptions returns a 1000×500 SVG.
func DefaultOptions() Options {
	return Options{Canvas: chart.DefaultCanvas(), Format: SVG}
}

// Render writes the scene as an image.
func Render(w io.Writer, scene *chart.Scene, opts Options) error {
	if len(scene.Dates) == 0 {
		return common.ErrEmptyDataset
	}

	ch := build(scene, opts.Canvas)

	provider := gochart.SVG
	if opts.Format == PNG {
		provider = gochart.PNG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", opts.Format, err)
	}
	return nil
}

// Write renders the scene to a file.
func Write(path string, scene *chart.Scene, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return Render(f, scene, opts)
}

func build(scene *chart.Scene, canvas chart.Canvas) gochart.Chart {
	dates := scene.Dates
	// go-chart needs a non-empty x range.
	if len(dates) == 1 {
		dates = []time.Time{dates[0], dates[0].AddDate(0, 1, 0)}
	}

	domain := scene.AxisDomain
	if domain <= 0 {
		domain = 1
	}

	ch := gochart.Chart{
		Title:  scene.Label,
		Width:  int(canvas.Width),
		Height: int(canvas.Height),
		TitleStyle: gochart.Style{
			FontSize: fontSize + 3,
		},
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(canvas.Margin.Top),
				Left:   int(canvas.Margin.Left),
				Right:  int(canvas.Margin.Right),
				Bottom: int(canvas.Margin.Bottom),
			},
		},
		XAxis: gochart.XAxis{
			Style: gochart.Style{FontSize: fontSize},
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(dates[0]),
				Max: gochart.TimeToFloat64(dates[len(dates)-1]),
			},
			Ticks: xTicks(dates),
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{FontSize: fontSize},
			Range: &gochart.ContinuousRange{Min: 0, Max: domain},
			Ticks: yTicks(domain),
		},
		Series: series(scene, dates),
	}

	if scene.Back.Opacity > 0 && scene.Back.Label != "" {
		ch.Elements = []gochart.Renderable{backButton(canvas, scene.Back)}
	}
	return ch
}

// series turns the visible bands into filled time series. Each series fills
// down to the axis, so the top of the stack is drawn first and every lower
// band paints over it.
func series(scene *chart.Scene, dates []time.Time) []gochart.Series {
	bands := scene.Bands()
	out := make([]gochart.Series, 0, len(bands))

	for i := len(bands) - 1; i >= 0; i-- {
		b := bands[i]
		if !b.Visible() {
			continue
		}
		_, upper := scene.Values(b)
		if len(upper) == 1 {
			upper = []float64{upper[0], upper[0]}
		}

		col := toDrawing(b.Color.Hex(), b.Opacity)
		out = append(out, gochart.TimeSeries{
			Name:    b.Key,
			XValues: dates,
			YValues: upper,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: 1,
				FillColor:   col,
			},
		})
	}
	return out
}

func xTicks(dates []time.Time) []gochart.Tick {
	ts := chart.NewTimeScale(dates, 0, 1)
	months := ts.MonthTicks(monthTicks)

	ticks := make([]gochart.Tick, 0, len(months))
	for _, m := range months {
		ticks = append(ticks, gochart.Tick{
			Value: gochart.TimeToFloat64(m),
			Label: dataset.FormatMonth(m),
		})
	}
	return ticks
}

func yTicks(domain float64) []gochart.Tick {
	scale := chart.NewLinearScale(0, domain, 0, 1)
	step := chart.TickStep(0, domain, valueTicks)

	values := scale.Ticks(valueTicks)
	ticks := make([]gochart.Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, gochart.Tick{Value: v, Label: chart.FormatTick(v, step)})
	}
	return ticks
}

// backButton draws the back control as a filled rectangle with its label.
func backButton(canvas chart.Canvas, back chart.BackControl) gochart.Renderable {
	rect := canvas.BackRect(back.Label)
	return func(r gochart.Renderer, _ gochart.Box, defaults gochart.Style) {
		left, top := int(rect.X), int(rect.Y)
		right, bottom := int(rect.X+rect.W), int(rect.Y+rect.H)

		r.SetFillColor(toDrawing("#dddddd", back.Opacity))
		r.SetStrokeColor(toDrawing("#999999", back.Opacity))
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.FillStroke()

		if defaults.Font != nil {
			r.SetFont(defaults.Font)
		}
		r.SetFontSize(fontSize)
		r.SetFontColor(toDrawing("#333333", back.Opacity))
		r.Text(back.Label, left+8, top+int(rect.H)/2+4)
	}
}

func toDrawing(hex string, opacity float64) drawing.Color {
	c := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	c.A = uint8(max(0, min(opacity, 1)) * 255)
	return c
}
