package chart

import (
	"fmt"
	"math"

	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/lucasb-eyer/go-colorful"
)

// vehicleSpread is the width of the gradient window a type's vehicles share.
const vehicleSpread = 0.2

var typeColors = map[model.TypeKey]colorful.Color{
	model.TypeHEV:  rgb(127, 179, 213),
	model.TypePHEV: rgb(52, 152, 219),
	model.TypeBEV:  rgb(17, 122, 101),
	model.TypeFCEV: mustHex("#e31a1c"),
}

// vehicleStart is where each type's window begins on the PuBuGn gradient.
var vehicleStart = map[model.TypeKey]float64{
	model.TypeHEV:  0.5,
	model.TypePHEV: 0.6,
	model.TypeBEV:  0.7,
	model.TypeFCEV: 0.3,
}

// puBuGn is the nine-class PuBuGn scheme, light to dark.
var puBuGn = []colorful.Color{
	mustHex("#fff7fb"),
	mustHex("#ece2f0"),
	mustHex("#d0d1e6"),
	mustHex("#a6bddb"),
	mustHex("#67a9cf"),
	mustHex("#3690c0"),
	mustHex("#02818a"),
	mustHex("#016c59"),
	mustHex("#014636"),
}

// TypeColor returns the fill of a type band. Unknown types are grey.
func TypeColor(t model.TypeKey) colorful.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return rgb(150, 150, 150)
}

// VehicleColor returns the fill of the i-th of n vehicle bands of type t.
func VehicleColor(t model.TypeKey, i, n int) colorful.Color {
	pos := vehicleStart[t]
	if n > 0 {
		pos += float64(i) / float64(n) * vehicleSpread
	}
	return PuBuGn(pos)
}

// PuBuGn samples the PuBuGn gradient at t in [0, 1] with a uniform cubic
// B-spline through the scheme colours, channel by channel in RGB.
func PuBuGn(t float64) colorful.Color {
	return basisRGB(puBuGn, t)
}

func basisRGB(stops []colorful.Color, t float64) colorful.Color {
	r := make([]float64, len(stops))
	g := make([]float64, len(stops))
	b := make([]float64, len(stops))
	for i, c := range stops {
		r[i], g[i], b[i] = c.R, c.G, c.B
	}

	// quantise to 8 bits per channel like a CSS rgb() colour
	return colorful.Color{
		R: math.Round(basis(r, t)*255) / 255,
		G: math.Round(basis(g, t)*255) / 255,
		B: math.Round(basis(b, t)*255) / 255,
	}.Clamped()
}

// basis evaluates a uniform cubic B-spline through values at t in [0, 1].
// The end segments use reflected control points.
func basis(values []float64, t float64) float64 {
	n := len(values) - 1
	var i int
	switch {
	case t <= 0:
		t = 0
		i = 0
	case t >= 1:
		t = 1
		i = n - 1
	default:
		i = int(math.Floor(t * float64(n)))
	}

	v1, v2 := values[i], values[i+1]
	v0 := 2*v1 - v2
	if i > 0 {
		v0 = values[i-1]
	}
	v3 := 2*v2 - v1
	if i < n-1 {
		v3 = values[i+2]
	}

	t1 := (t - float64(i)/float64(n)) * float64(n)
	t2 := t1 * t1
	t3 := t2 * t1
	return ((1-3*t1+3*t2-t3)*v0 + (4-6*t2+3*t3)*v1 + (1+3*t1+3*t2-3*t3)*v2 + t3*v3) / 6
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("invalid colour %q: %v", s, err))
	}
	return c
}
