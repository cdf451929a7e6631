package chart

import (
	"fmt"
	"time"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/lucasb-eyer/go-colorful"
)

// Band is one drawn area. Lower and Upper hold one value per month as a
// fraction of the plot height, measured up from the bottom.
type Band struct {
	Key       string
	Layer     view.Layer
	Title     string
	Color     colorful.Color
	Lower     []float64
	Upper     []float64
	Opacity   float64
	Clickable bool
}

// Visible reports whether the band is drawn at all.
func (b *Band) Visible() bool {
	return b.Opacity > 0
}

// BackControl is the state of the back button.
type BackControl struct {
	Label     string
	Opacity   float64
	Clickable bool
}

// Scene is everything a surface needs to draw one frame.
type Scene struct {
	Dates    []time.Time
	Types    []*Band
	Vehicles []*Band

	// Domain is the value the band geometry is scaled against. It changes at
	// once when an axis rescale starts; AxisDomain follows it over time.
	Domain     float64
	AxisDomain float64

	Label string
	Back  BackControl

	ds *model.Dataset
	x  []float64
}

// NewScene builds the opening scene: all four types stacked, clickable, with
// the back control hidden.
func NewScene(ds *model.Dataset) *Scene {
	domain := view.Domain(view.Initial(), ds)
	s := &Scene{
		Dates:      ds.Dates(),
		Domain:     domain,
		AxisDomain: domain,
		ds:         ds,
	}

	ts := NewTimeScale(s.Dates, 0, 1)
	s.x = make([]float64, len(s.Dates))
	for i, d := range s.Dates {
		s.x[i] = ts.Scale(d)
	}

	geometry := s.geometry(view.Shape{Kind: view.TypesStacked})
	for _, t := range model.TypeKeys {
		g := geometry[string(t)]
		s.Types = append(s.Types, &Band{
			Key:       string(t),
			Layer:     view.TypesLayer,
			Title:     fmt.Sprintf("Type: %s", t),
			Color:     TypeColor(t),
			Lower:     g.Lower,
			Upper:     g.Upper,
			Opacity:   1,
			Clickable: true,
		})
	}

	return s
}

// Dataset returns the dataset the scene draws.
func (s *Scene) Dataset() *model.Dataset {
	return s.ds
}

// X returns the horizontal position of every month as a fraction of the plot width.
func (s *Scene) X() []float64 {
	return s.x
}

// Bands returns every band in drawing order, bottom layer first.
func (s *Scene) Bands() []*Band {
	out := make([]*Band, 0, len(s.Types)+len(s.Vehicles))
	out = append(out, s.Types...)
	return append(out, s.Vehicles...)
}

// Band finds a band by layer and key.
func (s *Scene) Band(layer view.Layer, key string) (*Band, bool) {
	bands := s.Types
	if layer == view.VehiclesLayer {
		bands = s.Vehicles
	}
	for _, b := range bands {
		if b.Key == key {
			return b, true
		}
	}
	return nil, false
}

// BandAt returns the top-most visible band under a point of the plot, given as
// fractions of its width and height (y up from the bottom).
func (s *Scene) BandAt(xFrac, yFrac float64) (*Band, bool) {
	if len(s.Dates) == 0 || xFrac < 0 || xFrac > 1 || yFrac < 0 || yFrac > 1 {
		return nil, false
	}

	bands := s.Bands()
	for i := len(bands) - 1; i >= 0; i-- {
		b := bands[i]
		if !b.Visible() {
			continue
		}
		lo, hi := s.boundsAt(b, xFrac)
		if hi > lo && yFrac >= lo && yFrac <= hi {
			return b, true
		}
	}
	return nil, false
}

// BoundsAt interpolates a band's lower and upper bound at xFrac.
func (s *Scene) BoundsAt(b *Band, xFrac float64) (lower, upper float64) {
	return s.boundsAt(b, xFrac)
}

func (s *Scene) boundsAt(b *Band, xFrac float64) (float64, float64) {
	n := len(s.x)
	if n == 0 || len(b.Lower) < n || len(b.Upper) < n {
		return 0, 0
	}
	if n == 1 || xFrac <= s.x[0] {
		return b.Lower[0], b.Upper[0]
	}
	if xFrac >= s.x[n-1] {
		return b.Lower[n-1], b.Upper[n-1]
	}

	for i := 1; i < n; i++ {
		if xFrac > s.x[i] {
			continue
		}
		span := s.x[i] - s.x[i-1]
		if span <= 0 {
			return b.Lower[i], b.Upper[i]
		}
		f := (xFrac - s.x[i-1]) / span
		return lerp(b.Lower[i-1], b.Lower[i], f), lerp(b.Upper[i-1], b.Upper[i], f)
	}
	return b.Lower[n-1], b.Upper[n-1]
}

// Values converts a band's geometry back to unit sales.
func (s *Scene) Values(b *Band) (lower, upper []float64) {
	lower = make([]float64, len(b.Lower))
	upper = make([]float64, len(b.Upper))
	d := s.Domain
	if d <= 0 {
		d = 1
	}
	for i := range b.Lower {
		lower[i] = b.Lower[i] * d
	}
	for i := range b.Upper {
		upper[i] = b.Upper[i] * d
	}
	return lower, upper
}

// bandGeometry is the target of a reshape for one band.
type bandGeometry struct {
	Lower []float64
	Upper []float64
}

// geometry computes the shape for every key it covers, scaled against the
// current geometry domain.
func (s *Scene) geometry(shape view.Shape) map[string]bandGeometry {
	n := len(s.ds.Types)
	var series []Series

	switch shape.Kind {
	case view.TypesStacked:
		series = Stack(n, model.TypeKeyStrings(), func(i int, key string) float64 {
			return float64(s.ds.Types[i].Get(model.TypeKey(key)))
		})

	case view.TypesFiltered:
		filtered := dataset.FilterToSelectedType(s.ds.Types, shape.Type)
		series = Stack(n, model.TypeKeyStrings(), func(i int, key string) float64 {
			return float64(filtered[i].Get(model.TypeKey(key)))
		})

	case view.VehiclesStacked:
		keys := view.StackKeys(view.State{Level: view.OneType, Type: shape.Type}, s.ds)
		series = Stack(len(s.ds.Vehicles), keys, func(i int, key string) float64 {
			return float64(s.ds.Vehicles[i].Sales.Sales(model.VehicleKey(key)))
		})

	case view.Single:
		series = Stack(len(s.ds.Vehicles), []string{string(shape.Vehicle)}, func(i int, key string) float64 {
			return float64(s.ds.Vehicles[i].Sales.Sales(model.VehicleKey(key)))
		})
	}

	scale := s.Domain
	if scale <= 0 {
		scale = 1
	}

	out := make(map[string]bandGeometry, len(series))
	for _, sr := range series {
		g := bandGeometry{Lower: make([]float64, len(sr.Points)), Upper: make([]float64, len(sr.Points))}
		for i, p := range sr.Points {
			g.Lower[i] = p.Lower / scale
			g.Upper[i] = p.Upper / scale
		}
		out[sr.Key] = g
	}
	return out
}

// addVehicles creates the stacked vehicle bands of t, fully opaque and clickable.
func (s *Scene) addVehicles(t model.TypeKey) {
	keys := view.StackKeys(view.State{Level: view.OneType, Type: t}, s.ds)
	geometry := s.geometry(view.Shape{Kind: view.VehiclesStacked, Type: t})

	s.Vehicles = make([]*Band, 0, len(keys))
	for i, key := range keys {
		g := geometry[key]
		s.Vehicles = append(s.Vehicles, &Band{
			Key:       key,
			Layer:     view.VehiclesLayer,
			Title:     fmt.Sprintf("Model: %s", key),
			Color:     VehicleColor(t, i, len(keys)),
			Lower:     g.Lower,
			Upper:     g.Upper,
			Opacity:   1,
			Clickable: true,
		})
	}
}

// targets returns the bands a target selects.
func (s *Scene) targets(t view.Target) []*Band {
	var out []*Band
	for _, b := range s.Bands() {
		if t.Matches(b.Layer, b.Key) {
			out = append(out, b)
		}
	}
	return out
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}
