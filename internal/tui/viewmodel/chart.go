// Package viewmodel derives display data for the chart screen from the scene.
package viewmodel

import (
	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/view"
)

// BandRef identifies a band in the scene.
type BandRef struct {
	Key   string
	Layer view.Layer
}

// IsZero reports whether the ref points at nothing.
func (r BandRef) IsZero() bool {
	return r.Key == ""
}

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Key       string
	Color     string
	Total     int
	Opacity   float64
	Focused   bool
	Clickable bool
}

// Legend lists the visible bands of the upper-most layer that has any,
// in stacking order.
func Legend(scene *chart.Scene, focus BandRef) []LegendEntry {
	ds := scene.Dataset()
	var entries []LegendEntry

	for _, b := range topLayer(scene) {
		if !b.Visible() {
			continue
		}
		entries = append(entries, LegendEntry{
			Key:       b.Key,
			Color:     b.Color.Hex(),
			Total:     bandTotal(ds, b),
			Opacity:   b.Opacity,
			Focused:   focus.Layer == b.Layer && focus.Key == b.Key,
			Clickable: b.Clickable,
		})
	}
	return entries
}

// FocusOrder lists the bands keyboard focus can move between: visible and
// clickable bands of the upper-most layer that has any, bottom first.
func FocusOrder(scene *chart.Scene) []BandRef {
	var refs []BandRef
	for _, b := range topLayer(scene) {
		if b.Visible() && b.Clickable {
			refs = append(refs, BandRef{Layer: b.Layer, Key: b.Key})
		}
	}
	return refs
}

// MoveFocus returns the ref delta steps away from current in order, wrapping
// around. A current ref not in order moves to the first or last entry.
func MoveFocus(order []BandRef, current BandRef, delta int) BandRef {
	if len(order) == 0 {
		return BandRef{}
	}

	idx := -1
	for i, ref := range order {
		if ref == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return order[len(order)-1]
		}
		return order[0]
	}

	n := len(order)
	return order[((idx+delta)%n+n)%n]
}

// FocusTitle returns the title of the focused band, or "" when it is not
// drawn.
func FocusTitle(scene *chart.Scene, focus BandRef) string {
	if focus.IsZero() {
		return ""
	}
	b, ok := scene.Band(focus.Layer, focus.Key)
	if !ok || !b.Visible() {
		return ""
	}
	return b.Title
}

// topLayer returns the vehicle bands when any is visible, otherwise the type bands.
func topLayer(scene *chart.Scene) []*chart.Band {
	for _, b := range scene.Vehicles {
		if b.Visible() {
			return scene.Vehicles
		}
	}
	return scene.Types
}

func bandTotal(ds *model.Dataset, b *chart.Band) int {
	if ds == nil {
		return 0
	}
	if b.Layer == view.VehiclesLayer {
		return ds.VehicleTotal(model.VehicleKey(b.Key))
	}
	return ds.TypeTotal(model.TypeKey(b.Key))
}
