package view

import (
	"fmt"
	"time"

	"github.com/Veraticus/drivetrain/internal/model"
)

// Layer is a group of visual elements an effect applies to.
type Layer int

// Chart layers.
const (
	TypesLayer Layer = iota
	VehiclesLayer
	BackLayer
)

func (l Layer) String() string {
	switch l {
	case TypesLayer:
		return "types"
	case VehiclesLayer:
		return "vehicles"
	case BackLayer:
		return "back"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// Selector picks elements within a layer.
type Selector int

// Element selectors.
const (
	AllKeys Selector = iota
	OnlyKey
	AllButKey
)

// Target names the elements an effect changes.
type Target struct {
	Layer    Layer
	Selector Selector
	Key      string
}

// Matches reports whether the element key in layer l is targeted.
func (t Target) Matches(l Layer, key string) bool {
	if l != t.Layer {
		return false
	}
	switch t.Selector {
	case OnlyKey:
		return key == t.Key
	case AllButKey:
		return key != t.Key
	default:
		return true
	}
}

func (t Target) String() string {
	switch t.Selector {
	case OnlyKey:
		return fmt.Sprintf("%s[%s]", t.Layer, t.Key)
	case AllButKey:
		return fmt.Sprintf("%s[!%s]", t.Layer, t.Key)
	default:
		return t.Layer.String()
	}
}

// Types targets every type band.
func Types() Target { return Target{Layer: TypesLayer} }

// Vehicles targets every vehicle band.
func Vehicles() Target { return Target{Layer: VehiclesLayer} }

// Back targets the back control.
func Back() Target { return Target{Layer: BackLayer} }

// Vehicle targets one vehicle band.
func Vehicle(k model.VehicleKey) Target {
	return Target{Layer: VehiclesLayer, Selector: OnlyKey, Key: string(k)}
}

// OtherVehicles targets every vehicle band except k.
func OtherVehicles(k model.VehicleKey) Target {
	return Target{Layer: VehiclesLayer, Selector: AllButKey, Key: string(k)}
}

// ShapeKind is the data a band is drawn from.
type ShapeKind int

// Band shapes.
const (
	// TypesStacked stacks all four type totals.
	TypesStacked ShapeKind = iota
	// TypesFiltered stacks the type totals with every type but one zeroed.
	TypesFiltered
	// VehiclesStacked stacks the vehicles of one type.
	VehiclesStacked
	// Single draws one vehicle's sales from zero, unstacked.
	Single
)

// Shape is a band shape together with its selection.
type Shape struct {
	Kind    ShapeKind
	Type    model.TypeKey
	Vehicle model.VehicleKey
}

func (s Shape) String() string {
	switch s.Kind {
	case TypesFiltered:
		return fmt.Sprintf("types-filtered(%s)", s.Type)
	case VehiclesStacked:
		return fmt.Sprintf("vehicles-stacked(%s)", s.Type)
	case Single:
		return fmt.Sprintf("single(%s)", s.Vehicle)
	default:
		return "types-stacked"
	}
}

// Kind is what an effect does.
type Kind int

// Effect kinds.
const (
	// SetClickable sets or clears the clickable flag of the target at once.
	SetClickable Kind = iota
	// FadeTo animates the target's opacity.
	FadeTo
	// ReshapeTo animates the target's bands to a new shape.
	ReshapeTo
	// RescaleAxis animates the value axis to a new domain.
	RescaleAxis
	// SetLabel sets the chart caption.
	SetLabel
	// AddVehicleBands creates the vehicle bands of a type.
	AddVehicleBands
	// RemoveVehicleBands drops all vehicle bands.
	RemoveVehicleBands
	// SetBackLabel sets the text of the back control.
	SetBackLabel
)

func (k Kind) String() string {
	switch k {
	case SetClickable:
		return "clickable"
	case FadeTo:
		return "fade"
	case ReshapeTo:
		return "reshape"
	case RescaleAxis:
		return "axis"
	case SetLabel:
		return "label"
	case AddVehicleBands:
		return "add-vehicles"
	case RemoveVehicleBands:
		return "remove-vehicles"
	case SetBackLabel:
		return "back-label"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Effect is one timed visual change. At is the offset from the start of the
// transition. Only the fields relevant to Kind are set.
type Effect struct {
	At       time.Duration
	Duration time.Duration
	Kind     Kind
	Target   Target

	Clickable bool
	Opacity   float64
	Shape     Shape
	Domain    float64
	Text      string
	Type      model.TypeKey
}

func (e Effect) String() string {
	var detail string
	switch e.Kind {
	case SetClickable:
		detail = fmt.Sprintf("%t", e.Clickable)
	case FadeTo:
		detail = fmt.Sprintf("%.2f", e.Opacity)
	case ReshapeTo:
		detail = e.Shape.String()
	case RescaleAxis:
		detail = fmt.Sprintf("%.0f", e.Domain)
	case SetLabel, SetBackLabel:
		detail = fmt.Sprintf("%q", e.Text)
	case AddVehicleBands:
		detail = string(e.Type)
	}
	return fmt.Sprintf("+%s %s %s %s (%s)", e.At, e.Kind, e.Target, detail, e.Duration)
}

// End returns the offset at which the effect has fully played.
func (e Effect) End() time.Duration {
	return e.At + e.Duration
}

// Timeline is the ordered list of effects of one transition.
// Effects with the same offset start in slice order.
type Timeline []Effect

// Duration returns the offset at which the last effect ends.
func (t Timeline) Duration() time.Duration {
	var end time.Duration
	for _, e := range t {
		end = max(end, e.End())
	}
	return end
}

// OfKind lists the effects of kind k in order.
func (t Timeline) OfKind(k Kind) Timeline {
	var out Timeline
	for _, e := range t {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
