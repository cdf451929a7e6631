package view

import (
	"errors"
	"fmt"

	"github.com/Veraticus/drivetrain/internal/model"
)

// ErrIgnoredEvent is returned when an event has no transition from the current state.
var ErrIgnoredEvent = errors.New("event ignored")

// Event is a user interaction with the chart.
type Event interface {
	fmt.Stringer
	event()
}

// TypeClicked is a click on a powertrain type band.
type TypeClicked struct {
	Type model.TypeKey
}

// VehicleClicked is a click on a vehicle band.
type VehicleClicked struct {
	Vehicle model.VehicleKey
}

// BackClicked is a click on the back control.
type BackClicked struct{}

func (TypeClicked) event()    {}
func (VehicleClicked) event() {}
func (BackClicked) event()    {}

func (e TypeClicked) String() string    { return fmt.Sprintf("type-clicked(%s)", e.Type) }
func (e VehicleClicked) String() string { return fmt.Sprintf("vehicle-clicked(%s)", e.Vehicle) }
func (BackClicked) String() string      { return "back-clicked" }

// Apply returns the state that follows s after ev. The level moves by exactly
// one step. Events with no transition from s return s unchanged and an error
// wrapping ErrIgnoredEvent.
func Apply(s State, ev Event, ds *model.Dataset) (State, error) {
	switch e := ev.(type) {
	case TypeClicked:
		if s.Level != AllTypes {
			return s, ignored(s, ev, "type bands are only clickable at the top level")
		}
		if !e.Type.IsValid() {
			return s, ignored(s, ev, "unknown type")
		}
		return State{Level: OneType, Type: e.Type}, nil

	case VehicleClicked:
		if s.Level != OneType {
			return s, ignored(s, ev, "vehicle bands are only clickable within a type")
		}
		v, ok := ds.Vehicle(e.Vehicle)
		if !ok {
			return s, ignored(s, ev, "unknown vehicle")
		}
		if v.Type != s.Type {
			return s, ignored(s, ev, fmt.Sprintf("vehicle is %s, not %s", v.Type, s.Type))
		}
		return State{Level: OneVehicle, Type: s.Type, Vehicle: e.Vehicle}, nil

	case BackClicked:
		switch s.Level {
		case OneType:
			return Initial(), nil
		case OneVehicle:
			return State{Level: OneType, Type: s.Type}, nil
		default:
			return s, ignored(s, ev, "already at the top level")
		}

	default:
		return s, ignored(s, ev, "unknown event")
	}
}

func ignored(s State, ev Event, reason string) error {
	return fmt.Errorf("%w: %s at %s: %s", ErrIgnoredEvent, ev, s, reason)
}

// PathTo returns the events that lead from the initial state to s.
func PathTo(s State) []Event {
	switch s.Level {
	case OneType:
		return []Event{TypeClicked{Type: s.Type}}
	case OneVehicle:
		return []Event{TypeClicked{Type: s.Type}, VehicleClicked{Vehicle: s.Vehicle}}
	default:
		return nil
	}
}
