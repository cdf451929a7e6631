// Package view holds the drill-down state machine of the sales chart.
//
// Everything here is pure: transitions take a State and an Event and return the
// next State, and Plan describes the visual effects of a transition as data for
// a renderer to play.
package view

import (
	"fmt"

	"github.com/Veraticus/drivetrain/internal/model"
)

// Level is the zoom level of the chart.
type Level int

// Zoom levels, ordered from the widest view down.
const (
	AllTypes Level = iota
	OneType
	OneVehicle
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case AllTypes:
		return "all-types"
	case OneType:
		return "one-type"
	case OneVehicle:
		return "one-vehicle"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// State is the current zoom level and selection.
// Type is set whenever Level >= OneType and Vehicle only at OneVehicle.
type State struct {
	Level   Level
	Type    model.TypeKey
	Vehicle model.VehicleKey
}

// Initial returns the state the chart opens in.
func Initial() State {
	return State{Level: AllTypes}
}

// String renders the state for logs.
func (s State) String() string {
	switch s.Level {
	case OneType:
		return fmt.Sprintf("%s(%s)", s.Level, s.Type)
	case OneVehicle:
		return fmt.Sprintf("%s(%s, %s)", s.Level, s.Type, s.Vehicle)
	default:
		return s.Level.String()
	}
}

// Valid reports whether the selection matches the level.
func (s State) Valid() bool {
	switch s.Level {
	case AllTypes:
		return s.Type == "" && s.Vehicle == ""
	case OneType:
		return s.Type.IsValid() && s.Vehicle == ""
	case OneVehicle:
		return s.Type.IsValid() && s.Vehicle != ""
	default:
		return false
	}
}
