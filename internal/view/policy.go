package view

import (
	"fmt"

	"github.com/Veraticus/drivetrain/internal/model"
)

// BackControl reports whether the back control is shown and the label naming
// the level it returns to.
func BackControl(s State) (visible bool, label string) {
	switch s.Level {
	case OneType:
		return true, "← Back to all types"
	case OneVehicle:
		return true, fmt.Sprintf("← Back to all %s vehicles", s.Type)
	default:
		return false, ""
	}
}

// Domain returns the upper bound of the value axis for s.
//
// At AllTypes it is the largest monthly sum of the four types, at OneType the
// largest monthly total of the selected type, and at OneVehicle the largest
// monthly sales of the selected vehicle. It is computed from the dataset every
// time.
func Domain(s State, ds *model.Dataset) float64 {
	best := 0
	switch s.Level {
	case AllTypes:
		for _, m := range ds.Types {
			best = max(best, m.Sum())
		}
	case OneType:
		for _, m := range ds.Types {
			best = max(best, m.Get(s.Type))
		}
	case OneVehicle:
		for _, m := range ds.Vehicles {
			best = max(best, m.Sales.Sales(s.Vehicle))
		}
	}
	return float64(best)
}

// StackKeys returns the keys stacked at s, bottom first: the four types at
// AllTypes, otherwise the selected type's vehicles in column order.
func StackKeys(s State, ds *model.Dataset) []string {
	if s.Level == AllTypes {
		return model.TypeKeyStrings()
	}
	vehicles := ds.VehiclesOfType(s.Type)
	keys := make([]string, len(vehicles))
	for i, v := range vehicles {
		keys[i] = string(v)
	}
	return keys
}

// Label returns the chart caption for s.
func Label(s State) string {
	switch s.Level {
	case OneType:
		return fmt.Sprintf("Type: %s", s.Type)
	case OneVehicle:
		return fmt.Sprintf("Model: %s (%s)", s.Vehicle, s.Type)
	default:
		return ""
	}
}
