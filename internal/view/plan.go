package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/drivetrain/internal/model"
)

// ErrNoTransition is returned by Plan for state pairs that are not one step apart.
var ErrNoTransition = errors.New("no transition between states")

// Effect durations.
const (
	ReshapeDuration  = 1000 * time.Millisecond
	AxisDuration     = 1000 * time.Millisecond
	FadeDuration     = 1000 * time.Millisecond
	RestoreDuration  = 250 * time.Millisecond
	ShowBackDuration = 500 * time.Millisecond
	HideBackDuration = 200 * time.Millisecond
)

// Plan returns the effects that animate the chart from one state to the next.
func Plan(from, to State, ds *model.Dataset) (Timeline, error) {
	switch {
	case from.Level == AllTypes && to.Level == OneType:
		return drillIntoType(to, ds), nil
	case from.Level == OneType && to.Level == OneVehicle && from.Type == to.Type:
		return drillIntoVehicle(to, ds), nil
	case from.Level == OneType && to.Level == AllTypes:
		return backToTypes(to, ds), nil
	case from.Level == OneVehicle && to.Level == OneType && from.Type == to.Type:
		return backToVehicles(to, ds), nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrNoTransition, from, to)
	}
}

func drillIntoType(to State, ds *model.Dataset) Timeline {
	filtered := Shape{Kind: TypesFiltered, Type: to.Type}
	tl := Timeline{
		{At: 0, Kind: SetClickable, Target: Types(), Clickable: false},
		{At: 0, Kind: ReshapeTo, Target: Types(), Shape: filtered, Duration: ReshapeDuration},

		{At: 1200 * time.Millisecond, Kind: SetLabel, Text: Label(to)},
		{At: 1200 * time.Millisecond, Kind: RescaleAxis, Domain: Domain(to, ds), Duration: AxisDuration},
		{At: 1200 * time.Millisecond, Kind: ReshapeTo, Target: Types(), Shape: filtered, Duration: ReshapeDuration},

		{At: 2200 * time.Millisecond, Kind: AddVehicleBands, Target: Vehicles(), Type: to.Type},
		{At: 2200 * time.Millisecond, Kind: FadeTo, Target: Types(), Opacity: 0, Duration: FadeDuration},
	}
	return append(tl, showBack(to, 3200*time.Millisecond)...)
}

func drillIntoVehicle(to State, ds *model.Dataset) Timeline {
	single := Shape{Kind: Single, Type: to.Type, Vehicle: to.Vehicle}
	tl := hideBack(0)
	tl = append(tl,
		Effect{At: 0, Kind: SetClickable, Target: Vehicles(), Clickable: false},
		Effect{At: 0, Kind: FadeTo, Target: OtherVehicles(to.Vehicle), Opacity: 0, Duration: FadeDuration},

		Effect{At: 1000 * time.Millisecond, Kind: ReshapeTo, Target: Vehicle(to.Vehicle), Shape: single, Duration: ReshapeDuration},

		Effect{At: 2000 * time.Millisecond, Kind: SetLabel, Text: Label(to)},
		Effect{At: 2000 * time.Millisecond, Kind: RescaleAxis, Domain: Domain(to, ds), Duration: AxisDuration},
		Effect{At: 2000 * time.Millisecond, Kind: ReshapeTo, Target: Vehicle(to.Vehicle), Shape: single, Duration: ReshapeDuration},

		Effect{At: 3000 * time.Millisecond, Kind: SetClickable, Target: Vehicle(to.Vehicle), Clickable: true},
	)
	return append(tl, showBack(to, 3000*time.Millisecond)...)
}

func backToTypes(to State, ds *model.Dataset) Timeline {
	tl := hideBack(0)
	return append(tl,
		Effect{At: 0, Kind: FadeTo, Target: Types(), Opacity: 1, Duration: RestoreDuration},

		Effect{At: RestoreDuration, Kind: RemoveVehicleBands, Target: Vehicles()},
		Effect{At: RestoreDuration, Kind: RescaleAxis, Domain: Domain(to, ds), Duration: AxisDuration},
		Effect{At: RestoreDuration, Kind: ReshapeTo, Target: Types(), Shape: Shape{Kind: TypesStacked}, Duration: ReshapeDuration},

		Effect{At: RestoreDuration + ReshapeDuration, Kind: SetClickable, Target: Types(), Clickable: true},
		Effect{At: RestoreDuration + ReshapeDuration, Kind: SetLabel, Text: Label(to)},
	)
}

func backToVehicles(to State, ds *model.Dataset) Timeline {
	tl := hideBack(0)
	tl = append(tl,
		Effect{At: 0, Kind: RescaleAxis, Domain: Domain(to, ds), Duration: AxisDuration},
		Effect{At: 0, Kind: ReshapeTo, Target: Vehicles(), Shape: Shape{Kind: VehiclesStacked, Type: to.Type}, Duration: ReshapeDuration},

		Effect{At: 1000 * time.Millisecond, Kind: FadeTo, Target: Vehicles(), Opacity: 1, Duration: FadeDuration},

		Effect{At: 2000 * time.Millisecond, Kind: SetClickable, Target: Vehicles(), Clickable: true},
	)
	tl = append(tl, showBack(to, 2000*time.Millisecond)...)
	return append(tl, Effect{At: 2000 * time.Millisecond, Kind: SetLabel, Text: Label(to)})
}

func showBack(to State, at time.Duration) Timeline {
	_, label := BackControl(to)
	return Timeline{
		{At: at, Kind: SetBackLabel, Target: Back(), Text: label},
		{At: at, Kind: SetClickable, Target: Back(), Clickable: true},
		{At: at, Kind: FadeTo, Target: Back(), Opacity: 1, Duration: ShowBackDuration},
	}
}

func hideBack(at time.Duration) Timeline {
	return Timeline{
		{At: at, Kind: SetClickable, Target: Back(), Clickable: false},
		{At: at, Kind: FadeTo, Target: Back(), Opacity: 0, Duration: HideBackDuration},
	}
}
