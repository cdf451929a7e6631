package viewmodel

import (
	"errors"

	"github.com/Veraticus/drivetrain/internal/engine"
	"github.com/Veraticus/drivetrain/internal/view"
)

// StatusView is the content of the status bar.
type StatusView struct {
	Location  string
	Message   string
	Animating bool
	IsError   bool
}

// Status describes the current state and the outcome of the last click.
func Status(state view.State, animating bool, lastErr error) StatusView {
	sv := StatusView{
		Location:  Breadcrumb(state),
		Animating: animating,
	}

	switch {
	case lastErr == nil:
	case errors.Is(lastErr, engine.ErrUnclickable):
		sv.Message = "Not clickable right now"
	case errors.Is(lastErr, engine.ErrNoTarget):
		sv.Message = "Nothing there"
	case errors.Is(lastErr, view.ErrIgnoredEvent):
		sv.Message = "Already at the most detailed view"
		if state.Level == view.AllTypes {
			sv.Message = "Already at the top"
		}
	default:
		sv.Message = lastErr.Error()
		sv.IsError = true
	}

	return sv
}

// Breadcrumb renders the drill-down path of a state.
func Breadcrumb(state view.State) string {
	switch state.Level {
	case view.OneType:
		return "All types › " + string(state.Type)
	case view.OneVehicle:
		return "All types › " + string(state.Type) + " › " + string(state.Vehicle)
	default:
		return "All types"
	}
}
