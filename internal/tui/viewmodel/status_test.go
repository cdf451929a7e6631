package viewmodel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/drivetrain/internal/engine"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	bev := view.State{Level: view.OneType, Type: model.TypeBEV}
	leaf := view.State{Level: view.OneVehicle, Type: model.TypeBEV, Vehicle: "Nissan Leaf"}

	tests := []struct {
		name      string
		state     view.State
		err       error
		wantMsg   string
		wantError bool
	}{
		{name: "no error", state: view.Initial()},
		{name: "mid animation", state: bev, err: fmt.Errorf("%w: types band", engine.ErrUnclickable), wantMsg: "Not clickable right now"},
		{name: "empty space", state: bev, err: engine.ErrNoTarget, wantMsg: "Nothing there"},
		{name: "back at top", state: view.Initial(), err: view.ErrIgnoredEvent, wantMsg: "Already at the top"},
		{name: "vehicle at bottom", state: leaf, err: view.ErrIgnoredEvent, wantMsg: "Already at the most detailed view"},
		{name: "other", state: bev, err: errors.New("boom"), wantMsg: "boom", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv := Status(tt.state, true, tt.err)
			assert.Equal(t, tt.wantMsg, sv.Message)
			assert.Equal(t, tt.wantError, sv.IsError)
			assert.True(t, sv.Animating)
		})
	}
}

func TestBreadcrumb(t *testing.T) {
	assert.Equal(t, "All types", Breadcrumb(view.Initial()))
	assert.Equal(t, "All types › PHEV", Breadcrumb(view.State{Level: view.OneType, Type: model.TypePHEV}))
	assert.Equal(t, "All types › BEV › Nissan Leaf",
		Breadcrumb(view.State{Level: view.OneVehicle, Type: model.TypeBEV, Vehicle: "Nissan Leaf"}))
}
