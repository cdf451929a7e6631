package view

import (
	"testing"

	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	ds := fleet(t)
	hev := State{Level: OneType, Type: model.TypeHEV}
	prius := State{Level: OneVehicle, Type: model.TypeHEV, Vehicle: "Toyota Prius"}

	tests := []struct {
		name    string
		from    State
		event   Event
		want    State
		ignored bool
	}{
		{name: "drill into type", from: Initial(), event: TypeClicked{Type: model.TypeHEV}, want: hev},
		{name: "drill into vehicle", from: hev, event: VehicleClicked{Vehicle: "Toyota Prius"}, want: prius},
		{name: "back to all types", from: hev, event: BackClicked{}, want: Initial()},
		{name: "back to type", from: prius, event: BackClicked{}, want: hev},

		{name: "back at top", from: Initial(), event: BackClicked{}, ignored: true},
		{name: "vehicle at top", from: Initial(), event: VehicleClicked{Vehicle: "Toyota Prius"}, ignored: true},
		{name: "type within type", from: hev, event: TypeClicked{Type: model.TypeBEV}, ignored: true},
		{name: "type within vehicle", from: prius, event: TypeClicked{Type: model.TypeHEV}, ignored: true},
		{name: "vehicle within vehicle", from: prius, event: VehicleClicked{Vehicle: "Toyota Prius"}, ignored: true},
		{name: "unknown type", from: Initial(), event: TypeClicked{Type: "DIESEL"}, ignored: true},
		{name: "unknown vehicle", from: hev, event: VehicleClicked{Vehicle: "Ford Model T"}, ignored: true},
		{name: "vehicle of another type", from: hev, event: VehicleClicked{Vehicle: "Tesla Model S"}, ignored: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.event, ds)
			if tt.ignored {
				require.ErrorIs(t, err, ErrIgnoredEvent)
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestApply_SingleSteps(t *testing.T) {
	ds := fleet(t)
	events := []Event{
		TypeClicked{Type: model.TypeBEV},
		BackClicked{},
		BackClicked{},
		TypeClicked{Type: model.TypeBEV},
		VehicleClicked{Vehicle: "Nissan Leaf"},
		VehicleClicked{Vehicle: "Tesla Model S"},
		TypeClicked{Type: model.TypeHEV},
		BackClicked{},
		VehicleClicked{Vehicle: "Tesla Model S"},
		BackClicked{},
		BackClicked{},
		BackClicked{},
	}

	s := Initial()
	for _, ev := range events {
		next, err := Apply(s, ev, ds)
		if err != nil {
			assert.Equal(t, s, next)
			continue
		}

		step := int(next.Level) - int(s.Level)
		assert.True(t, step == 1 || step == -1, "%s -> %s", s, next)
		assert.True(t, next.Valid(), next.String())

		visible, _ := BackControl(next)
		assert.Equal(t, next.Level != AllTypes, visible)
		s = next
	}
	assert.Equal(t, Initial(), s)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "all-types", Initial().String())
	assert.Equal(t, "one-type(PHEV)", State{Level: OneType, Type: model.TypePHEV}.String())
	assert.Equal(t, "one-vehicle(BEV, Nissan Leaf)",
		State{Level: OneVehicle, Type: model.TypeBEV, Vehicle: "Nissan Leaf"}.String())
}

func TestPathTo(t *testing.T) {
	ds := fleet(t)
	targets := []State{
		Initial(),
		{Level: OneType, Type: model.TypePHEV},
		{Level: OneVehicle, Type: model.TypeBEV, Vehicle: "Nissan Leaf"},
	}

	for _, target := range targets {
		t.Run(target.String(), func(t *testing.T) {
			s := Initial()
			for _, ev := range PathTo(target) {
				var err error
				s, err = Apply(s, ev, ds)
				require.NoError(t, err)
			}
			assert.Equal(t, target, s)
		})
	}
}
