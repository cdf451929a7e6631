package chart

import (
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScene(t *testing.T) {
	s := NewScene(fleet(t))

	assert.Equal(t, 276.0, s.Domain)
	assert.Equal(t, 276.0, s.AxisDomain)
	assert.Empty(t, s.Label)
	assert.Empty(t, s.Vehicles)
	assert.Zero(t, s.Back.Opacity)
	assert.False(t, s.Back.Clickable)

	require.Len(t, s.Types, 4)
	for i, key := range []string{"HEV", "PHEV", "BEV", "FCEV"} {
		b := s.Types[i]
		assert.Equal(t, key, b.Key)
		assert.Equal(t, "Type: "+key, b.Title)
		assert.True(t, b.Clickable)
		assert.Equal(t, 1.0, b.Opacity)
	}

	// the busiest month reaches the top of the plot
	assert.InDelta(t, 1.0, s.Types[3].Upper[1], 1e-9)
	assert.InDelta(t, 120.0/276, s.Types[0].Upper[0], 1e-9)

	x := s.X()
	assert.Equal(t, 0.0, x[0])
	assert.Equal(t, 1.0, x[2])
}

func TestScene_BandAt(t *testing.T) {
	s := NewScene(fleet(t))
	feb := s.X()[1]

	// February stacks to 110, 145, 275 and 276
	tests := []struct {
		y    float64
		want string
	}{
		{y: 0.2, want: "HEV"},
		{y: 0.45, want: "PHEV"},
		{y: 0.9, want: "BEV"},
		{y: 0.998, want: "FCEV"},
	}
	for _, tt := range tests {
		b, ok := s.BandAt(feb, tt.y)
		require.True(t, ok, "y=%.3f", tt.y)
		assert.Equal(t, tt.want, b.Key)
	}

	_, ok := s.BandAt(feb, -0.1)
	assert.False(t, ok)
	_, ok = s.BandAt(1.5, 0.2)
	assert.False(t, ok)
}

func TestScene_BandAtInterpolates(t *testing.T) {
	s := NewScene(fleet(t))
	hev := s.Types[0]

	mid := (s.X()[1] + s.X()[2]) / 2
	lo, hi := s.BoundsAt(hev, mid)
	assert.Zero(t, lo)
	assert.InDelta(t, (hev.Upper[1]+hev.Upper[2])/2, hi, 1e-9)
}

func TestScene_BandAtSkipsHiddenBands(t *testing.T) {
	s := NewScene(fleet(t))
	feb := s.X()[1]

	s.Types[0].Opacity = 0
	_, ok := s.BandAt(feb, 0.2)
	assert.False(t, ok)

	// unclickable bands are still found; clickability is the caller's concern
	s.Types[1].Clickable = false
	b, ok := s.BandAt(feb, 0.45)
	require.True(t, ok)
	assert.Equal(t, "PHEV", b.Key)
}

func TestScene_VehiclesDrawAboveTypes(t *testing.T) {
	s := NewScene(fleet(t))
	p := NewPlayer(s)
	p.Play(view.Timeline{{Kind: view.AddVehicleBands, Target: view.Vehicles(), Type: "HEV"}})

	b, ok := s.BandAt(0, 0.1)
	require.True(t, ok)
	assert.Equal(t, view.VehiclesLayer, b.Layer)
	assert.Equal(t, "Toyota Prius", b.Key)
}

func TestScene_SingleMonth(t *testing.T) {
	ds, err := dataset.Load(dataset.RawRows{
		{"", "A", "B"},
		{"", "X", "Y"},
		{"", "HEV", "BEV"},
		{"2017-05", "10", "5"},
	}, dataset.Options{})
	require.NoError(t, err)

	s := NewScene(ds)
	assert.Equal(t, 15.0, s.Domain)
	assert.Equal(t, 0.5, s.X()[0])

	b, ok := s.BandAt(0.1, 0.5)
	require.True(t, ok)
	assert.Equal(t, "HEV", b.Key)

	lower, upper := s.Values(s.Types[2])
	assert.InDelta(t, 10.0, lower[0], 1e-9)
	assert.InDelta(t, 15.0, upper[0], 1e-9)
}
