package engine

import (
	"testing"
	"time"

	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDataset(t *testing.T, rows dataset.RawRows) *model.Dataset {
	t.Helper()
	ds, err := dataset.Load(rows, dataset.Options{})
	require.NoError(t, err)
	return ds
}

func fleet(t *testing.T) *model.Dataset {
	return loadDataset(t, dataset.RawRows{
		{"", "Toyota", "Honda", "Chevrolet", "Nissan", "Tesla", "Toyota"},
		{"", "Prius", "Insight", "Volt", "Leaf", "Model S", "Mirai"},
		{"", "HEV", "HEV", "PHEV", "BEV", "BEV", "FCEV"},
		{"2016-01", "100", "20", "30", "40", "50", "0"},
		{"2016-02", "110", "0", "35", "70", "60", "1"},
		{"2016-03", "90", "25", "40", "45", "10", "2"},
	})
}

func TestEngine_ClickBand(t *testing.T) {
	e := New(fleet(t))

	require.NoError(t, e.ClickBand(view.TypesLayer, "BEV"))
	assert.Equal(t, view.State{Level: view.OneType, Type: model.TypeBEV}, e.State())
	assert.True(t, e.Busy())

	// type bands go unclickable as soon as the transition starts
	err := e.ClickBand(view.TypesLayer, "HEV")
	assert.ErrorIs(t, err, ErrUnclickable)

	// vehicle bands do not exist until the types have been reshaped
	err = e.ClickBand(view.VehiclesLayer, "Nissan Leaf")
	assert.ErrorIs(t, err, ErrNoTarget)

	e.Finish()
	require.NoError(t, e.ClickBand(view.VehiclesLayer, "Nissan Leaf"))
	assert.Equal(t, view.OneVehicle, e.State().Level)

	// the other vehicles fade out and lose clickability immediately
	err = e.ClickBand(view.VehiclesLayer, "Tesla Model S")
	assert.ErrorIs(t, err, ErrUnclickable)
}

func TestEngine_ClickBack(t *testing.T) {
	e := New(fleet(t))

	err := e.ClickBack()
	assert.ErrorIs(t, err, ErrUnclickable)

	require.NoError(t, e.ClickBand(view.TypesLayer, "HEV"))

	// the back control appears only once the drill-down has played
	e.Advance(3 * time.Second)
	assert.ErrorIs(t, e.ClickBack(), ErrUnclickable)

	e.Advance(time.Second)
	require.NoError(t, e.ClickBack())
	assert.Equal(t, view.Initial(), e.State())

	// and hides at once when clicked
	assert.ErrorIs(t, e.ClickBack(), ErrUnclickable)
	e.Finish()
	assert.False(t, e.Busy())
}

func TestEngine_ClickAt(t *testing.T) {
	e := New(fleet(t))

	assert.ErrorIs(t, e.ClickAt(0.5, 1.5), ErrNoTarget)

	// January: HEV occupies the bottom 120/276 of the plot
	require.NoError(t, e.ClickAt(0, 0.2))
	assert.Equal(t, model.TypeHEV, e.State().Type)
	e.Finish()

	// Prius fills the bottom 100/120 of the HEV view
	require.NoError(t, e.ClickAt(0, 0.5))
	assert.Equal(t, model.VehicleKey("Toyota Prius"), e.State().Vehicle)
	e.Finish()

	// the single vehicle is clickable but there is nowhere further to go
	err := e.ClickAt(0, 0.5)
	assert.ErrorIs(t, err, view.ErrIgnoredEvent)
	assert.Equal(t, view.OneVehicle, e.State().Level)
}

func TestEngine_ClickCanvas(t *testing.T) {
	c := chart.DefaultCanvas()
	e := NewWithConfig(fleet(t), Config{Animations: false})

	// bottom left corner of the plot is HEV in January
	require.NoError(t, e.ClickCanvas(c, 41, 455))
	assert.Equal(t, view.OneType, e.State().Level)
	assert.False(t, e.Busy())

	require.NoError(t, e.ClickCanvas(c, 45, 30))
	assert.Equal(t, view.Initial(), e.State())

	assert.ErrorIs(t, e.ClickCanvas(c, 5, 5), ErrNoTarget)
}

func TestEngine_DisabledAnimations(t *testing.T) {
	e := NewWithConfig(fleet(t), Config{Animations: false})

	require.NoError(t, e.ClickBand(view.TypesLayer, "PHEV"))
	assert.False(t, e.Busy())
	assert.Equal(t, "Type: PHEV", e.Scene().Label)
	assert.Equal(t, 40.0, e.Scene().AxisDomain)

	require.NoError(t, e.ClickBand(view.VehiclesLayer, "Chevrolet Volt"))
	require.NoError(t, e.ClickBack())
	require.NoError(t, e.ClickBack())
	assert.Equal(t, view.Initial(), e.State())
	assert.Equal(t, 276.0, e.Scene().AxisDomain)
}

func TestEngine_DispatchRejected(t *testing.T) {
	e := New(fleet(t))

	err := e.Dispatch(view.VehicleClicked{Vehicle: "Toyota Prius"})
	assert.ErrorIs(t, err, view.ErrIgnoredEvent)
	assert.Equal(t, view.Initial(), e.State())
	assert.False(t, e.Busy())
}

func TestWalk(t *testing.T) {
	ds := fleet(t)

	e, err := Walk(ds, view.TypeClicked{Type: model.TypeBEV}, view.VehicleClicked{Vehicle: "Tesla Model S"})
	require.NoError(t, err)
	assert.Equal(t, "Model: Tesla Model S (BEV)", e.Scene().Label)
	assert.Equal(t, 60.0, e.Scene().AxisDomain)
	assert.Equal(t, "← Back to all BEV vehicles", e.Scene().Back.Label)

	_, err = Walk(ds, view.BackClicked{})
	assert.ErrorIs(t, err, view.ErrIgnoredEvent)
	assert.Contains(t, err.Error(), "event 1")
}

func TestScenario_TwoVehicles(t *testing.T) {
	ds := loadDataset(t, dataset.RawRows{
		{"", "A", "B"},
		{"", "X", "Y"},
		{"", "HEV", "BEV"},
		{"2017-05", "10", "5"},
	})
	require.Len(t, ds.Types, 1)
	assert.Equal(t, model.MonthlyTypeTotals{Date: ds.Types[0].Date, Label: "2017-05", HEV: 10, BEV: 5}, ds.Types[0])

	e := New(ds)
	require.NoError(t, e.ClickBand(view.TypesLayer, "HEV"))
	assert.Equal(t, view.OneType, e.State().Level)
	assert.Equal(t, model.TypeHEV, e.State().Type)
	e.Finish()
	assert.Equal(t, 10.0, e.Scene().AxisDomain)

	require.NoError(t, e.ClickBand(view.VehiclesLayer, "A X"))
	assert.Equal(t, view.OneVehicle, e.State().Level)
	e.Finish()
	assert.Equal(t, 10.0, e.Scene().AxisDomain)

	visible, _ := view.BackControl(e.State())
	assert.True(t, visible)
	assert.Equal(t, 1.0, e.Scene().Back.Opacity)
}
