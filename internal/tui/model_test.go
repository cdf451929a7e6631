package tui

import (
	"testing"
	"time"

	"github.com/Veraticus/drivetrain/internal/engine"
	"github.com/Veraticus/drivetrain/internal/model"
	tuitesting "github.com/Veraticus/drivetrain/internal/tui/testing"
	"github.com/Veraticus/drivetrain/internal/tui/viewmodel"
	"github.com/Veraticus/drivetrain/internal/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func testModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 60, 24
	cfg.EnableAnimations = false
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(tuitesting.Fleet(t), cfg)
}

func TestModel_InitialView(t *testing.T) {
	m := testModel(t)
	r := tuitesting.NewTestRenderer()
	out := tuitesting.StripANSI(r.Render(m))

	assert.Contains(t, out, "Hybrid & electric vehicle sales")
	assert.Contains(t, out, "■ HEV 345")
	assert.Contains(t, out, "All types")
	assert.Contains(t, out, "Jan 2016")
	assert.Contains(t, out, "Type: HEV")
	assert.Equal(t, viewmodel.BandRef{Layer: view.TypesLayer, Key: "HEV"}, m.focus)
}

func TestModel_KeyboardDrillDown(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t), keyTab, keyTab, keyEnter).(Model)

	assert.Equal(t, view.State{Level: view.OneType, Type: model.TypeBEV}, m.engine.State())
	assert.Equal(t, viewmodel.BandRef{Layer: view.VehiclesLayer, Key: "Nissan Leaf"}, m.focus)
	assert.Contains(t, tuitesting.StripANSI(r.Output), "All types › BEV")

	m = r.Send(m, keyTab, keyEnter).(Model)
	assert.Equal(t, view.State{Level: view.OneVehicle, Type: model.TypeBEV, Vehicle: "Tesla Model S"}, m.engine.State())
	assert.Contains(t, tuitesting.StripANSI(r.Output), "All types › BEV › Tesla Model S")

	m = r.Send(m, keyEsc).(Model)
	assert.Equal(t, view.State{Level: view.OneType, Type: model.TypeBEV}, m.engine.State())

	m = r.Send(m, runeKey('b')).(Model)
	assert.Equal(t, view.Initial(), m.engine.State())
}

func TestModel_BackAtTopIsIgnored(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t), keyEsc).(Model)

	assert.ErrorIs(t, m.lastErr, view.ErrIgnoredEvent)
	assert.Equal(t, view.Initial(), m.engine.State())
	assert.Contains(t, tuitesting.StripANSI(r.Output), "Already at the top")
}

func TestModel_PrevBandWraps(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t), tea.KeyMsg{Type: tea.KeyShiftTab}).(Model)
	assert.Equal(t, viewmodel.BandRef{Layer: view.TypesLayer, Key: "FCEV"}, m.focus)
}

func TestModel_AnimatedTransition(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m, cmd := r.Update(testModel(t, WithFeatures(true, true, true, true)), keyEnter)
	require.NotNil(t, cmd)

	mm := m.(Model)
	assert.True(t, mm.ticking)
	assert.True(t, mm.engine.Busy())
	assert.Contains(t, tuitesting.StripANSI(r.Output), "animating")

	m, cmd = r.Update(mm, frameMsg{dt: time.Second})
	require.NotNil(t, cmd, "frames continue while the transition runs")
	assert.True(t, m.(Model).engine.Busy())

	m, cmd = r.Update(m, frameMsg{dt: 3 * time.Second})
	assert.Nil(t, cmd)

	mm = m.(Model)
	assert.False(t, mm.ticking)
	assert.False(t, mm.engine.Busy())
	assert.Equal(t, view.State{Level: view.OneType, Type: model.TypeHEV}, mm.engine.State())
	assert.Equal(t, viewmodel.BandRef{Layer: view.VehiclesLayer, Key: "Toyota Prius"}, mm.focus)
}

func TestModel_BackDuringTransitionIsRefused(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m, _ := r.Update(testModel(t, WithFeatures(true, true, true, true)), keyEnter)
	m, _ = r.Update(m, frameMsg{dt: 500 * time.Millisecond})

	m, cmd := r.Update(m, runeKey('b'))
	assert.Nil(t, cmd)

	mm := m.(Model)
	hev := view.State{Level: view.OneType, Type: model.TypeHEV}
	assert.ErrorIs(t, mm.lastErr, engine.ErrUnclickable)
	assert.Equal(t, hev, mm.engine.State())
	assert.Contains(t, tuitesting.StripANSI(r.Output), "Not clickable right now")

	// the drill-down still lands and back works once it has
	mm.engine.Finish()
	assert.Equal(t, hev, mm.engine.State())
	require.NoError(t, mm.engine.ClickBand(view.VehiclesLayer, "Toyota Prius"))
	mm.engine.Finish()

	require.NoError(t, mm.engine.ClickBack())
	mm.engine.Finish()
	require.NoError(t, mm.engine.ClickBack())
	mm.engine.Finish()
	assert.Equal(t, view.Initial(), mm.engine.State())
	assert.Zero(t, mm.engine.Scene().Back.Opacity)
}

func TestModel_SkipAnimation(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t, WithFeatures(true, true, true, true)), keyEnter, runeKey('f')).(Model)

	assert.False(t, m.engine.Busy())
	assert.Equal(t, "Toyota Prius", m.focus.Key)
}

func TestModel_MouseClicks(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := testModel(t)

	// 24 rows leave a 19 row chart block below the title; its last plot row
	// is screen row 18 and lies on HEV at the left edge.
	require.Equal(t, 19, m.chartHeight())
	m = r.Send(m, leftClick(0, 18)).(Model)
	assert.Equal(t, view.State{Level: view.OneType, Type: model.TypeHEV}, m.engine.State())

	m = r.Send(m, leftClick(2, m.chartTop())).(Model)
	assert.Equal(t, view.Initial(), m.engine.State())
}

func TestModel_MouseDisabled(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t, WithFeatures(false, false, true, true)), leftClick(0, 18)).(Model)
	assert.Equal(t, view.Initial(), m.engine.State())
}

func TestModel_Resize(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m := r.Send(testModel(t), tea.WindowSizeMsg{Width: 100, Height: 30}).(Model)

	assert.Equal(t, 100, m.chart.Layout().Width)
	assert.Equal(t, 25, m.chart.Layout().Height)
}

func TestModel_Quit(t *testing.T) {
	r := tuitesting.NewTestRenderer()
	m, cmd := r.Update(testModel(t), runeKey('q'))
	require.NotNil(t, cmd)

	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.(Model).quitting)
	assert.Empty(t, m.View())
}
