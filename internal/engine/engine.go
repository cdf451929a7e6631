// Package engine drives the drill-down chart: it turns clicks into view
// transitions and plays their effects on the scene.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/drivetrain/internal/chart"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/view"
)

var (
	// ErrUnclickable is returned for clicks on elements that are hidden or mid-animation.
	ErrUnclickable = errors.New("element is not clickable")
	// ErrNoTarget is returned for clicks that hit no band.
	ErrNoTarget = errors.New("nothing to click there")
)

// Engine owns the dataset, the current view state and the scene player.
// It is not safe for concurrent use.
type Engine struct {
	ds     *model.Dataset
	state  view.State
	player *chart.Player
	config Config
}

// Config holds configuration options for the engine.
type Config struct {
	// Animations plays transitions over time. When false every transition
	// completes as soon as it is dispatched.
	Animations bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Animations: true}
}

// New creates an engine at the top level of ds.
func New(ds *model.Dataset) *Engine {
	return NewWithConfig(ds, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ds *model.Dataset, config Config) *Engine {
	return &Engine{
		ds:     ds,
		state:  view.Initial(),
		player: chart.NewPlayer(chart.NewScene(ds)),
		config: config,
	}
}

// State returns the current view state. It changes as soon as a click is
// accepted, before the animation has played.
func (e *Engine) State() view.State {
	return e.state
}

// Scene returns the scene as currently animated.
func (e *Engine) Scene() *chart.Scene {
	return e.player.Scene()
}

// Dataset returns the dataset being explored.
func (e *Engine) Dataset() *model.Dataset {
	return e.ds
}

// Busy reports whether a transition is still playing.
func (e *Engine) Busy() bool {
	return e.player.Busy()
}

// Dispatch applies an event and starts its transition.
func (e *Engine) Dispatch(ev view.Event) error {
	next, err := view.Apply(e.state, ev, e.ds)
	if err != nil {
		slog.Debug("Ignored chart event", "event", ev.String(), "state", e.state.String(), "error", err)
		return err
	}

	timeline, err := view.Plan(e.state, next, e.ds)
	if err != nil {
		return fmt.Errorf("failed to plan transition: %w", err)
	}

	slog.Debug("Chart transition",
		"from", e.state.String(),
		"to", next.String(),
		"effects", len(timeline),
		"duration", timeline.Duration())

	e.state = next
	e.player.Play(timeline)
	if !e.config.Animations {
		e.player.Finish()
	}
	return nil
}

// ClickBand handles a click on the band with the given key.
func (e *Engine) ClickBand(layer view.Layer, key string) error {
	band, ok := e.Scene().Band(layer, key)
	if !ok {
		return fmt.Errorf("%w: no %s band %q", ErrNoTarget, layer, key)
	}
	return e.clickBand(band)
}

// ClickAt handles a click on the plot, given as fractions of its width and
// height with y measured up from the bottom.
func (e *Engine) ClickAt(xFrac, yFrac float64) error {
	band, ok := e.Scene().BandAt(xFrac, yFrac)
	if !ok {
		return ErrNoTarget
	}
	return e.clickBand(band)
}

// ClickBack handles a click on the back control.
func (e *Engine) ClickBack() error {
	if !e.Scene().Back.Clickable {
		slog.Debug("Ignored click on back control", "state", e.state.String())
		return fmt.Errorf("%w: back control", ErrUnclickable)
	}
	return e.Dispatch(view.BackClicked{})
}

// ClickCanvas handles a click at canvas coordinates, checking the back
// control before the plot.
func (e *Engine) ClickCanvas(c chart.Canvas, x, y float64) error {
	back := e.Scene().Back
	if back.Opacity > 0 && c.BackRect(back.Label).Contains(x, y) {
		return e.ClickBack()
	}
	xFrac, yFrac, ok := c.ToPlot(x, y)
	if !ok {
		return ErrNoTarget
	}
	return e.ClickAt(xFrac, yFrac)
}

func (e *Engine) clickBand(band *chart.Band) error {
	if !band.Clickable || !band.Visible() {
		slog.Debug("Ignored click on band", "band", band.Key, "layer", band.Layer.String())
		return fmt.Errorf("%w: %s band %q", ErrUnclickable, band.Layer, band.Key)
	}

	switch band.Layer {
	case view.TypesLayer:
		return e.Dispatch(view.TypeClicked{Type: model.TypeKey(band.Key)})
	case view.VehiclesLayer:
		return e.Dispatch(view.VehicleClicked{Vehicle: model.VehicleKey(band.Key)})
	default:
		return fmt.Errorf("%w: %s", ErrNoTarget, band.Layer)
	}
}

// Advance plays dt of animation time.
func (e *Engine) Advance(dt time.Duration) {
	e.player.Advance(dt)
}

// Finish completes every running transition.
func (e *Engine) Finish() {
	e.player.Finish()
}

// Walk replays events from the top level of ds, letting each transition
// finish before the next event. It stops at the first rejected event.
func Walk(ds *model.Dataset, events ...view.Event) (*Engine, error) {
	e := New(ds)
	for i, ev := range events {
		if err := e.Dispatch(ev); err != nil {
			return e, fmt.Errorf("event %d (%s): %w", i+1, ev, err)
		}
		e.Finish()
	}
	return e, nil
}
