package chart

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/drivetrain/internal/view"
)

// Player plays view timelines against a scene on its own clock.
//
// Effects start in timeline order once their offset has passed. Starting an
// animated effect on a property that is already animating replaces the older
// animation, which keeps its progress so far. A timeline played while another
// is still running overlaps it.
type Player struct {
	scene   *Scene
	clock   time.Duration
	seq     int
	pending []scheduled
	running []*tween
}

type scheduled struct {
	start  time.Duration
	seq    int
	effect view.Effect
}

// tween animates one property from a start value to an end value.
type tween struct {
	key      string
	start    time.Duration
	duration time.Duration
	apply    func(progress float64)
}

// NewPlayer returns a player driving scene.
func NewPlayer(scene *Scene) *Player {
	return &Player{scene: scene}
}

// Scene returns the scene being played.
func (p *Player) Scene() *Scene {
	return p.scene
}

// Clock returns the time played so far.
func (p *Player) Clock() time.Duration {
	return p.clock
}

// Busy reports whether any effect is waiting or running.
func (p *Player) Busy() bool {
	return len(p.pending) > 0 || len(p.running) > 0
}

// Play schedules a timeline from the current clock. Effects at offset zero
// start immediately.
func (p *Player) Play(tl view.Timeline) {
	for _, e := range tl {
		p.pending = append(p.pending, scheduled{start: p.clock + e.At, seq: p.seq, effect: e})
		p.seq++
	}
	sort.SliceStable(p.pending, func(i, j int) bool {
		if p.pending[i].start != p.pending[j].start {
			return p.pending[i].start < p.pending[j].start
		}
		return p.pending[i].seq < p.pending[j].seq
	})
	p.Advance(0)
}

// Advance moves the clock forward by dt, starting effects whose time has come
// and interpolating running ones.
func (p *Player) Advance(dt time.Duration) {
	target := p.clock + max(dt, 0)

	for len(p.pending) > 0 && p.pending[0].start <= target {
		next := p.pending[0]
		p.pending = p.pending[1:]
		p.step(next.start)
		p.start(next.effect)
	}
	p.step(target)
}

// Finish plays every scheduled effect to completion.
func (p *Player) Finish() {
	for p.Busy() {
		end := p.clock
		for _, s := range p.pending {
			end = max(end, s.start+s.effect.Duration)
		}
		for _, tw := range p.running {
			end = max(end, tw.start+tw.duration)
		}
		p.Advance(end - p.clock)
	}
}

// step interpolates running tweens up to t and retires finished ones.
func (p *Player) step(t time.Duration) {
	if t > p.clock {
		p.clock = t
	}

	kept := p.running[:0]
	for _, tw := range p.running {
		progress := 1.0
		if tw.duration > 0 {
			progress = float64(p.clock-tw.start) / float64(tw.duration)
		}
		if progress >= 1 {
			tw.apply(1)
			continue
		}
		tw.apply(max(progress, 0))
		kept = append(kept, tw)
	}
	p.running = kept
}

func (p *Player) start(e view.Effect) {
	s := p.scene
	slog.Debug("Starting chart effect", "effect", e.String(), "clock", p.clock)

	switch e.Kind {
	case view.SetClickable:
		if e.Target.Layer == view.BackLayer {
			s.Back.Clickable = e.Clickable
			return
		}
		for _, b := range s.targets(e.Target) {
			b.Clickable = e.Clickable
		}

	case view.FadeTo:
		if e.Target.Layer == view.BackLayer {
			from, to := s.Back.Opacity, e.Opacity
			p.animate("back/opacity", e.Duration, func(f float64) {
				s.Back.Opacity = lerp(from, to, f)
			})
			return
		}
		for _, b := range s.targets(e.Target) {
			band, from, to := b, b.Opacity, e.Opacity
			p.animate(tweenKey(band, "opacity"), e.Duration, func(f float64) {
				band.Opacity = lerp(from, to, f)
			})
		}

	case view.ReshapeTo:
		geometry := s.geometry(e.Shape)
		for _, b := range s.targets(e.Target) {
			g, ok := geometry[b.Key]
			if !ok {
				continue
			}
			band := b
			fromLower, fromUpper := append([]float64(nil), b.Lower...), append([]float64(nil), b.Upper...)
			p.animate(tweenKey(band, "shape"), e.Duration, func(f float64) {
				band.Lower = lerpSlice(fromLower, g.Lower, f)
				band.Upper = lerpSlice(fromUpper, g.Upper, f)
			})
		}

	case view.RescaleAxis:
		from, to := s.AxisDomain, e.Domain
		s.Domain = e.Domain
		p.animate("axis", e.Duration, func(f float64) {
			s.AxisDomain = lerp(from, to, f)
		})

	case view.SetLabel:
		s.Label = e.Text

	case view.AddVehicleBands:
		s.addVehicles(e.Type)

	case view.RemoveVehicleBands:
		s.Vehicles = nil
		p.drop("vehicles/")

	case view.SetBackLabel:
		s.Back.Label = e.Text
	}
}

// animate starts a tween, replacing any running tween on the same property.
func (p *Player) animate(key string, d time.Duration, apply func(float64)) {
	p.drop(key)
	tw := &tween{key: key, start: p.clock, duration: d, apply: apply}
	if d <= 0 {
		apply(1)
		return
	}
	apply(0)
	p.running = append(p.running, tw)
}

// drop cancels running tweens whose key has the given prefix.
func (p *Player) drop(prefix string) {
	kept := p.running[:0]
	for _, tw := range p.running {
		if strings.HasPrefix(tw.key, prefix) {
			continue
		}
		kept = append(kept, tw)
	}
	p.running = kept
}

func tweenKey(b *Band, prop string) string {
	return b.Layer.String() + "/" + b.Key + "/" + prop
}

func lerpSlice(from, to []float64, f float64) []float64 {
	out := make([]float64, len(to))
	for i := range to {
		a := 0.0
		if i < len(from) {
			a = from[i]
		}
		out[i] = lerp(a, to[i], f)
	}
	return out
}
