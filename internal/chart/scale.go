package chart

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// LinearScale maps a numeric domain onto a range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale returns a scale from [lo, hi] onto [r0, r1].
func NewLinearScale(lo, hi, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{lo, hi}, Range: [2]float64{r0, r1}}
}

// Scale maps a domain value into the range.
func (s LinearScale) Scale(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	return s.Range[0] + (v-s.Domain[0])/d*(s.Range[1]-s.Range[0])
}

// Invert maps a range value back into the domain.
func (s LinearScale) Invert(r float64) float64 {
	d := s.Range[1] - s.Range[0]
	if d == 0 {
		return s.Domain[0]
	}
	return s.Domain[0] + (r-s.Range[0])/d*(s.Domain[1]-s.Domain[0])
}

// Ticks returns roughly count evenly spaced round values within the domain.
// Steps are 1, 2 or 5 times a power of ten.
func (s LinearScale) Ticks(count int) []float64 {
	lo, hi := s.Domain[0], s.Domain[1]
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi || count <= 0 {
		return []float64{lo}
	}

	step := TickStep(lo, hi, count)
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)

	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}

// TickStep returns the tick spacing Ticks uses for [lo, hi].
func TickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(max(count, 1))
	power := math.Floor(math.Log10(raw))
	errRatio := raw / math.Pow(10, power)

	factor := 1.0
	switch {
	case errRatio >= math.Sqrt(50):
		factor = 10
	case errRatio >= math.Sqrt(10):
		factor = 5
	case errRatio >= math.Sqrt(2):
		factor = 2
	}
	return factor * math.Pow(10, power)
}

// FormatTick renders a tick value with thousands separators and as many
// decimals as step needs.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// TimeScale maps a time domain linearly onto a range.
type TimeScale struct {
	Start time.Time
	End   time.Time
	Range [2]float64
}

// NewTimeScale spans the first and last of dates onto [r0, r1].
func NewTimeScale(dates []time.Time, r0, r1 float64) TimeScale {
	s := TimeScale{Range: [2]float64{r0, r1}}
	for i, d := range dates {
		if i == 0 || d.Before(s.Start) {
			s.Start = d
		}
		if i == 0 || d.After(s.End) {
			s.End = d
		}
	}
	return s
}

// Scale maps a time into the range.
func (s TimeScale) Scale(t time.Time) float64 {
	span := s.End.Sub(s.Start)
	if span <= 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	return s.Range[0] + float64(t.Sub(s.Start))/float64(span)*(s.Range[1]-s.Range[0])
}

// monthSteps are the month intervals MonthTicks chooses from.
var monthSteps = []int{1, 2, 3, 6, 12, 24, 60, 120}

// MonthTicks returns at most count first-of-month dates within the domain,
// spaced by a whole number of months and aligned to that interval.
func (s TimeScale) MonthTicks(count int) []time.Time {
	if s.End.Before(s.Start) || count <= 0 {
		return nil
	}

	first := time.Date(s.Start.Year(), s.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if first.Before(s.Start) {
		first = first.AddDate(0, 1, 0)
	}
	months := monthIndex(s.End) - monthIndex(first) + 1

	step := monthSteps[len(monthSteps)-1]
	for _, m := range monthSteps {
		if (months+m-1)/m <= count {
			step = m
			break
		}
	}

	var ticks []time.Time
	for t := first; !t.After(s.End); t = t.AddDate(0, 1, 0) {
		if monthIndex(t)%step == 0 {
			ticks = append(ticks, t)
		}
	}
	if len(ticks) == 0 {
		ticks = append(ticks, first)
	}
	return ticks
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
