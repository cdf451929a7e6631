// Package chart turns the sales dataset into a drawable scene and plays view
// timelines against it.
//
// Band geometry is kept as fractions of the plot height, so a surface only
// needs its own plot size to draw a scene.
package chart

// Point is the lower and upper bound of a band at one month.
type Point struct {
	Lower float64
	Upper float64
}

// Series is one stacked band.
type Series struct {
	Key    string
	Points []Point
}

// Stack cumulatively sums value over keys, bottom first, for n months.
// Negative values are stacked as zero.
func Stack(n int, keys []string, value func(month int, key string) float64) []Series {
	base := make([]float64, n)
	out := make([]Series, len(keys))

	for k, key := range keys {
		points := make([]Point, n)
		for i := 0; i < n; i++ {
			v := max(value(i, key), 0)
			points[i] = Point{Lower: base[i], Upper: base[i] + v}
			base[i] += v
		}
		out[k] = Series{Key: key, Points: points}
	}

	return out
}
