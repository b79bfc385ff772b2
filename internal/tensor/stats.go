package tensor

import "math"

// HeadSize is the number of leading values kept in Stats.Head.
const HeadSize = 5

type Stats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Head  []float32
}

// Describe computes min, max and mean over values. It reports false for an
// empty slice.
func Describe(values []float32) (Stats, bool) {
	if len(values) == 0 {
		return Stats{}, false
	}
	s := Stats{
		Count: len(values),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	var sum float64
	for _, v := range values {
		f := float64(v)
		if f < s.Min {
			s.Min = f
		}
		if f > s.Max {
			s.Max = f
		}
		sum += f
	}
	s.Mean = sum / float64(len(values))
	n := HeadSize
	if n > len(values) {
		n = len(values)
	}
	s.Head = append([]float32(nil), values[:n]...)
	return s, true
}

// Widen converts integer tensor data to float32 without dequantizing.
func Widen[T ~int8 | ~uint8 | ~int16 | ~int32 | ~int64](f []T) []float32 {
	loc := make([]float32, len(f))
	for i, v := range f {
		loc[i] = float32(v)
	}
	return loc
}
