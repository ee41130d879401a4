package palette

import (
	"math"
)

// coerce fits a parameter vector to length elements. Longer input is
// truncated. Shorter input is recycled when recycle is set and rejected
// otherwise. Non-finite values are always rejected.
func coerce(key string, v []float64, length int, recycle bool) ([]float64, error) {
	if len(v) == 0 {
		return nil, badSetting(key, "no values given")
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, badSetting(key, "value %v at index %d is not finite", x, i)
		}
	}
	if len(v) >= length {
		return append([]float64(nil), v[:length]...), nil
	}
	if !recycle {
		return nil, badSetting(key, "expected %d values, got %d", length, len(v))
	}
	out := make([]float64, length)
	for i := range out {
		out[i] = v[i%len(v)]
	}
	return out, nil
}

// linspace returns n evenly spaced values from a to b inclusive.
// A single value is a.
func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	out[n-1] = b
	return out
}

func repeat(x float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = x
	}
	return out
}
