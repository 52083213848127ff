package rolling

import (
	"math"
)

// Reducer folds the values of one window into a single result.
type Reducer interface {
	// Reduce is called with the window's values, NaN included.
	Reduce(values []float64) float64
}

// ReducerFunc is a function type that implements Reducer.
type ReducerFunc func(values []float64) float64

// Reduce calls the function.
func (f ReducerFunc) Reduce(values []float64) float64 {
	return f(values)
}

var (
	// Sum adds the non-NaN values. An empty window sums to zero.
	Sum Reducer = ReducerFunc(sum)
	// Mean averages the non-NaN values.
	Mean Reducer = ReducerFunc(mean)
	// Count counts the non-NaN values.
	Count Reducer = ReducerFunc(count)
	// Min returns the smallest non-NaN value.
	Min Reducer = ReducerFunc(minimum)
	// Max returns the largest non-NaN value.
	Max Reducer = ReducerFunc(maximum)
)

// ReducerByName looks up one of the built-in reducers.
func ReducerByName(name string) (Reducer, bool) {
	switch name {
	case "sum":
		return Sum, true
	case "mean":
		return Mean, true
	case "count":
		return Count, true
	case "min":
		return Min, true
	case "max":
		return Max, true
	default:
		return nil, false
	}
}

func observations(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		if !math.IsNaN(v) {
			s += v
		}
	}
	return s
}

func mean(values []float64) float64 {
	n := observations(values)
	if n == 0 {
		return math.NaN()
	}
	return sum(values) / float64(n)
}

func count(values []float64) float64 {
	return float64(observations(values))
}

func minimum(values []float64) float64 {
	out := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v < out {
			out = v
		}
	}
	return out
}

func maximum(values []float64) float64 {
	out := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}
