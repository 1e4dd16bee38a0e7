// Package similarity compares named-dimension score vectors.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDimensionMismatch is returned when two vectors do not share the same key set.
var ErrDimensionMismatch = errors.New("DIMENSION_MISMATCH")

// Vector maps a dimension name to its score.
type Vector map[string]float64

// Magnitude returns the Euclidean length of v.
func Magnitude(v Vector) float64 {
	sum := 0.0
	for _, k := range sortedKeys(v) {
		sum += v[k] * v[k]
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length. A zero-magnitude vector yields a zero
// vector with the same keys.
func Normalize(v Vector) Vector {
	out := make(Vector, len(v))
	mag := Magnitude(v)
	for k, val := range v {
		if mag == 0 {
			out[k] = 0
			continue
		}
		out[k] = val / mag
	}
	return out
}

// CosineSimilarity returns the cosine of the angle between a and b clamped to [0, 1].
func CosineSimilarity(a, b Vector) (float64, error) {
	if err := sameKeys(a, b); err != nil {
		return 0, err
	}

	na := Normalize(a)
	nb := Normalize(b)

	dot := 0.0
	for _, k := range sortedKeys(na) {
		dot += na[k] * nb[k]
	}

	return clamp(dot, 0, 1), nil
}

func sameKeys(a, b Vector) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d dimensions", ErrDimensionMismatch, len(a), len(b))
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return fmt.Errorf("%w: %q missing from second vector", ErrDimensionMismatch, k)
		}
	}
	return nil
}

func sortedKeys(v Vector) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
