package domain

import "math"

// normEpsilon keeps Normalize defined on the zero vector.
const normEpsilon = 1e-10

// Normalize scales v to unit length in place and returns it.
// Idempotent: normalizing a unit vector leaves it unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum) + normEpsilon
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Dot returns the dot product of a and b. For unit vectors this is the
// cosine similarity, in [-1, 1].
func Dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
