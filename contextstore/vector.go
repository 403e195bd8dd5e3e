package contextstore

import (
	"errors"
	"math"
)

var errDimensionMismatch = errors.New("embedding dimensions differ")

// cosineSimilarity returns the cosine of the angle between a and b.
// A zero vector has similarity 0 with everything.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
