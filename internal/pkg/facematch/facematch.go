package facematch

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned for a threshold outside (0, 1].
var ErrInvalidConfig = errors.New("invalid face match configuration")

// Embedding is a face descriptor produced by the client-side model.
type Embedding []float64

// ParseEmbedding decodes a stored JSON array baseline. An empty string yields a nil embedding.
func ParseEmbedding(raw string) (Embedding, error) {
	if raw == "" {
		return nil, nil
	}
	var e Embedding
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	return e, nil
}

// String encodes the embedding as a JSON array for storage.
func (e Embedding) String() string {
	b, err := json.Marshal([]float64(e))
	if err != nil {
		return "[]"
	}
	return string(b)
}

// CosineSimilarity returns dot(a,b)/(|a||b|).
// It returns NaN when the lengths differ, a vector is empty or a norm is zero.
func CosineSimilarity(a, b Embedding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// IsUndefined reports whether similarity is the "no comparison possible" sentinel.
func IsUndefined(similarity float64) bool {
	return math.IsNaN(similarity)
}

// IsMatch reports whether similarity is a real number at or above threshold.
func IsMatch(similarity, threshold float64) bool {
	if IsUndefined(similarity) {
		return false
	}
	return similarity >= threshold
}

// Matcher compares probes against a baseline with a fixed threshold.
type Matcher struct {
	threshold float64
}

func NewMatcher(threshold float64) (Matcher, error) {
	if math.IsNaN(threshold) || threshold <= 0 || threshold > 1 {
		return Matcher{}, fmt.Errorf("%w: threshold must be in (0, 1], got %v", ErrInvalidConfig, threshold)
	}
	return Matcher{threshold: threshold}, nil
}

func (m Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the similarity of probe to baseline and whether it passes.
func (m Matcher) Match(baseline, probe Embedding) (float64, bool) {
	similarity := CosineSimilarity(baseline, probe)
	return similarity, IsMatch(similarity, m.threshold)
}
