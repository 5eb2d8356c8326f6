package classifier

import (
	"context"
	"hash/fnv"
)

// Mock is a deterministic stand-in for the real scoring model, used in
// development when no classifier endpoint is configured. Scores are derived
// from the text so repeated calls agree, spread over [0, 0.9).
type Mock struct {
	// Labels the mock emits a score for.
	Labels []string
}

func NewMock(labels []string) *Mock {
	return &Mock{Labels: labels}
}

func (m *Mock) Classify(_ context.Context, text string) (map[string]float64, error) {
	scores := make(map[string]float64, len(m.Labels))
	for _, label := range m.Labels {
		h := fnv.New64a()
		h.Write([]byte(label))
		h.Write([]byte{0})
		h.Write([]byte(text))
		scores[label] = float64(h.Sum64()%1000) / 1000 * 0.9
	}
	return scores, nil
}

func (m *Mock) Close() error { return nil }
