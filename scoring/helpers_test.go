package scoring_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
)

func absf(x float64) float64 { return math.Abs(x) }

// simVec returns a unit vector whose cosine with [1,0] is sim.
func simVec(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

// stubEmbedder maps known texts to fixed vectors; unknown texts get fallback.
type stubEmbedder struct {
	vecs     map[string][]float32
	fallback []float32
	err      error
	calls    atomic.Int32
}

func newStub(sims map[string]float64) *stubEmbedder {
	s := &stubEmbedder{vecs: map[string][]float32{}, fallback: simVec(0)}
	for text, sim := range sims {
		s.vecs[text] = simVec(sim)
	}
	return s
}

func (s *stubEmbedder) Name() string { return "stub" }

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vecs[t]; ok {
			out[i] = v
			continue
		}
		out[i] = s.fallback
	}
	return out, nil
}

// transcriptStub embeds the transcript as [1,0] and key points by sims.
func transcriptStub(transcript string, sims map[string]float64) *stubEmbedder {
	s := newStub(sims)
	s.vecs[transcript] = []float32{1, 0}
	return s
}

type shortEmbedder struct{}

func (shortEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	return [][]float32{{1, 0}}, nil
}

var errBackendDown = errors.New("connection refused")
