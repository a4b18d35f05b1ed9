package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// CoverageScorer judges which rubric key points a transcript addresses by
// fusing exact-phrase hits with embedding similarity.
type CoverageScorer struct {
	emb    Embedder
	policy Policy
}

func NewCoverageScorer(emb Embedder, policy Policy) *CoverageScorer {
	return &CoverageScorer{emb: emb, policy: policy}
}

// KeyPointScore is the per key point outcome of a coverage pass.
type KeyPointScore struct {
	KeyPoint   string
	Similarity float64
	Substring  bool
	Matched    bool
}

// Score returns the matched key points and the 0..1 coverage score. An empty
// rubric or blank transcript yields an empty result without calling the
// embedder. Any embedder failure is returned as ErrScoringUnavailable.
func (s *CoverageScorer) Score(ctx context.Context, transcript string, keyPoints []string) (CoverageResult, error) {
	scores, err := s.Detail(ctx, transcript, keyPoints)
	if err != nil {
		return CoverageResult{Matched: []string{}}, err
	}
	return s.summarize(scores), nil
}

// Detail runs the exact and semantic passes and returns one entry per key
// point in rubric order.
func (s *CoverageScorer) Detail(ctx context.Context, transcript string, keyPoints []string) ([]KeyPointScore, error) {
	if len(keyPoints) == 0 || strings.TrimSpace(transcript) == "" {
		return nil, nil
	}
	if s.emb == nil {
		return nil, unavailable("none", "embed", fmt.Errorf("no embedder configured"))
	}

	sims, err := s.similarities(ctx, transcript, keyPoints)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(transcript)
	out := make([]KeyPointScore, len(keyPoints))
	for i, kp := range keyPoints {
		hit := strings.Contains(lower, strings.ToLower(kp))
		sim := sims[i]
		if hit {
			sim = math.Max(sim, s.policy.SubstringFloor)
		}
		out[i] = KeyPointScore{
			KeyPoint:   kp,
			Similarity: sim,
			Substring:  hit,
			Matched:    hit || sim >= s.policy.MatchThreshold,
		}
	}
	return out, nil
}

func (s *CoverageScorer) similarities(ctx context.Context, transcript string, keyPoints []string) ([]float64, error) {
	name := backendName(s.emb)

	tv, err := s.emb.Embed(ctx, []string{transcript})
	if err != nil {
		return nil, unavailable(name, "embed transcript", err)
	}
	if len(tv) != 1 {
		return nil, unavailable(name, "embed transcript", fmt.Errorf("got %d vectors for 1 text", len(tv)))
	}
	kv, err := s.emb.Embed(ctx, keyPoints)
	if err != nil {
		return nil, unavailable(name, "embed key points", err)
	}
	if len(kv) != len(keyPoints) {
		return nil, unavailable(name, "embed key points", fmt.Errorf("got %d vectors for %d texts", len(kv), len(keyPoints)))
	}

	dim := len(tv[0])
	if dim == 0 {
		return nil, unavailable(name, "embed transcript", fmt.Errorf("empty vector"))
	}
	sims := make([]float64, len(kv))
	for i, v := range kv {
		if len(v) != dim {
			return nil, unavailable(name, "embed key points", fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim))
		}
		sims[i] = CosineSimilarity(tv[0], v)
		if math.IsNaN(sims[i]) {
			return nil, unavailable(name, "embed key points", fmt.Errorf("non-finite similarity for key point %d", i))
		}
	}
	return sims, nil
}

func (s *CoverageScorer) summarize(scores []KeyPointScore) CoverageResult {
	res := CoverageResult{Matched: []string{}}
	n := len(scores)
	if n == 0 {
		return res
	}

	ranked := make([]KeyPointScore, n)
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	for _, ks := range ranked {
		if ks.Matched {
			res.Matched = append(res.Matched, ks.KeyPoint)
		}
	}

	k := int(math.Ceil(s.policy.TopKFraction * float64(n)))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	var top float64
	for _, ks := range ranked[:k] {
		top += ks.Similarity
	}
	top /= float64(k)

	hitRate := float64(len(res.Matched)) / float64(n)
	res.Score = round3(clamp01(s.policy.HitRateWeight*hitRate + s.policy.SimilarityWeight*clamp01(top)))
	return res
}
