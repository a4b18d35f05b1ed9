package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// Analyzer runs the full scoring pipeline for one answer. It holds no
// per-call state and may be shared across goroutines.
type Analyzer struct {
	policy   Policy
	coverage *CoverageScorer
	fillers  *FillerDetector
	weights  map[string]float64
	log      *logrus.Entry
}

type Option func(*Analyzer)

func WithPolicy(p Policy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithFillers replaces the default filler lexicon.
func WithFillers(lexicon []string) Option {
	return func(a *Analyzer) { a.fillers = NewFillerDetector(lexicon) }
}

// WithImportance sets per key point weights used to order missing points in
// tips.
func WithImportance(weights map[string]float64) Option {
	return func(a *Analyzer) {
		a.weights = make(map[string]float64, len(weights))
		for k, v := range weights {
			a.weights[k] = v
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(a *Analyzer) { a.log = l }
}

func NewAnalyzer(emb Embedder, opts ...Option) *Analyzer {
	a := &Analyzer{policy: DefaultPolicy()}
	for _, o := range opts {
		o(a)
	}
	if a.fillers == nil {
		a.fillers = NewFillerDetector(nil)
	}
	a.coverage = NewCoverageScorer(emb, a.policy)
	return a
}

// Analyze scores in.Transcript against in.KeyPoints. An embedding backend
// failure is returned wrapped in ErrScoringUnavailable; no partial result is
// produced.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*AnalysisResult, error) {
	start := time.Now()

	wpm := WordsPerMinute(in.Transcript, in.DurationS)
	fil := a.fillers.Detect(in.Transcript)
	cov, err := a.coverage.Score(ctx, in.Transcript, in.KeyPoints)
	if err != nil {
		return nil, err
	}

	res := &AnalysisResult{
		Role:     in.Role,
		Coverage: cov,
		Filler:   fil,
		WPM:      int(math.Round(wpm)),
		Tips:     Tips(cov, fil, wpm, in.KeyPoints, a.weights, a.policy),
		Overall:  OverallScore(cov, fil, wpm, a.policy),
	}
	if err := res.Validate(len(in.KeyPoints)); err != nil {
		return nil, fmt.Errorf("analysis invariant: %w", err)
	}

	if a.log != nil {
		a.log.WithFields(logrus.Fields{
			"role":     in.Role,
			"coverage": cov.Score,
			"fillers":  fil.Total,
			"wpm":      res.WPM,
			"overall":  res.Overall,
			"elapsed":  time.Since(start),
		}).Debug("analysis complete")
	}
	return res, nil
}
