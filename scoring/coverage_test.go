package scoring_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/interview-coach/coach-pipeline/scoring"
)

func TestCoverageEmptyRubric(t *testing.T) {
	emb := newStub(nil)
	cs := scoring.NewCoverageScorer(emb, scoring.DefaultPolicy())
	got, err := cs.Score(context.Background(), "any text at all", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 0 || len(got.Matched) != 0 || got.Matched == nil {
		t.Errorf("got %+v, want empty non-nil matched and 0 score", got)
	}
	if emb.calls.Load() != 0 {
		t.Errorf("embedder called %d times for empty rubric", emb.calls.Load())
	}
}

func TestCoverageBlankTranscript(t *testing.T) {
	emb := newStub(nil)
	cs := scoring.NewCoverageScorer(emb, scoring.DefaultPolicy())
	got, err := cs.Score(context.Background(), " \n\t", []string{"impact"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 0 || len(got.Matched) != 0 {
		t.Errorf("got %+v", got)
	}
	if emb.calls.Load() != 0 {
		t.Errorf("embedder called for blank transcript")
	}
}

func TestCoverageAllSubstrings(t *testing.T) {
	transcript := "Requirements first, then Trade-Offs, scalability, bottlenecks and monitoring."
	kps := []string{"requirements", "trade-offs", "scalability", "bottlenecks", "monitoring"}
	// key points are orthogonal to the transcript, so only the substring floor counts
	cs := scoring.NewCoverageScorer(transcriptStub(transcript, nil), scoring.DefaultPolicy())
	got, err := cs.Score(context.Background(), transcript, kps)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Matched, kps) {
		t.Errorf("matched: got %v, want %v", got.Matched, kps)
	}
	// hit rate 1, every similarity floored at 0.8
	if absf(got.Score-0.92) > 1e-9 {
		t.Errorf("score: got %f, want 0.92", got.Score)
	}
}

func TestCoverageFusionAndOrdering(t *testing.T) {
	transcript := "we talked about gamma and other things"
	kps := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	emb := transcriptStub(transcript, map[string]float64{
		"alpha":   0.5,
		"beta":    0.2,
		"gamma":   0.1,
		"delta":   0.5,
		"epsilon": 0.4,
	})
	cs := scoring.NewCoverageScorer(emb, scoring.DefaultPolicy())

	detail, err := cs.Detail(context.Background(), transcript, kps)
	if err != nil {
		t.Fatal(err)
	}
	if !detail[2].Substring || absf(detail[2].Similarity-0.8) > 1e-6 {
		t.Errorf("gamma: got %+v, want substring hit floored at 0.8", detail[2])
	}
	if detail[1].Matched {
		t.Errorf("beta below threshold should not match: %+v", detail[1])
	}

	got, err := cs.Score(context.Background(), transcript, kps)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"gamma", "alpha", "delta", "epsilon"}
	if !reflect.DeepEqual(got.Matched, want) {
		t.Errorf("matched: got %v, want %v", got.Matched, want)
	}
	// hit rate 0.8; top 3 similarities 0.8, 0.5, 0.5
	if absf(got.Score-0.72) > 1e-9 {
		t.Errorf("score: got %f, want 0.72", got.Score)
	}
}

func TestCoverageNegativeSimilarityClamped(t *testing.T) {
	transcript := "completely unrelated"
	emb := transcriptStub(transcript, map[string]float64{"impact": -0.9})
	cs := scoring.NewCoverageScorer(emb, scoring.DefaultPolicy())
	got, err := cs.Score(context.Background(), transcript, []string{"impact"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 0 || len(got.Matched) != 0 {
		t.Errorf("got %+v, want zero coverage", got)
	}
}

func TestCoverageBackendError(t *testing.T) {
	emb := newStub(nil)
	emb.err = errBackendDown
	cs := scoring.NewCoverageScorer(emb, scoring.DefaultPolicy())
	_, err := cs.Score(context.Background(), "root cause analysis", []string{"root cause analysis"})
	if !errors.Is(err, scoring.ErrScoringUnavailable) {
		t.Fatalf("got %v, want ErrScoringUnavailable", err)
	}
	if !errors.Is(err, errBackendDown) {
		t.Errorf("cause not preserved: %v", err)
	}
	var be *scoring.BackendError
	if !errors.As(err, &be) || be.Backend != "stub" {
		t.Errorf("got %#v, want BackendError for stub", err)
	}
}

func TestCoverageShortBatchIsUnavailable(t *testing.T) {
	cs := scoring.NewCoverageScorer(shortEmbedder{}, scoring.DefaultPolicy())
	_, err := cs.Score(context.Background(), "impact", []string{"impact", "lesson learned"})
	if !errors.Is(err, scoring.ErrScoringUnavailable) {
		t.Fatalf("got %v, want ErrScoringUnavailable", err)
	}
}

func TestCoverageNilEmbedder(t *testing.T) {
	cs := scoring.NewCoverageScorer(nil, scoring.DefaultPolicy())
	_, err := cs.Score(context.Background(), "impact", []string{"impact"})
	if !errors.Is(err, scoring.ErrScoringUnavailable) {
		t.Fatalf("got %v, want ErrScoringUnavailable", err)
	}
}
