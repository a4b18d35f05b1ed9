package scoring_test

import (
	"math"
	"testing"

	"github.com/interview-coach/coach-pipeline/scoring"
)

func TestOverallScoreFormula(t *testing.T) {
	p := scoring.DefaultPolicy()
	tests := []struct {
		cov     float64
		fillers int
		wpm     float64
		want    float64
	}{
		{1, 0, 150, 1},
		{0, 10, 0, 0},
		{0, 20, 300, 0},
		{0.5, 5, 75, 0.5},
		{0.92, 0, 26, 0.787},
	}
	for _, tt := range tests {
		got := scoring.OverallScore(scoring.CoverageResult{Score: tt.cov}, scoring.FillerReport{Total: tt.fillers}, tt.wpm, p)
		if absf(got-tt.want) > 1e-9 {
			t.Errorf("OverallScore(%v, %d, %v) = %v, want %v", tt.cov, tt.fillers, tt.wpm, got, tt.want)
		}
	}
}

func TestOverallBoundedAndMonotonic(t *testing.T) {
	p := scoring.DefaultPolicy()
	for _, fillers := range []int{0, 3, 12} {
		for _, wpm := range []float64{0, 90, 150, 220, 500} {
			prev := -1.0
			for c := 0; c <= 100; c++ {
				cov := scoring.CoverageResult{Score: float64(c) / 100}
				got := scoring.OverallScore(cov, scoring.FillerReport{Total: fillers}, wpm, p)
				if got < 0 || got > 1 {
					t.Fatalf("out of range: %v", got)
				}
				if got != math.Round(got*1000)/1000 {
					t.Fatalf("not rounded to 3 decimals: %v", got)
				}
				if got < prev {
					t.Fatalf("fillers=%d wpm=%v: decreased at coverage %v (%v < %v)", fillers, wpm, cov.Score, got, prev)
				}
				prev = got
			}
		}
	}
}

func TestPaceQualityPeak(t *testing.T) {
	p := scoring.DefaultPolicy()
	if q := scoring.PaceQuality(150, p); q != 1 {
		t.Errorf("at 150: %v", q)
	}
	if q := scoring.PaceQuality(0, p); q != 0 {
		t.Errorf("at 0: %v", q)
	}
	if q := scoring.PaceQuality(300, p); q != 0 {
		t.Errorf("at 300: %v", q)
	}
	if q := scoring.FillerQuality(scoring.FillerReport{Total: 15}, p); q != 0 {
		t.Errorf("fillers 15: %v", q)
	}
}
