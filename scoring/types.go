// Package scoring turns an answer transcript, its duration and a rubric of key
// points into pacing, filler, coverage and overall metrics plus coaching tips.
package scoring

import (
	"fmt"
	"math"
)

// Input is one answer to score.
type Input struct {
	Transcript string
	Role       string
	KeyPoints  []string
	DurationS  float64 // <= 0 when unknown
}

type FillerReport struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type CoverageResult struct {
	Matched []string `json:"matched"` // highest similarity first
	Score   float64  `json:"score"`
}

// AnalysisResult is the terminal output of one analysis.
type AnalysisResult struct {
	Role     string         `json:"role"`
	Coverage CoverageResult `json:"coverage"`
	Filler   FillerReport   `json:"filler"`
	WPM      int            `json:"wpm"`
	Tips     []string       `json:"tips"`
	Overall  float64        `json:"overall"`
}

// Validate checks the result invariants against the rubric it was scored with.
func (r *AnalysisResult) Validate(rubricSize int) error {
	if !inUnit(r.Coverage.Score) {
		return fmt.Errorf("coverage score %v outside [0,1]", r.Coverage.Score)
	}
	if !inUnit(r.Overall) {
		return fmt.Errorf("overall %v outside [0,1]", r.Overall)
	}
	if len(r.Coverage.Matched) > rubricSize {
		return fmt.Errorf("matched %d key points of %d", len(r.Coverage.Matched), rubricSize)
	}
	sum := 0
	for phrase, n := range r.Filler.Counts {
		if n < 0 {
			return fmt.Errorf("negative filler count for %q", phrase)
		}
		sum += n
	}
	if sum != r.Filler.Total {
		return fmt.Errorf("filler total %d != sum of counts %d", r.Filler.Total, sum)
	}
	return nil
}

func inUnit(x float64) bool {
	return !math.IsNaN(x) && x >= 0 && x <= 1
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
