package scoring

import (
	"fmt"
	"sort"
	"strings"
)

const FillerTip = "Reduce filler words; pause instead of saying filler."

// Tips turns the metrics into coaching suggestions, most important first.
// weights boosts specific key points among the missing ones; absent keys
// weigh 1.
func Tips(cov CoverageResult, fil FillerReport, wpm float64, keyPoints []string, weights map[string]float64, p Policy) []string {
	tips := []string{}

	if cov.Score < p.CoverageTipBelow {
		if missing := MissingKeyPoints(cov, keyPoints, weights); len(missing) > 0 {
			if len(missing) > MaxMissingInTip {
				missing = missing[:MaxMissingInTip]
			}
			tips = append(tips, "Add missing points: "+strings.Join(missing, ", "))
		}
	}
	if fil.Total > p.FillerTipAbove {
		tips = append(tips, FillerTip)
	}
	switch {
	case wpm < p.SlowWPM:
		tips = append(tips, fmt.Sprintf("Increase pace slightly for energy (target %d-%d WPM).", p.BandLowWPM, p.BandHighWPM))
	case wpm > p.FastWPM:
		tips = append(tips, fmt.Sprintf("Slow down a bit for clarity (target %d-%d WPM).", p.BandLowWPM, p.BandHighWPM))
	}
	return tips
}

// MissingKeyPoints lists rubric key points absent from cov.Matched, ordered
// by descending weight and then rubric order.
func MissingKeyPoints(cov CoverageResult, keyPoints []string, weights map[string]float64) []string {
	matched := make(map[string]bool, len(cov.Matched))
	for _, m := range cov.Matched {
		matched[m] = true
	}
	var missing []string
	for _, kp := range keyPoints {
		if !matched[kp] {
			missing = append(missing, kp)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return weightOf(weights, missing[i]) > weightOf(weights, missing[j])
	})
	return missing
}

func weightOf(weights map[string]float64, kp string) float64 {
	if w, ok := weights[kp]; ok {
		return w
	}
	if w, ok := weights[strings.ToLower(kp)]; ok {
		return w
	}
	return 1
}
