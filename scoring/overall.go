package scoring

import "math"

// FillerQuality is 1 with no fillers and falls linearly to 0 at the cap.
func FillerQuality(fil FillerReport, p Policy) float64 {
	if p.FillerPenaltyCap <= 0 {
		return 1
	}
	return 1 - math.Min(float64(fil.Total)/float64(p.FillerPenaltyCap), 1)
}

// PaceQuality peaks at the target pace and reaches 0 at 0 WPM or twice the
// target.
func PaceQuality(wpm float64, p Policy) float64 {
	if p.TargetWPM <= 0 {
		return 1
	}
	return 1 - math.Min(math.Abs(p.TargetWPM-wpm)/p.TargetWPM, 1)
}

// OverallScore is the weighted aggregate of coverage, filler discipline and
// pacing, rounded to 3 decimals.
func OverallScore(cov CoverageResult, fil FillerReport, wpm float64, p Policy) float64 {
	total := p.CoverageWeight*cov.Score +
		p.FillerWeight*FillerQuality(fil, p) +
		p.PaceWeight*PaceQuality(wpm, p)
	return round3(clamp01(total))
}
