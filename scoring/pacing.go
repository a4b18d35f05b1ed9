package scoring

import "strings"

// WordsPerMinute counts whitespace-delimited words against the elapsed
// duration. A non-positive duration yields 0.
func WordsPerMinute(text string, durationS float64) float64 {
	if !(durationS > 0) { // also rejects NaN
		return 0
	}
	words := len(strings.Fields(text))
	return float64(words) / (durationS / 60)
}
