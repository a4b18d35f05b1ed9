package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFillers is the stock lexicon of English filler words and phrases.
var DefaultFillers = []string{
	"um", "uh", "like", "you know", "sort of", "kind of",
	"basically", "actually", "literally",
}

// FillerDetector counts whole-word occurrences of a fixed lexicon.
type FillerDetector struct {
	phrases []string
	res     []*regexp.Regexp
}

// NewFillerDetector compiles one matcher per lexicon entry. Entries are
// lower-cased and whitespace-normalised; blanks and duplicates are dropped.
// A nil or empty lexicon falls back to DefaultFillers.
func NewFillerDetector(lexicon []string) *FillerDetector {
	if len(lexicon) == 0 {
		lexicon = DefaultFillers
	}
	d := &FillerDetector{}
	seen := make(map[string]bool, len(lexicon))
	for _, entry := range lexicon {
		words := strings.Fields(strings.ToLower(entry))
		if len(words) == 0 {
			continue
		}
		phrase := strings.Join(words, " ")
		if seen[phrase] {
			continue
		}
		seen[phrase] = true

		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		pattern := strings.Join(quoted, `[\s\p{Zs}]+`)
		d.phrases = append(d.phrases, phrase)
		d.res = append(d.res, regexp.MustCompile(pattern))
	}
	return d
}

// Lexicon returns the normalised phrases the detector counts.
func (d *FillerDetector) Lexicon() []string {
	out := make([]string, len(d.phrases))
	copy(out, d.phrases)
	return out
}

// Detect counts every lexicon phrase in text. Every phrase has a key in the
// report, zero included.
func (d *FillerDetector) Detect(text string) FillerReport {
	lower := strings.ToLower(text)
	rep := FillerReport{Counts: make(map[string]int, len(d.phrases))}
	for i, phrase := range d.phrases {
		n := countWhole(d.res[i], lower)
		rep.Counts[phrase] = n
		rep.Total += n
	}
	return rep
}

// countWhole counts non-overlapping matches of re that are not glued to a
// letter, digit or underscore on either side. Word characters include
// non-ASCII letters, so "Ølike" holds no "like".
func countWhole(re *regexp.Regexp, text string) int {
	n, pos := 0, 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			n++
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + max(size, 1)
	}
	return n
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}
