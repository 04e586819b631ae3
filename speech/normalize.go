package speech

import (
	"regexp"
	"strings"
)

var (
	hyphenToken  = regexp.MustCompile(`[A-Za-z0-9]+-[A-Za-z0-9]+`)
	numericRange = regexp.MustCompile(`\d+-\d+`)
)

// NormalizeForSpeech rewrites hyphenated tokens so the voice reads them
// sensibly. Numeric ranges like "12-34" keep an audible separator ("12 dash
// 34"); compound words like "eco-friendly" are spoken as two plain words.
// Only the text sent to synthesis is rewritten; on-screen slide text keeps
// the original form.
func NormalizeForSpeech(text string) string {
	return hyphenToken.ReplaceAllStringFunc(text, func(tok string) string {
		if numericRange.MatchString(tok) {
			return strings.ReplaceAll(tok, "-", " dash ")
		}
		return strings.ReplaceAll(tok, "-", " ")
	})
}
