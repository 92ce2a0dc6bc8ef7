package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const fallbackName = "LessonPlan"

// SanitizeFilename turns a document title into a safe download base name.
// The title is NFKD-normalized so accented characters contribute their base
// letter, then everything outside [A-Za-z0-9] is stripped.
func SanitizeFilename(title string) string {
	decomposed := norm.NFKD.String(title)

	var b strings.Builder
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return fallbackName
	}
	return b.String()
}
