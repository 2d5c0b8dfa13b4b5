package standardize

import (
	"regexp"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
)

var (
	reCommaGap = regexp.MustCompile(`(\d+),\s+(\d+)`)

	// reChapterRange matches "Book C1-C2" with a canonical book name. The
	// optional colon group detects when the dash actually belongs to a
	// verse reference, in which case the match is left alone.
	reChapterRange = regexp.MustCompile(`(?i)\b(` + lexicon.NamesAlternation() + `)(\s+)(\d+)-(\d+)(\s*:)?`)

	reBraces = regexp.MustCompile(`\{([^}]+)\}`)
)

// TightenCommas removes the space after a comma between two numbers, so
// verse lists read "3:16,18" rather than "3:16, 18".
func TightenCommas(text string) string {
	return reCommaGap.ReplaceAllString(text, "$1,$2")
}

// ExpandChapterRanges rewrites a whole-chapter range like "Genesis 1-3"
// into "Genesis 1:1-3:1", anchoring both ends on their first verse. Spans
// already carrying a verse ("Genesis 1:1-3") are untouched.
func ExpandChapterRanges(text string) string {
	return reChapterRange.ReplaceAllStringFunc(text, func(match string) string {
		g := reChapterRange.FindStringSubmatch(match)
		if g[5] != "" {
			return match
		}
		return g[1] + g[2] + g[3] + ":1-" + g[4] + ":1"
	})
}

// UnwrapBraces strips curly braces left around citations by upstream
// tooling, keeping their contents.
func UnwrapBraces(text string) string {
	return reBraces.ReplaceAllString(text, "$1")
}

// PostProcess applies the document-level cleanup passes in order. It runs
// after Text, on text whose citations are already canonical.
func PostProcess(text string) string {
	text = TightenCommas(text)
	text = ExpandChapterRanges(text)
	return UnwrapBraces(text)
}
