package standardize

import (
	"regexp"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
)

// Matcher pairs one citation dialect's pattern with its rewrite. Matchers
// are applied in slice order; earlier matchers claim their spans before
// later ones run.
type Matcher struct {
	// ID identifies the dialect ("group", "double-range", "period",
	// "verbose", "colon", "space", "standalone-chapter").
	ID string

	// Pattern recognizes one span of this dialect.
	Pattern *regexp.Regexp

	// Rewrite produces the canonical replacement for a matched span.
	// groups holds the full match followed by the submatches. ok=false
	// leaves the original text unchanged.
	Rewrite func(groups []string) (replacement string, ok bool)

	// Guard, when set, inspects the match in its surrounding text before
	// the rewrite runs. Returning false skips the match. This stands in
	// for the lookahead assertions RE2 does not support.
	Guard func(text string, loc []int) bool
}

// bookPattern matches a book abbreviation with optional trailing
// punctuation. Group 1 is the abbreviation, group 2 the punctuation run.
// Keys are longest-first so "1 cor" wins over "1 co".
var bookPattern = `\b(` + lexicon.Alternation() + `)([.,;\s]*)`

var (
	reGroup       = regexp.MustCompile(`\(([^)]+)\)`)
	reDoubleRange = regexp.MustCompile(`(?i)` + bookPattern + `(\d+):(\d+):(\d+)([*#]?)`)
	rePeriod      = regexp.MustCompile(`(?i)` + bookPattern + `(\d+)\.(\d+)(?:-(\d+))?([*#]?)`)
	reVerbose     = regexp.MustCompile(`(?i)` + bookPattern + `chapter\s*(\d+)\s*verses?\s*(\d+)(?:-(\d+))?([*#]?)`)
	reColon       = regexp.MustCompile(`(?i)` + bookPattern + `(\d+):(\d+)(?:-(\d+))?([*#]?)`)
	reSpace       = regexp.MustCompile(`(?i)` + bookPattern + `(\d+)\s+(\d+)(?:-(\d+))?([*#]?)`)
	reStandalone  = regexp.MustCompile(`(?i)` + bookPattern + `(\d+)([*#]?)`)

	// standaloneTail rejects standalone-chapter matches that are really
	// the prefix of a chapter:verse, chapter.verse, space-separated, or
	// chapter-range citation.
	standaloneTail = regexp.MustCompile(`^(?:[:.][0-9]|\s+[0-9]|-[0-9])`)

	// standaloneAfter rejects a standalone match (marker included) that a
	// following "V-V2" or "V:V2" shape shows to be mid-citation.
	standaloneAfter = regexp.MustCompile(`^\s*[0-9]+[-:][0-9]+`)
)

// matchers builds the ordered dialect cascade. The parenthesized-group
// matcher runs first so mixed-dialect comma lists are resolved coherently;
// the malformed double-range fires before the plain colon form so the
// second ":V2" is folded into a range instead of dangling.
func (s *Standardizer) buildMatchers() []Matcher {
	return []Matcher{
		{
			ID:      "group",
			Pattern: reGroup,
			Rewrite: func(g []string) (string, bool) {
				return "(" + s.resolveGroup(g[1]) + ")", true
			},
		},
		{
			ID:      "double-range",
			Pattern: reDoubleRange,
			Rewrite: s.rewriteDoubleRange,
		},
		{
			ID:      "period",
			Pattern: rePeriod,
			Rewrite: s.rewriteChapterVerse,
		},
		{
			ID:      "verbose",
			Pattern: reVerbose,
			Rewrite: s.rewriteChapterVerse,
		},
		{
			ID:      "colon",
			Pattern: reColon,
			Rewrite: s.rewriteChapterVerse,
		},
		{
			ID:      "space",
			Pattern: reSpace,
			Rewrite: s.rewriteChapterVerse,
		},
		{
			ID:      "standalone-chapter",
			Pattern: reStandalone,
			Rewrite: s.rewriteStandalone,
			Guard:   guardStandalone,
		},
	}
}

// guardStandalone rejects standalone-chapter candidates that sit at the
// start of a larger citation. loc is the submatch index slice; loc[7] is
// the end of the chapter digits, loc[1] the end of the whole match.
func guardStandalone(text string, loc []int) bool {
	afterChapter := text[loc[7]:]
	if standaloneTail.MatchString(afterChapter) {
		return false
	}
	return !standaloneAfter.MatchString(text[loc[1]:])
}
