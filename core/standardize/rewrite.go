package standardize

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
)

// canonical assembles "Book Chapter:Verse[-End][Marker]".
func canonical(book string, chapter, verse int, end int, marker string) string {
	var b strings.Builder
	b.WriteString(book)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(chapter))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(verse))
	if end > 0 {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(end))
	}
	b.WriteString(marker)
	return b.String()
}

// scanMarker returns the marker the captured group missed: "*" wins over
// "#" when both appear in the raw span, mirroring how annotated documents
// double up symbols around a single citation.
func scanMarker(raw, captured string) string {
	if captured != "" {
		return captured
	}
	if strings.ContainsRune(raw, '*') {
		return "*"
	}
	if strings.ContainsRune(raw, '#') {
		return "#"
	}
	return ""
}

// parseNum converts a digit group, requiring a positive value. ok=false
// means the span cannot be rewritten safely.
func parseNum(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// rewriteChapterVerse canonicalizes the period, verbose, colon, and space
// dialects, which all capture (book, punct, chapter, verse, optional end,
// marker).
func (s *Standardizer) rewriteChapterVerse(g []string) (string, bool) {
	chapter, ok := parseNum(g[3])
	if !ok {
		s.diagnose(Diagnostic{Span: g[0], Message: "chapter is not a positive number"})
		return "", false
	}
	verse, ok := parseNum(g[4])
	if !ok {
		s.diagnose(Diagnostic{Span: g[0], Message: "verse is not a positive number"})
		return "", false
	}
	end := 0
	if g[5] != "" {
		if end, ok = parseNum(g[5]); !ok {
			s.diagnose(Diagnostic{Span: g[0], Message: "range end is not a positive number"})
			return "", false
		}
	}
	book := lexicon.Resolve(g[1])
	return canonical(book, chapter, verse, end, scanMarker(g[0], g[6])), true
}

// rewriteDoubleRange folds the malformed "Book C:V:V2" shape into a
// canonical range.
func (s *Standardizer) rewriteDoubleRange(g []string) (string, bool) {
	chapter, ok1 := parseNum(g[3])
	verse, ok2 := parseNum(g[4])
	end, ok3 := parseNum(g[5])
	if !ok1 || !ok2 || !ok3 {
		s.diagnose(Diagnostic{Span: g[0], Message: "double-colon span has a non-positive number"})
		return "", false
	}
	book := lexicon.Resolve(g[1])
	return canonical(book, chapter, verse, end, scanMarker(g[0], g[6])), true
}

// rewriteStandalone gives a bare chapter citation the implied first verse.
func (s *Standardizer) rewriteStandalone(g []string) (string, bool) {
	chapter, ok := parseNum(g[3])
	if !ok {
		s.diagnose(Diagnostic{Span: g[0], Message: "chapter is not a positive number"})
		return "", false
	}
	book := lexicon.Resolve(g[1])
	return canonical(book, chapter, 1, 0, scanMarker(g[0], g[4])), true
}
