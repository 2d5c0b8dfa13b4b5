package standardize

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
	"github.com/FocuswithJustin/CedarVerse/core/refparse"
)

var (
	reSpaceRun = regexp.MustCompile(`\s+`)

	// reInnerDouble normalizes the malformed "C:V:V2" shape before the
	// group is split, so each item parses as a plain range.
	reInnerDouble = regexp.MustCompile(`(\d+):(\d+):(\d+)`)

	// reBookComma repairs "Book, 12:3", where the comma would otherwise
	// split the book from its numbers. This is a heuristic: a comma after
	// any word directly followed by digits is treated as a typo.
	reBookComma = regexp.MustCompile(`([A-Za-z]+),\s*(\d+)`)

	reItemSplit = regexp.MustCompile(`,\s*`)

	// reUnknownBookItem is the salvage shape for a group item whose book
	// is not in the lexicon: one word (with an optional leading number),
	// then an explicit chapter:verse. A single token reads as a book name
	// a document author invented; multi-word prose ("see note 3:16") does
	// not, and passes through untouched.
	reUnknownBookItem = regexp.MustCompile(`^(\d+\s+)?([A-Za-z]+)\.?\s+(\d+[:.]\d+(?:-\d+)?[*#]?)$`)
)

// resolveGroup canonicalizes the interior of a parenthesized citation
// group. Each comma-separated item is parsed independently; items whose
// book is elided inherit the most recent book seen in the group. Items
// that do not parse pass through verbatim so no prose is ever lost.
func (s *Standardizer) resolveGroup(interior string) string {
	content := reSpaceRun.ReplaceAllString(strings.TrimSpace(interior), " ")
	content = reInnerDouble.ReplaceAllString(content, "$1:$2-$3")
	content = reBookComma.ReplaceAllString(content, "$1 $2")

	lastBook := ""
	items := reItemSplit.Split(content, -1)
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, s.resolveItem(item, &lastBook))
	}
	return strings.Join(out, ", ")
}

func (s *Standardizer) resolveItem(item string, lastBook *string) string {
	ref, err := refparse.Parse(item)
	if err == nil {
		if ref.Book == "" {
			if *lastBook == "" {
				s.diagnose(Diagnostic{Span: item, Message: "group item has no book and none to inherit"})
				return item
			}
			ref.Book = *lastBook
		} else {
			*lastBook = ref.Book
		}
		if ref.Marker == "" {
			ref.Marker = scanMarker(item, "")
		}
		return ref.String()
	}

	// The item has no citation shape we understand. If it still opens with
	// a recognizable book, canonicalize that much and keep the rest as
	// written rather than guessing at the numbers.
	if book, rest, ok := refparse.SplitBook(item); ok && rest != "" {
		*lastBook = book
		s.diagnose(Diagnostic{Span: item, Message: "group item kept verbatim after book: " + err.Error()})
		return book + " " + rest
	}

	// Unknown single-token book with a real chapter:verse shape: title-case
	// it and canonicalize the numbers, best effort.
	if g := reUnknownBookItem.FindStringSubmatch(item); g != nil {
		if ref, perr := refparse.Parse(g[3]); perr == nil {
			token := g[2]
			if g[1] != "" {
				token = strings.TrimSpace(g[1]) + " " + g[2]
			}
			book := lexicon.Resolve(token)
			*lastBook = book
			ref.Book = book
			s.diagnose(Diagnostic{Span: item, Message: "unknown book title-cased"})
			return ref.String()
		}
	}

	s.diagnose(Diagnostic{Span: item, Message: "group item kept verbatim: " + err.Error()})
	return item
}
