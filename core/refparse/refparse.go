// Package refparse parses a single scripture citation span into its
// components. It is used standalone and by the parenthesized-group resolver
// in core/standardize.
package refparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
)

// Ref is a parsed scripture reference. It is transient: built from one
// matched span, formatted with String, then discarded.
type Ref struct {
	// Book is the canonical book name, or "" when the span carried no book
	// (elliptical items inside a parenthesized list).
	Book string

	// Chapter is the chapter number, always >= 1.
	Chapter int

	// Verse is the starting verse; 1 when the source cited only a chapter.
	Verse int

	// VerseEnd is the ending verse for ranges, 0 when absent. It is not
	// validated against Verse: a mistyped "5:10-3" passes through as-is.
	VerseEnd int

	// Marker is the trailing "*" or "#" annotation, "" when absent.
	Marker string
}

// String renders the canonical form "Book Chapter:Verse[-End][Marker]".
func (r *Ref) String() string {
	var sb strings.Builder
	if r.Book != "" {
		sb.WriteString(r.Book)
		sb.WriteString(" ")
	}
	sb.WriteString(strconv.Itoa(r.Chapter))
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(r.Verse))
	if r.VerseEnd > 0 {
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(r.VerseEnd))
	}
	sb.WriteString(r.Marker)
	return sb.String()
}

// refGrammar is the participle grammar for a single citation span.
// Accepted shapes, book optional throughout:
//
//	Book C:V      Book C:V-V2      Book C:V:V2 (range typo)
//	Book C.V      Book C.V-V2
//	Book C
//
// with an optional trailing "*" or "#" marker.
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Book    string `@Book?`
	Chapter string `@Number`
	Verse   *string `( ( ":" | "." ) @Number`
	End     *string `  ( ( "-" | ":" ) @Number )? )?`
	Marker  string `@Marker?`
}

// refLexer tokenizes citation spans. The Book rule accepts an optional
// leading digit ("1 Cor"), multiple words ("Song of Solomon"), and an
// optional trailing period ("Gen.").
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:\d\s*)?[A-Za-z]+(?:\s+(?:of\s+)?[A-Za-z]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Marker", Pattern: `[*#]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a raw citation span. The whole span must be consumed; any
// trailing text, an unknown book, a non-positive number, or junk between
// the book name and the chapter yields an error, which callers treat as
// "leave the original text unchanged".
func Parse(rawSpan string) (*Ref, error) {
	s := strings.TrimSpace(rawSpan)
	if s == "" {
		return nil, fmt.Errorf("empty span")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawSpan, err)
	}

	ref := &Ref{Marker: parsed.Marker}

	if parsed.Book != "" {
		book, err := resolveBook(parsed.Book)
		if err != nil {
			return nil, err
		}
		ref.Book = book
	}

	ref.Chapter, err = positiveInt(parsed.Chapter)
	if err != nil {
		return nil, fmt.Errorf("chapter in %q: %w", rawSpan, err)
	}

	ref.Verse = 1
	if parsed.Verse != nil {
		ref.Verse, err = positiveInt(*parsed.Verse)
		if err != nil {
			return nil, fmt.Errorf("verse in %q: %w", rawSpan, err)
		}
	}
	if parsed.End != nil {
		ref.VerseEnd, err = positiveInt(*parsed.End)
		if err != nil {
			return nil, fmt.Errorf("verse range end in %q: %w", rawSpan, err)
		}
	}

	return ref, nil
}

// SplitBook splits a span into the longest lexicon-matching book prefix and
// the remaining text. It reports ok=false when no prefix resolves through
// the lexicon. Multi-word abbreviations win over shorter prefixes of them.
func SplitBook(span string) (canonical, rest string, ok bool) {
	s := strings.TrimSpace(span)
	// Book abbreviations are at most three words ("song of solomon").
	boundaries := wordBoundaries(s, 3)
	for i := len(boundaries) - 1; i >= 0; i-- {
		prefix := s[:boundaries[i]]
		if lexicon.Known(prefix) {
			return lexicon.Resolve(prefix), strings.TrimLeft(s[boundaries[i]:], " .,\t"), true
		}
	}
	return "", s, false
}

// resolveBook resolves a book token from the grammar. The token may have
// over-captured trailing words; a token whose prefix resolves but which
// carries extra words is rejected rather than silently truncated, and an
// unknown book is rejected outright so arbitrary prose ("see note 3:16")
// never gets rewritten as a citation.
func resolveBook(token string) (string, error) {
	if lexicon.Known(token) {
		return lexicon.Resolve(token), nil
	}
	if canonical, rest, ok := SplitBook(token); ok {
		if rest != "" {
			return "", fmt.Errorf("unexpected text %q after book name", rest)
		}
		return canonical, nil
	}
	return "", fmt.Errorf("unknown book %q", token)
}

// wordBoundaries returns the end offsets of the first max whitespace-
// separated words of s.
func wordBoundaries(s string, max int) []int {
	var ends []int
	inWord := false
	for i, r := range s {
		if r == ' ' || r == '\t' {
			if inWord {
				ends = append(ends, i)
				if len(ends) == max {
					return ends
				}
			}
			inWord = false
			continue
		}
		inWord = true
	}
	if inWord {
		ends = append(ends, len(s))
	}
	return ends
}

func positiveInt(digits string) (int, error) {
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit in %q", digits)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("non-positive number %d", n)
	}
	return n, nil
}
