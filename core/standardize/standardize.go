// Package standardize rewrites scripture citations embedded in prose into
// the canonical "Book Chapter:Verse[-End][Marker]" form. It recognizes a
// fixed set of citation dialects, applies them in precedence order, and
// never touches text outside a recognized citation span.
package standardize

// Diagnostic describes a span the standardizer saw but declined to
// rewrite, or rewrote with a caveat.
type Diagnostic struct {
	// Span is the text the diagnostic refers to.
	Span string
	// Message says what happened.
	Message string
}

// Option configures a Standardizer.
type Option func(*Standardizer)

// WithDiagnostics routes diagnostics to sink as they are produced.
// Standardize itself never fails; the sink is how callers observe spans
// that passed through unrewritten.
func WithDiagnostics(sink func(Diagnostic)) Option {
	return func(s *Standardizer) { s.diag = sink }
}

// Standardizer applies the dialect cascade to text. It is stateless
// between calls and safe for concurrent use as long as the diagnostics
// sink is.
type Standardizer struct {
	matchers []Matcher
	diag     func(Diagnostic)
}

// New builds a Standardizer.
func New(opts ...Option) *Standardizer {
	s := &Standardizer{}
	for _, opt := range opts {
		opt(s)
	}
	s.matchers = s.buildMatchers()
	return s
}

// Matchers exposes the ordered dialect cascade, primarily for callers that
// report on recognized dialects.
func (s *Standardizer) Matchers() []Matcher {
	return s.matchers
}

func (s *Standardizer) diagnose(d Diagnostic) {
	if s.diag != nil {
		s.diag(d)
	}
}

// span is a claimed half-open interval in the working text.
type span struct{ start, end int }

func overlaps(claimed []span, start, end int) bool {
	for _, c := range claimed {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

// Text rewrites every recognized citation in text and returns the result.
// Matchers run in precedence order; once a matcher claims a span, later
// matchers skip anything overlapping it, so each character is rewritten at
// most once. Matches within one matcher are applied right to left so
// earlier offsets stay valid while the text shifts.
func (s *Standardizer) Text(text string) string {
	var claimed []span
	for _, m := range s.matchers {
		locs := m.Pattern.FindAllStringSubmatchIndex(text, -1)
		for i := len(locs) - 1; i >= 0; i-- {
			loc := locs[i]
			start, end := loc[0], loc[1]
			if overlaps(claimed, start, end) {
				continue
			}
			if m.Guard != nil && !m.Guard(text, loc) {
				continue
			}
			repl, ok := m.Rewrite(submatches(text, loc))
			if !ok {
				continue
			}
			if repl != text[start:end] {
				text = text[:start] + repl + text[end:]
				delta := len(repl) - (end - start)
				for j := range claimed {
					if claimed[j].start >= end {
						claimed[j].start += delta
						claimed[j].end += delta
					}
				}
			}
			claimed = append(claimed, span{start, start + len(repl)})
		}
	}
	return s.repairDoubleRanges(text)
}

// repairDoubleRanges folds any "Book C:V:V2" shape left in the rewritten
// text into a range. A space or period rewrite can butt up against a
// ":V2" tail that sat outside its span, recreating the malformed
// double-colon form; this pass runs last, over claimed spans included, so
// the result is what a fresh scan would produce.
func (s *Standardizer) repairDoubleRanges(text string) string {
	locs := reDoubleRange.FindAllStringSubmatchIndex(text, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		loc := locs[i]
		repl, ok := s.rewriteDoubleRange(submatches(text, loc))
		if !ok {
			continue
		}
		text = text[:loc[0]] + repl + text[loc[1]:]
	}
	return text
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups
}

// Text is the convenience form of (*Standardizer).Text with no
// diagnostics sink.
func Text(text string) string {
	return New().Text(text)
}
