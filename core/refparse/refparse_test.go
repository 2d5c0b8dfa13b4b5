package refparse

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		span string
		want Ref
	}{
		{"colon form", "John 3:16", Ref{Book: "John", Chapter: 3, Verse: 16}},
		{"colon range", "John 3:16-18", Ref{Book: "John", Chapter: 3, Verse: 16, VerseEnd: 18}},
		{"period form", "Matt 5.3", Ref{Book: "Matthew", Chapter: 5, Verse: 3}},
		{"abbreviated with period", "Gen. 1:1", Ref{Book: "Genesis", Chapter: 1, Verse: 1}},
		{"numbered book", "1 Cor 13:4", Ref{Book: "1 Corinthians", Chapter: 13, Verse: 4}},
		{"bare chapter", "Psalm 23", Ref{Book: "Psalm", Chapter: 23, Verse: 1}},
		{"numbered book bare chapter", "3 Jn 11", Ref{Book: "3 John", Chapter: 11, Verse: 1}},
		{"marker", "Eph 4:24*", Ref{Book: "Ephesians", Chapter: 4, Verse: 24, Marker: "*"}},
		{"hash marker", "Rom 12:2#", Ref{Book: "Romans", Chapter: 12, Verse: 2, Marker: "#"}},
		{"double colon becomes range", "Acts 2:12:16", Ref{Book: "Acts", Chapter: 2, Verse: 12, VerseEnd: 16}},
		{"no book", "4:1", Ref{Chapter: 4, Verse: 1}},
		{"no book range", "3:27-29", Ref{Chapter: 3, Verse: 27, VerseEnd: 29}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.span)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.span, err)
			}
			if *got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.span, *got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		span string
	}{
		{"empty", ""},
		{"no numbers", "Galatians"},
		{"prose", "see note"},
		{"dash without verse", "2 Jn 5-6"},
		{"unknown book", "Enoch 2:1"},
		{"prose shaped like a citation", "see note 3:16"},
		{"zero chapter", "John 0:16"},
		{"trailing junk", "John 3:16 and more"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := Parse(tt.span); err == nil {
				t.Errorf("Parse(%q) = %+v, want error", tt.span, got)
			}
		})
	}
}

func TestRefString(t *testing.T) {
	tests := []struct {
		name string
		ref  Ref
		want string
	}{
		{"simple", Ref{Book: "John", Chapter: 3, Verse: 16}, "John 3:16"},
		{"range", Ref{Book: "John", Chapter: 3, Verse: 16, VerseEnd: 18}, "John 3:16-18"},
		{"marker", Ref{Book: "Ephesians", Chapter: 4, Verse: 24, Marker: "*"}, "Ephesians 4:24*"},
		{"range with marker", Ref{Book: "Psalm", Chapter: 23, Verse: 1, VerseEnd: 6, Marker: "#"}, "Psalm 23:1-6#"},
		{"no book", Ref{Chapter: 4, Verse: 1}, "4:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitBook(t *testing.T) {
	tests := []struct {
		name     string
		span     string
		wantBook string
		wantRest string
		wantOK   bool
	}{
		{"simple", "Gal 3:27", "Galatians", "3:27", true},
		{"numbered", "2 Jn 5-6", "2 John", "5-6", true},
		{"with period", "Eph. 4:24", "Ephesians", "4:24", true},
		{"book only", "Romans", "Romans", "", true},
		{"no book", "4:1", "", "4:1", false},
		{"prose", "see note", "", "see note", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, rest, ok := SplitBook(tt.span)
			if ok != tt.wantOK || book != tt.wantBook || rest != tt.wantRest {
				t.Errorf("SplitBook(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.span, book, rest, ok, tt.wantBook, tt.wantRest, tt.wantOK)
			}
		})
	}
}
