// Package lexicon maps scripture book abbreviations to canonical book names.
//
// The table covers the 66 canonical books with the common short
// abbreviations, the no-period and with-period spellings, and the full
// lowercase spelling for each. Lookup is case-insensitive and tolerant of
// trailing punctuation; unknown abbreviations fall back to a title-cased
// pass-through rather than an error.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// books maps normalized (lowercase, punctuation-stripped) abbreviations to
// canonical book names. Multiple keys map to the same value.
var books = map[string]string{
	"gen": "Genesis", "ge": "Genesis", "gn": "Genesis", "genesis": "Genesis",
	"exod": "Exodus", "ex": "Exodus", "exo": "Exodus", "exodus": "Exodus",
	"lev": "Leviticus", "le": "Leviticus", "lv": "Leviticus", "leviticus": "Leviticus",
	"num": "Numbers", "nu": "Numbers", "nm": "Numbers", "numbers": "Numbers",
	"deut": "Deuteronomy", "dt": "Deuteronomy", "de": "Deuteronomy", "deuteronomy": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua", "jsh": "Joshua", "joshua": "Joshua",
	"judg": "Judges", "jdg": "Judges", "jg": "Judges", "judges": "Judges",
	"ruth": "Ruth", "rth": "Ruth", "ru": "Ruth",
	"1 sam": "1 Samuel", "1sam": "1 Samuel", "1 sa": "1 Samuel", "1sa": "1 Samuel", "1 samuel": "1 Samuel",
	"2 sam": "2 Samuel", "2sam": "2 Samuel", "2 sa": "2 Samuel", "2sa": "2 Samuel", "2 samuel": "2 Samuel",
	"1 kgs": "1 Kings", "1kgs": "1 Kings", "1 ki": "1 Kings", "1ki": "1 Kings", "1 kings": "1 Kings",
	"2 kgs": "2 Kings", "2kgs": "2 Kings", "2 ki": "2 Kings", "2ki": "2 Kings", "2 kings": "2 Kings",
	"1 chr": "1 Chronicles", "1chr": "1 Chronicles", "1 ch": "1 Chronicles", "1ch": "1 Chronicles", "1 chronicles": "1 Chronicles",
	"2 chr": "2 Chronicles", "2chr": "2 Chronicles", "2 ch": "2 Chronicles", "2ch": "2 Chronicles", "2 chronicles": "2 Chronicles",
	"ezra": "Ezra", "ezr": "Ezra", "ez": "Ezra",
	"neh": "Nehemiah", "ne": "Nehemiah", "nehemiah": "Nehemiah",
	"esth": "Esther", "est": "Esther", "es": "Esther", "esther": "Esther",
	"job": "Job", "jb": "Job",
	"ps": "Psalm", "psa": "Psalm", "psm": "Psalm", "psalm": "Psalm",
	"pss": "Psalms", "psalms": "Psalms",
	"prov": "Proverbs", "pro": "Proverbs", "pr": "Proverbs", "prv": "Proverbs", "proverbs": "Proverbs",
	"eccl": "Ecclesiastes", "ecc": "Ecclesiastes", "ec": "Ecclesiastes", "ecclesiastes": "Ecclesiastes",
	"song": "Song of Solomon", "sos": "Song of Solomon", "ss": "Song of Solomon",
	"song of solomon": "Song of Solomon", "song of songs": "Song of Solomon", "canticles": "Song of Solomon",
	"isa": "Isaiah", "is": "Isaiah", "isaiah": "Isaiah",
	"jer": "Jeremiah", "je": "Jeremiah", "jeremiah": "Jeremiah",
	"lam": "Lamentations", "la": "Lamentations", "lamentations": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel", "ezk": "Ezekiel", "ezekiel": "Ezekiel",
	"dan": "Daniel", "da": "Daniel", "dn": "Daniel", "daniel": "Daniel",
	"hos": "Hosea", "ho": "Hosea", "hosea": "Hosea",
	"joel": "Joel", "jl": "Joel",
	"amos": "Amos", "am": "Amos",
	"obad": "Obadiah", "ob": "Obadiah", "oba": "Obadiah", "obadiah": "Obadiah",
	"jonah": "Jonah", "jon": "Jonah",
	"mic": "Micah", "mi": "Micah", "micah": "Micah",
	"nah": "Nahum", "na": "Nahum", "nahum": "Nahum",
	"hab": "Habakkuk", "hb": "Habakkuk", "habakkuk": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah", "zp": "Zephaniah", "zephaniah": "Zephaniah",
	"hag": "Haggai", "hg": "Haggai", "haggai": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah", "zc": "Zechariah", "zechariah": "Zechariah",
	"mal": "Malachi", "ml": "Malachi", "malachi": "Malachi",
	"matt": "Matthew", "mt": "Matthew", "mat": "Matthew", "matthew": "Matthew",
	"mark": "Mark", "mk": "Mark", "mr": "Mark", "mrk": "Mark",
	"luke": "Luke", "lk": "Luke", "lu": "Luke", "luk": "Luke",
	"john": "John", "jn": "John", "jhn": "John", "joh": "John",
	"acts": "Acts", "ac": "Acts", "act": "Acts",
	"rom": "Romans", "ro": "Romans", "rm": "Romans", "romans": "Romans",
	"1 cor": "1 Corinthians", "1cor": "1 Corinthians", "1 co": "1 Corinthians", "1co": "1 Corinthians", "1 corinthians": "1 Corinthians",
	"2 cor": "2 Corinthians", "2cor": "2 Corinthians", "2 co": "2 Corinthians", "2co": "2 Corinthians", "2 corinthians": "2 Corinthians",
	"cor": "1 Corinthians",
	"gal": "Galatians", "ga": "Galatians", "galatians": "Galatians",
	"eph": "Ephesians", "ep": "Ephesians", "ephesians": "Ephesians",
	"phil": "Philippians", "php": "Philippians", "pp": "Philippians", "philippians": "Philippians",
	"col": "Colossians", "co": "Colossians", "colossians": "Colossians",
	"1 thess": "1 Thessalonians", "1thess": "1 Thessalonians", "1 th": "1 Thessalonians", "1th": "1 Thessalonians", "1 thessalonians": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2thess": "2 Thessalonians", "2 th": "2 Thessalonians", "2th": "2 Thessalonians", "2 thessalonians": "2 Thessalonians",
	"1 tim": "1 Timothy", "1tim": "1 Timothy", "1 ti": "1 Timothy", "1ti": "1 Timothy", "1 timothy": "1 Timothy",
	"2 tim": "2 Timothy", "2tim": "2 Timothy", "2 ti": "2 Timothy", "2ti": "2 Timothy", "2 timothy": "2 Timothy",
	"titus": "Titus", "tit": "Titus", "ti": "Titus",
	"phlm": "Philemon", "phm": "Philemon", "pm": "Philemon", "philemon": "Philemon",
	"heb": "Hebrews", "he": "Hebrews", "hebrews": "Hebrews",
	"jas": "James", "jm": "James", "ja": "James", "james": "James",
	"1 pet": "1 Peter", "1pet": "1 Peter", "1 pe": "1 Peter", "1pe": "1 Peter", "1 peter": "1 Peter",
	"2 pet": "2 Peter", "2pet": "2 Peter", "2 pe": "2 Peter", "2pe": "2 Peter", "2 peter": "2 Peter",
	"1 john": "1 John", "1john": "1 John", "1 jn": "1 John", "1jn": "1 John",
	"2 john": "2 John", "2john": "2 John", "2 jn": "2 John", "2jn": "2 John",
	"3 john": "3 John", "3john": "3 John", "3 jn": "3 John", "3jn": "3 John",
	"jude": "Jude", "jud": "Jude", "jd": "Jude",
	"rev": "Revelation", "re": "Revelation", "rv": "Revelation", "revelation": "Revelation",
}

// Normalize lowercases an abbreviation and strips surrounding whitespace and
// trailing punctuation, producing the form used as a lookup key.
func Normalize(abbrev string) string {
	s := strings.ToLower(strings.TrimSpace(abbrev))
	return strings.TrimRight(s, ".,; \t")
}

// Resolve maps an abbreviation to its canonical book name. Unknown
// abbreviations are returned title-cased as a best-effort fallback; Resolve
// never fails.
func Resolve(abbrev string) string {
	key := Normalize(abbrev)
	if name, ok := books[key]; ok {
		return name
	}
	return titleCase(key)
}

// Known reports whether the abbreviation resolves through the table rather
// than the title-case fallback.
func Known(abbrev string) bool {
	_, ok := books[Normalize(abbrev)]
	return ok
}

// Books returns the distinct canonical book names in sorted order.
func Books() []string {
	seen := make(map[string]bool, len(books))
	var names []string
	for _, name := range books {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Keys returns every abbreviation key, longest first. Go's regexp picks the
// first matching alternative, so the pattern built from this list must try
// "1 cor" before "1 co".
func Keys() []string {
	keys := make([]string, 0, len(books))
	for k := range books {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Alternation returns the abbreviation keys joined as a regexp alternation,
// quoted and longest-first.
func Alternation() string {
	keys := Keys()
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return strings.Join(quoted, "|")
}

// NamesAlternation returns the canonical book names joined as a regexp
// alternation, quoted and longest-first.
func NamesAlternation() string {
	names := Books()
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return strings.Join(quoted, "|")
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
