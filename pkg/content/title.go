package content

import (
	"html"
	"strings"
	"unicode/utf8"
)

// mojibakeReplacements covers the UTF-8-as-Latin-1 artifacts that survive a
// failed re-decode, most commonly smart punctuation in news headlines.
var mojibakeReplacements = []struct {
	seq  string
	repl string
}{
	{"\u00e2\u0080\u0099", "\u2019"}, // right single quote
	{"\u00e2\u0080\u009c", "\u201c"}, // left double quote
	{"\u00e2\u0080\u009d", "\u201d"}, // right double quote
	{"\u00e2\u0080\u0093", "\u2013"}, // en dash
	{"\u00e2\u0080\u0094", "\u2014"}, // em dash
	{"\u00e2\u0080\u00a6", "\u2026"}, // ellipsis
}

// CleanTitle normalizes a raw extracted title: repairs mojibake, decodes
// HTML/XML entities and numeric references, collapses whitespace runs to a
// single space and trims. A zero-length result is signaled with ok=false,
// never returned as an empty title.
//
// The function is pure and idempotent: CleanTitle(CleanTitle(x)) == CleanTitle(x).
func CleanTitle(raw string) (string, bool) {
	s := raw
	for {
		next := normalizeOnce(s)
		if next == s {
			break
		}
		s = next
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// normalizeOnce applies one pass of every normalization step. Each step only
// ever shrinks the string when it changes it, so iterating to a fixed point
// terminates.
func normalizeOnce(s string) string {
	s = fixEncoding(s)
	for _, r := range mojibakeReplacements {
		s = strings.ReplaceAll(s, r.seq, r.repl)
	}
	s = html.UnescapeString(s)
	// strings.Fields splits on unicode.IsSpace, so NBSP and other Unicode
	// whitespace collapse too.
	return strings.Join(strings.Fields(s), " ")
}

// fixEncoding repairs titles whose UTF-8 bytes were decoded as Latin-1.
// If every rune fits in a single byte and those bytes form valid UTF-8,
// the re-decoded string is the intended one; otherwise the input is kept.
func fixEncoding(s string) string {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		buf = append(buf, byte(r))
	}
	if !utf8.Valid(buf) {
		return s
	}
	return string(buf)
}
