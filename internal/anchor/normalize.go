package anchor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open [Start,End) byte range into an original string.
type Span struct {
	Start int
	End   int
}

// looseRune maps typographic variants the model tends to flatten onto the
// canonical character it flattens them to. Everything else passes through.
func looseRune(r rune) rune {
	switch r {
	case '’', '‘', '´', '`':
		return '\''
	case '“', '”':
		return '"'
	case '–', '—', '−':
		return '-'
	case ' ':
		return ' '
	}
	return r
}

// Normalize converts text into its loose form: quote/dash/NBSP variants
// canonicalized and every whitespace run collapsed to a single space. The
// returned spans are parallel to the bytes of the loose string; spans[i] is
// the byte range of the original text that produced loose[i]. A collapsed
// whitespace run's space carries a span covering the whole run.
//
// Normalize is idempotent: the loose form of a loose string is itself.
func Normalize(text string) (string, []Span) {
	var b strings.Builder
	b.Grow(len(text))
	spans := make([]Span, 0, len(text))
	lastSpace := false

	for i, r := range text {
		// Measure the consumed input, not the decoded rune: an invalid
		// byte decodes to U+FFFD (3 bytes) but advances the input by 1.
		_, width := utf8.DecodeRuneInString(text[i:])
		r = looseRune(r)
		if unicode.IsSpace(r) {
			if lastSpace {
				// Same run: widen the separator's span instead of
				// emitting another space.
				spans[len(spans)-1].End = i + width
				continue
			}
			b.WriteByte(' ')
			spans = append(spans, Span{Start: i, End: i + width})
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
		// One span entry per loose byte so byte offsets from
		// strings.Index can index spans directly.
		for n := utf8.RuneLen(r); n > 0; n-- {
			spans = append(spans, Span{Start: i, End: i + width})
		}
	}
	return b.String(), spans
}
