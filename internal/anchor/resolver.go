package anchor

import (
	"strings"

	"github.com/redline/pkg/models"
)

// Resolve recovers the exact substring of paragraphText that a proposed edit
// meant to target. Strategies are tried in strict priority order, first
// success wins:
//
//  1. proposedOldText is already a literal substring: returned unchanged.
//  2. Loose match with span back-mapping: the model echoed a cleaned-up
//     rendering (straight quotes, plain hyphens, squashed whitespace) of text
//     that is present; the returned anchor is carved from paragraphText using
//     the spans of the loose match, never from the model's own string.
//  3. Exactly one comment with a valid character range: that range is the
//     span the user literally selected, a stronger signal than the model's
//     echoed quote, so it is trusted even when it looks nothing like
//     proposedOldText.
//  4. Exactly one comment whose SelectedText occurs literally: returned.
//
// The boolean is false when no strategy produced an anchor.
func Resolve(paragraphText, proposedOldText string, comments []models.Comment) (string, bool) {
	if proposedOldText != "" && strings.Contains(paragraphText, proposedOldText) {
		return proposedOldText, true
	}

	if anchored, ok := looseAnchor(paragraphText, proposedOldText); ok {
		return anchored, true
	}

	// Single-comment overrides apply only when there is exactly one comment:
	// with several comments, attribution is ambiguous and no override holds.
	if len(comments) == 1 {
		c := comments[0]
		if c.HasRange(len(paragraphText)) {
			return paragraphText[*c.Start:*c.End], true
		}
		if c.SelectedText != "" && strings.Contains(paragraphText, c.SelectedText) {
			return c.SelectedText, true
		}
	}

	return "", false
}

// looseAnchor searches for the trimmed loose form of needle inside the loose
// form of paragraphText and projects the first match back through the
// normalizer's spans to an exact slice of the original paragraph. Matches
// whose mapped slice is empty or inverted are rejected so the caller can fall
// through to the next strategy.
func looseAnchor(paragraphText, needle string) (string, bool) {
	looseNeedle, _ := Normalize(needle)
	looseNeedle = strings.TrimSpace(looseNeedle)
	if looseNeedle == "" {
		return "", false
	}

	looseText, spans := Normalize(paragraphText)
	at := strings.Index(looseText, looseNeedle)
	if at < 0 {
		return "", false
	}

	start := spans[at].Start
	end := spans[at+len(looseNeedle)-1].End
	if start >= end {
		return "", false
	}
	return paragraphText[start:end], true
}
