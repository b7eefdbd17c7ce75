package models

import "encoding/json"

// Paragraph is one immutable text block of the document as it was sent to the
// model. Index is the paragraph's position in the full document, so a request
// may carry a non-contiguous subset (e.g. only the section the user focused).
type Paragraph struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Comment is a user annotation attached to exactly one paragraph. Start/End
// are an optional half-open character range into that paragraph's text;
// SelectedText is the text the user believed they selected when commenting.
type Comment struct {
	ParaIndex    int    `json:"paraIndex"`
	Start        *int   `json:"start,omitempty"`
	End          *int   `json:"end,omitempty"`
	SelectedText string `json:"selectedText,omitempty"`
	Comment      string `json:"comment"`
}

// HasRange reports whether the comment carries a valid character range for a
// paragraph of the given length.
func (c Comment) HasRange(paragraphLen int) bool {
	return c.Start != nil && c.End != nil &&
		*c.Start >= 0 && *c.Start < *c.End && *c.End <= paragraphLen
}

// ProposedEdit is one untrusted edit record from the model's response. The
// model routinely gets field types wrong, omits fields, or emits non-object
// array entries, so decoding never fails here; the fields stay untyped and
// the resolution pipeline classifies bad shapes instead.
type ProposedEdit struct {
	ParaIndex any
	OldText   any
	NewText   any
}

// UnmarshalJSON accepts both "paragraph" (what the prompt asks for) and
// "paraIndex" as the index key. A record that is not a JSON object decodes to
// an all-nil edit rather than aborting the batch.
func (e *ProposedEdit) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	if v, ok := m["paragraph"]; ok {
		e.ParaIndex = v
	} else {
		e.ParaIndex = m["paraIndex"]
	}
	e.OldText = m["oldText"]
	e.NewText = m["newText"]
	return nil
}

// MarshalJSON renders the edit the way the prompt specifies it, mostly for
// logging and test fixtures.
func (e ProposedEdit) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"paragraph": e.ParaIndex,
		"oldText":   e.OldText,
		"newText":   e.NewText,
	})
}

// ResolvedEdit is an edit whose OldText has been proven to be an exact,
// contiguous substring of the paragraph at ParaIndex. This is the only edit
// type ever returned to callers.
type ResolvedEdit struct {
	ParaIndex int    `json:"paraIndex"`
	OldText   string `json:"oldText"`
	NewText   string `json:"newText"`
}

// Drop reasons for proposed edits that could not be resolved.
const (
	DropInvalidShape      = "invalidShape"
	DropInvalidIndex      = "invalidIndex"
	DropMissingParagraph  = "missingParagraph"
	DropUnresolvedOldText = "unresolvedOldText"
)

// Diagnostics accumulates per-batch resolution counts. Informational only:
// callers log it, nothing reads it for control flow.
type Diagnostics struct {
	Accepted    int            `json:"accepted"`
	Repaired    int            `json:"repaired"`
	Remapped    int            `json:"remapped"`
	Dropped     int            `json:"dropped"`
	DropReasons map[string]int `json:"dropReasons,omitempty"`
}

// Drop records one dropped edit under the given reason.
func (d *Diagnostics) Drop(reason string) {
	d.Dropped++
	if d.DropReasons == nil {
		d.DropReasons = make(map[string]int)
	}
	d.DropReasons[reason]++
}

// ResolveRequest is the engine's input boundary: the paragraph subset that
// was sent to the model, the comments attached to it, and the raw proposed
// edits parsed from the model's output.
type ResolveRequest struct {
	Paragraphs    []Paragraph    `json:"paragraphs"`
	Comments      []Comment      `json:"comments,omitempty"`
	ProposedEdits []ProposedEdit `json:"proposedEdits"`
}

// ResolveResult is the engine's output boundary.
type ResolveResult struct {
	Edits       []ResolvedEdit `json:"edits"`
	Diagnostics Diagnostics    `json:"diagnostics"`
}

// SuggestRequest asks for the full loop: build the prompt, call the model,
// parse its response and resolve the proposed edits.
type SuggestRequest struct {
	Paragraphs  []Paragraph `json:"paragraphs"`
	Comments    []Comment   `json:"comments,omitempty"`
	Instruction string      `json:"instruction,omitempty"`
}
