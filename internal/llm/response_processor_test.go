package llm

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseProposedEdits_BareArray(t *testing.T) {
	raw := `[{"paragraph": 2, "oldText": "foo", "newText": "bar"}]`

	edits, stats, err := ParseProposedEdits(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stats.WasRepaired {
		t.Error("expected no repair for clean JSON")
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
	if edits[0].OldText != "foo" || edits[0].NewText != "bar" {
		t.Errorf("unexpected edit: %+v", edits[0])
	}
	if n, ok := edits[0].ParaIndex.(float64); !ok || n != 2 {
		t.Errorf("expected paragraph index 2, got %v", edits[0].ParaIndex)
	}
}

func TestParseProposedEdits_FencedBlock(t *testing.T) {
	raw := "Here are my suggested edits:\n\n```json\n" +
		`[{"paragraph": 0, "oldText": "a", "newText": "b"}]` +
		"\n```\n\nLet me know if you need more."

	edits, _, err := ParseProposedEdits(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
}

func TestParseProposedEdits_ArrayBuriedInProse(t *testing.T) {
	raw := `Sure! The edits are [{"paragraph": 1, "oldText": "x", "newText": "y"}] as requested.`

	edits, _, err := ParseProposedEdits(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
}

func TestParseProposedEdits_WrapperObject(t *testing.T) {
	raw := `{"edits": [{"paragraph": 0, "oldText": "a", "newText": "b"}]}`

	edits, _, err := ParseProposedEdits(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}
}

func TestParseProposedEdits_TruncatedArrayIsRepaired(t *testing.T) {
	raw := "```json\n" + `[{"paragraph": 0, "oldText": "a", "newText": "b"}, {"paragraph": 1, "oldText": "c` + "\n```"

	edits, stats, err := ParseProposedEdits(raw, zerolog.Nop())
	if err != nil {
		t.Fatalf("expected repair to salvage the array, got: %v", err)
	}
	if !stats.WasRepaired {
		t.Error("expected WasRepaired=true")
	}
	if len(edits) == 0 {
		t.Fatal("expected at least the complete edit to survive")
	}
}

func TestParseProposedEdits_NoJSON(t *testing.T) {
	_, _, err := ParseProposedEdits("I couldn't find anything to change.", zerolog.Nop())
	if err == nil {
		t.Fatal("expected an error for a response with no JSON")
	}
}
