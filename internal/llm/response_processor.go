package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/redline/pkg/models"
)

// ParseProposedEdits turns a raw model response into proposed-edit records.
// The model is asked for a bare JSON array but in practice wraps it in
// markdown fences or prose, truncates it, or mangles the syntax; this
// de-fences, repairs and decodes, so the caller always gets either records
// or a single error for the whole response. Individual records are not
// shape-checked here; the resolution pipeline classifies those.
func ParseProposedEdits(raw string, log zerolog.Logger) ([]models.ProposedEdit, RepairStats, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, RepairStats{OriginalBytes: len(raw)}, fmt.Errorf("no JSON found in model response")
	}

	repaired, stats, err := RepairJSON(jsonStr)
	if stats.WasRepaired {
		log.Warn().
			Strs("strategies", stats.Strategies).
			Int("originalBytes", stats.OriginalBytes).
			Int("repairedBytes", stats.RepairedBytes).
			Dur("repairTime", stats.RepairTime).
			Msg("model response needed JSON repair")
	}
	if err != nil {
		return nil, stats, fmt.Errorf("repairing model response: %w", err)
	}

	var edits []models.ProposedEdit
	if err := json.Unmarshal([]byte(repaired), &edits); err != nil {
		// Some models wrap the array in an object like {"edits": [...]}.
		var wrapper map[string]json.RawMessage
		if wrapErr := json.Unmarshal([]byte(repaired), &wrapper); wrapErr == nil {
			for _, key := range []string{"edits", "proposedEdits", "changes"} {
				if inner, ok := wrapper[key]; ok {
					if json.Unmarshal(inner, &edits) == nil {
						return edits, stats, nil
					}
				}
			}
		}
		return nil, stats, fmt.Errorf("decoding model response: %w", err)
	}
	return edits, stats, nil
}

// extractJSON pulls the JSON payload out of a mixed prose/JSON response.
// Fenced code blocks win, then the first balanced array or object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		return raw
	}

	if strings.Contains(raw, "```") {
		var inFence bool
		var fenced []string
		for _, line := range strings.Split(raw, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inFence = !inFence
				continue
			}
			if inFence {
				fenced = append(fenced, line)
			}
		}
		if body := strings.TrimSpace(strings.Join(fenced, "\n")); body != "" {
			return body
		}
	}

	// The prompt asks for an array, so prefer the first '[' over '{'.
	start := strings.IndexAny(raw, "[{")
	if start < 0 {
		return ""
	}
	open := raw[start]
	var closing byte = ']'
	if open == '{' {
		closing = '}'
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	// Truncated payload: hand the tail to the repairer.
	return raw[start:]
}
