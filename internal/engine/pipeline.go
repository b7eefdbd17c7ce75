package engine

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/redline/internal/anchor"
	"github.com/redline/pkg/models"
)

// Engine runs batches of proposed edits through shape validation, anchor
// resolution and cross-paragraph remapping. It is stateless between calls
// and safe to share across goroutines.
type Engine struct {
	log zerolog.Logger
}

// New returns an Engine that logs per-edit classifications to log.
func New(log zerolog.Logger) *Engine {
	return &Engine{log: log}
}

// Resolve validates every proposed edit in input order and returns the edits
// whose OldText could be anchored to a literal substring of a sent paragraph.
// A bad edit never aborts the batch; it is dropped with a reason and the rest
// proceed. The result's diagnostics are informational only.
func (e *Engine) Resolve(req models.ResolveRequest) models.ResolveResult {
	u := anchor.NewUniverse(req.Paragraphs, req.Comments)
	result := models.ResolveResult{}

	for i, proposed := range req.ProposedEdits {
		paraIndex, okIndex := intField(proposed.ParaIndex)
		oldText, okOld := stringField(proposed.OldText)
		newText, okNew := stringField(proposed.NewText)
		if !okIndex || !okOld || !okNew {
			e.dropEdit(&result, i, models.DropInvalidShape)
			continue
		}

		if !u.Contains(paraIndex) {
			e.dropEdit(&result, i, models.DropInvalidIndex)
			continue
		}

		paragraphText := u.Paragraphs[paraIndex]
		if paragraphText == "" {
			e.dropEdit(&result, i, models.DropMissingParagraph)
			continue
		}

		anchored, ok := anchor.Resolve(paragraphText, oldText, u.CommentsByPara[paraIndex])
		finalIndex := paraIndex
		reason := ""
		if !ok {
			remapped, remapOK := anchor.Remap(oldText, u)
			if !remapOK {
				e.dropEdit(&result, i, models.DropUnresolvedOldText)
				continue
			}
			anchored = remapped.OldText
			finalIndex = remapped.ParaIndex
			reason = remapped.Reason
		}

		result.Edits = append(result.Edits, models.ResolvedEdit{
			ParaIndex: finalIndex,
			OldText:   anchored,
			NewText:   newText,
		})
		result.Diagnostics.Accepted++

		repaired := anchored != oldText
		moved := finalIndex != paraIndex
		if repaired {
			result.Diagnostics.Repaired++
		}
		if moved {
			result.Diagnostics.Remapped++
		}
		e.log.Debug().
			Int("edit", i).
			Int("paraIndex", finalIndex).
			Bool("repaired", repaired).
			Bool("remapped", moved).
			Str("remapReason", reason).
			Msg("edit resolved")
	}

	e.log.Info().
		Int("proposed", len(req.ProposedEdits)).
		Int("accepted", result.Diagnostics.Accepted).
		Int("repaired", result.Diagnostics.Repaired).
		Int("remapped", result.Diagnostics.Remapped).
		Int("dropped", result.Diagnostics.Dropped).
		Msg("resolution pass finished")
	return result
}

func (e *Engine) dropEdit(result *models.ResolveResult, i int, reason string) {
	result.Diagnostics.Drop(reason)
	e.log.Debug().Int("edit", i).Str("reason", reason).Msg("edit dropped")
}

// intField coerces the untyped paragraph index from a decoded edit. JSON
// numbers arrive as float64 (or json.Number when a decoder is configured
// that way); only integral values count.
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		i := int(n)
		if float64(i) == n {
			return i, true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func stringField(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
