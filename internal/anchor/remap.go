package anchor

import (
	"sort"
	"strings"

	"github.com/redline/pkg/models"
)

// Remap reason tags, reported in diagnostics and logs.
const (
	ReasonSingleComment = "single-comment-anchor"
	ReasonUniqueExact   = "unique-exact"
	ReasonUniqueLoose   = "unique-loose"
)

// Universe is the set of paragraphs that were actually sent to the model,
// the only valid space for resolution, plus the comments attached to them.
type Universe struct {
	Paragraphs     map[int]string
	Indices        []int // ascending, fixes the remap scan order
	CommentsByPara map[int][]models.Comment
	AllComments    []models.Comment
}

// NewUniverse indexes the request's paragraphs and comments for resolution.
func NewUniverse(paragraphs []models.Paragraph, comments []models.Comment) *Universe {
	u := &Universe{
		Paragraphs:     make(map[int]string, len(paragraphs)),
		CommentsByPara: make(map[int][]models.Comment),
		AllComments:    comments,
	}
	for _, p := range paragraphs {
		if _, seen := u.Paragraphs[p.Index]; !seen {
			u.Indices = append(u.Indices, p.Index)
		}
		u.Paragraphs[p.Index] = p.Text
	}
	sort.Ints(u.Indices)
	for _, c := range comments {
		u.CommentsByPara[c.ParaIndex] = append(u.CommentsByPara[c.ParaIndex], c)
	}
	return u
}

// Contains reports whether index is part of the sent subset.
func (u *Universe) Contains(index int) bool {
	_, ok := u.Paragraphs[index]
	return ok
}

// RemapResult names the paragraph an edit was relocated to, the anchor
// recovered there, and which strategy justified the move.
type RemapResult struct {
	ParaIndex int
	OldText   string
	Reason    string
}

// Remap relocates an edit whose stated paragraph yielded no anchor. It only
// ever moves an edit when the target is unambiguous: a lone comment in the
// whole request, or text occurring in exactly one sent paragraph. With zero
// or two-plus candidates it refuses rather than guess.
func Remap(oldText string, u *Universe) (RemapResult, bool) {
	// A single comment across the whole request is definitionally the span
	// the user cared about, so a mis-attributed edit lands there.
	if len(u.AllComments) == 1 {
		c := u.AllComments[0]
		if text, ok := u.Paragraphs[c.ParaIndex]; ok && text != "" {
			paraComments := u.CommentsByPara[c.ParaIndex]
			if anchored, ok := Resolve(text, oldText, paraComments); ok {
				return RemapResult{ParaIndex: c.ParaIndex, OldText: anchored, Reason: ReasonSingleComment}, true
			}
			if c.SelectedText != "" {
				if anchored, ok := Resolve(text, c.SelectedText, paraComments); ok {
					return RemapResult{ParaIndex: c.ParaIndex, OldText: anchored, Reason: ReasonSingleComment}, true
				}
			}
		}
	}

	if oldText != "" {
		if idx, ok := u.uniqueMatch(func(text string) bool {
			return strings.Contains(text, oldText)
		}); ok {
			if anchored, ok := Resolve(u.Paragraphs[idx], oldText, u.CommentsByPara[idx]); ok {
				return RemapResult{ParaIndex: idx, OldText: anchored, Reason: ReasonUniqueExact}, true
			}
		}
	}

	looseOld, _ := Normalize(oldText)
	looseOld = strings.TrimSpace(looseOld)
	if looseOld != "" {
		if idx, ok := u.uniqueMatch(func(text string) bool {
			loose, _ := Normalize(text)
			return strings.Contains(loose, looseOld)
		}); ok {
			if anchored, ok := Resolve(u.Paragraphs[idx], oldText, u.CommentsByPara[idx]); ok {
				return RemapResult{ParaIndex: idx, OldText: anchored, Reason: ReasonUniqueLoose}, true
			}
		}
	}

	return RemapResult{}, false
}

// uniqueMatch scans paragraphs in ascending index order and returns the one
// matching index, aborting the moment a second paragraph matches.
func (u *Universe) uniqueMatch(match func(string) bool) (int, bool) {
	found := -1
	for _, idx := range u.Indices {
		if !match(u.Paragraphs[idx]) {
			continue
		}
		if found >= 0 {
			return -1, false
		}
		found = idx
	}
	if found < 0 {
		return -1, false
	}
	return found, true
}
