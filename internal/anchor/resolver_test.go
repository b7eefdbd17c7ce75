package anchor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redline/pkg/models"
)

func intp(v int) *int { return &v }

func TestResolve_ExactMatchPassthrough(t *testing.T) {
	got, ok := Resolve("The quick brown fox", "quick brown", nil)
	require.True(t, ok)
	assert.Equal(t, "quick brown", got)
}

func TestResolve_EmptyOldTextIsNotAnExactMatch(t *testing.T) {
	_, ok := Resolve("The quick brown fox", "", nil)
	assert.False(t, ok)
}

func TestResolve_LooseRepairRecoversTypographicText(t *testing.T) {
	paragraph := "He said “hello—world” and left."

	// The model echoed the span with a plain hyphen and without the curly
	// quotes. The anchor must be the source spelling, em dash included.
	got, ok := Resolve(paragraph, "hello-world", nil)
	require.True(t, ok)
	assert.Equal(t, "hello—world", got)
	assert.True(t, strings.Contains(paragraph, got))
}

func TestResolve_LooseRepairKeepsQuoteVariants(t *testing.T) {
	paragraph := "He said “hello—world” and left."

	got, ok := Resolve(paragraph, `"hello-world"`, nil)
	require.True(t, ok)
	assert.Equal(t, "“hello—world”", got)
}

func TestResolve_LooseRepairCollapsedWhitespace(t *testing.T) {
	paragraph := "one\ttwo   three"

	got, ok := Resolve(paragraph, "one two three", nil)
	require.True(t, ok)
	assert.Equal(t, paragraph, got)
}

func TestResolve_LooseNeedleIsTrimmed(t *testing.T) {
	got, ok := Resolve("The quick brown fox", "  quick brown \n", nil)
	require.True(t, ok)
	assert.Equal(t, "quick brown", got)
}

func TestResolve_WhitespaceOnlyOldTextFallsThrough(t *testing.T) {
	_, ok := Resolve("The quick brown fox", "   \t ", nil)
	assert.False(t, ok)
}

func TestResolve_SingleCommentRangeOverride(t *testing.T) {
	paragraph := "The quick brown fox"
	comments := []models.Comment{{
		ParaIndex: 0,
		Start:     intp(4),
		End:       intp(9),
		Comment:   "tighten this",
	}}

	// The user's literal selection wins even though the model's quote looks
	// nothing like it.
	got, ok := Resolve(paragraph, "completely unrelated text", comments)
	require.True(t, ok)
	assert.Equal(t, "quick", got)
}

func TestResolve_SingleCommentInvalidRangeFallsToSelectedText(t *testing.T) {
	paragraph := "The quick brown fox"
	comments := []models.Comment{{
		ParaIndex:    0,
		Start:        intp(4),
		End:          intp(4), // empty range is invalid
		SelectedText: "brown fox",
		Comment:      "this part",
	}}

	got, ok := Resolve(paragraph, "no such text", comments)
	require.True(t, ok)
	assert.Equal(t, "brown fox", got)
}

func TestResolve_SingleCommentOutOfBoundsRange(t *testing.T) {
	paragraph := "short"
	comments := []models.Comment{{
		ParaIndex: 0,
		Start:     intp(2),
		End:       intp(50),
		Comment:   "oops",
	}}

	_, ok := Resolve(paragraph, "no such text", comments)
	assert.False(t, ok)
}

func TestResolve_SelectedTextMustBeLiteral(t *testing.T) {
	comments := []models.Comment{{
		ParaIndex:    0,
		SelectedText: "not in there",
		Comment:      "hm",
	}}

	_, ok := Resolve("The quick brown fox", "also absent", comments)
	assert.False(t, ok)
}

func TestResolve_NoOverrideWithMultipleComments(t *testing.T) {
	paragraph := "The quick brown fox"
	comments := []models.Comment{
		{ParaIndex: 0, Start: intp(4), End: intp(9), Comment: "a"},
		{ParaIndex: 0, SelectedText: "brown", Comment: "b"},
	}

	// With two comments attribution is ambiguous, so resolution relies on
	// text matching alone.
	_, ok := Resolve(paragraph, "completely unrelated text", comments)
	assert.False(t, ok)
}

func TestResolve_InvalidUTF8ParagraphDoesNotPanic(t *testing.T) {
	// A stray non-UTF-8 byte in the paragraph must never take down the
	// batch: the loose match back-maps to the raw source bytes.
	paragraph := "abc\xff tail"

	got, ok := Resolve(paragraph, "abc�", nil)
	require.True(t, ok)
	assert.Equal(t, "abc\xff", got)
	assert.True(t, strings.Contains(paragraph, got))

	_, ok = Resolve(paragraph, "nothing like it", nil)
	assert.False(t, ok)
}

func TestResolve_PriorityExactBeatsCommentOverride(t *testing.T) {
	paragraph := "The quick brown fox"
	comments := []models.Comment{{ParaIndex: 0, Start: intp(0), End: intp(3), Comment: "x"}}

	got, ok := Resolve(paragraph, "brown", comments)
	require.True(t, ok)
	assert.Equal(t, "brown", got)
}
