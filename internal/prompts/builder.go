package prompts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/redline/pkg/models"
)

// suggestTemplate renders the document, the reader's comments and the output
// contract. The paragraph indices shown here are the index space the model
// must answer in.
const suggestTemplate = `You are a careful copy editor. Propose edits to the document below.

Document paragraphs (each line starts with the paragraph's index):
{{range .Paragraphs}}[{{.Index}}] {{.Text}}
{{end}}
{{- if .Comments}}
Reader comments:
{{range .Comments}}- paragraph {{.ParaIndex}}{{if .SelectedText}}, on "{{.SelectedText}}"{{end}}: {{.Comment}}
{{end}}
{{- end}}
{{- if .Instruction}}
Overall instruction: {{.Instruction}}
{{end}}
Respond with ONLY a JSON array. Each element must be an object of the form
{"paragraph": <index>, "oldText": "<exact text to replace>", "newText": "<replacement>"}.
Quote oldText exactly as it appears in the paragraph, including punctuation.
Do not add any text outside the JSON array.`

var suggestTmpl = template.Must(template.New("suggest").Parse(suggestTemplate))

// Build renders the suggestion prompt for one request.
func Build(paragraphs []models.Paragraph, comments []models.Comment, instruction string) (string, error) {
	var b strings.Builder
	err := suggestTmpl.Execute(&b, struct {
		Paragraphs  []models.Paragraph
		Comments    []models.Comment
		Instruction string
	}{paragraphs, comments, instruction})
	if err != nil {
		return "", fmt.Errorf("rendering suggest prompt: %w", err)
	}
	return b.String(), nil
}
