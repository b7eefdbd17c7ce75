package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/redline/internal/engine"
	"github.com/redline/internal/llm"
	"github.com/redline/internal/logging"
	"github.com/redline/internal/prompts"
	"github.com/redline/pkg/models"
)

// SuggestCommand returns the suggest command: the full loop from document
// plus comments to resolved edits, via the configured model.
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Ask the model for edits and resolve them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Read the suggest request JSON from `FILE` (default: stdin)",
			},
			&cli.BoolFlag{
				Name:  "diagnostics",
				Usage: "Include resolution diagnostics in the output",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall timeout for the model call",
				Value: 5 * time.Minute,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: runSuggest,
	}
}

func runSuggest(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	provider, err := buildProvider(cfg, log)
	if err != nil {
		return err
	}

	data, err := readInput(c.String("input"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var req models.SuggestRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parsing suggest request: %w", err)
	}
	if len(req.Paragraphs) == 0 {
		return fmt.Errorf("suggest request has no paragraphs")
	}

	runLog, _ := logging.ForRun(log)

	prompt, err := prompts.Build(req.Paragraphs, req.Comments, req.Instruction)
	if err != nil {
		return err
	}
	runLog.Debug().Int("promptBytes", len(prompt)).Str("model", provider.Name()).Msg("calling model")

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	raw, err := provider.Suggest(ctx, prompt)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	proposed, _, err := llm.ParseProposedEdits(raw, runLog)
	if err != nil {
		return fmt.Errorf("parsing model response: %w", err)
	}

	result := engine.New(runLog).Resolve(models.ResolveRequest{
		Paragraphs:    req.Paragraphs,
		Comments:      req.Comments,
		ProposedEdits: proposed,
	})
	return writeResult(result, c.Bool("diagnostics"))
}
