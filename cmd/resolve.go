package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/redline/internal/engine"
	"github.com/redline/internal/logging"
	"github.com/redline/pkg/models"
)

// ResolveCommand returns the resolve command: run a batch of already-parsed
// proposed edits through the anchor-resolution engine.
func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve proposed edits against the sent paragraphs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Read the resolve request JSON from `FILE` (default: stdin)",
			},
			&cli.BoolFlag{
				Name:  "diagnostics",
				Usage: "Include resolution diagnostics in the output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: runResolve,
	}
}

func runResolve(c *cli.Context) error {
	_, log, err := setup(c)
	if err != nil {
		return err
	}

	data, err := readInput(c.String("input"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var req models.ResolveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parsing resolve request: %w", err)
	}

	runLog, _ := logging.ForRun(log)
	result := engine.New(runLog).Resolve(req)

	return writeResult(result, c.Bool("diagnostics"))
}

// writeResult prints the resolved edits (and optionally the diagnostics) as
// indented JSON on stdout.
func writeResult(result models.ResolveResult, withDiagnostics bool) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if withDiagnostics {
		return enc.Encode(result)
	}
	if result.Edits == nil {
		result.Edits = []models.ResolvedEdit{}
	}
	return enc.Encode(result.Edits)
}
