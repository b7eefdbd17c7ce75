package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/redline/internal/ai"
	"github.com/redline/internal/ai/langchain"
	"github.com/redline/internal/config"
	"github.com/redline/internal/logging"
)

// setup loads the configuration and builds the process logger shared by all
// commands.
func setup(c *cli.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.File)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

// buildProvider creates the configured model provider, wrapped with retries.
func buildProvider(cfg *config.Config, log zerolog.Logger) (ai.Provider, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	provider, err := langchain.New(langchain.Options{
		Provider:    cfg.AI.Provider,
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return ai.NewResilient(provider, log), nil
}

// readInput reads a request document from a file, or stdin when path is
// empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
