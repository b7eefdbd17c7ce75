package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/redline/internal/ai"
	"github.com/redline/internal/api"
)

// APICommand returns the api command, which serves the engine over HTTP.
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Override the configured port",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: runAPI,
	}
}

func runAPI(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	// The resolve endpoint works without a model; suggest needs one.
	var provider ai.Provider
	if p, err := buildProvider(cfg, log); err != nil {
		log.Warn().Err(err).Msg("no model provider; /api/v1/suggest disabled")
	} else {
		provider = p
	}

	port := cfg.Server.Port
	if c.Int("port") != 0 {
		port = c.Int("port")
	}

	return api.NewServer(port, provider, log).Start()
}
