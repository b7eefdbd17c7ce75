package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/redline/cmd"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "redline",
		Usage:   "Anchor LLM-proposed document edits to the text they actually target",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
		},
		Commands: []*cli.Command{
			cmd.ResolveCommand(),
			cmd.SuggestCommand(),
			cmd.APICommand(),
			cmd.ConfigCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
