package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/redline/internal/config"
)

// ConfigCommand returns the config command with init and show subcommands.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a sample configuration file",
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if path == "" {
						path = "redline.toml"
					}
					if err := config.Init(path); err != nil {
						return err
					}
					fmt.Printf("Wrote sample configuration to %s\n", path)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					shown := *cfg
					if shown.AI.APIKey != "" {
						shown.AI.APIKey = "********"
					}
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(shown)
				},
			},
		},
	}
}
