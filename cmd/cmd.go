// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is attached to every command that reads the settings database.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for the settings database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the settings database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// provisionCommand handles roster-driven profile provisioning.
func provisionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "provision",
		Usage: "Provision mail profiles from a user roster",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Create one profile per roster row",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "roster",
						Aliases:  []string{"r"},
						Usage:    "Path to the roster CSV (requires a UPN column)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "base-name",
						Usage: "Base profile name (overrides the configured one)",
					},
					&cli.BoolFlag{
						Name:  "set-default",
						Usage: "Mark the first provisioned profile as the client default",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Run against an in-memory store, leaving the database untouched",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Skip the running-client preflight check",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write a run report to this file (.csv, .md, or .txt)",
					},
				},
				Action: r.ProvisionRun,
			},
		},
	}
}

// profilesCommand handles inspection and maintenance of provisioned profiles.
func profilesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "Inspect and maintain provisioned profiles",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List provisioned profiles",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ProfilesList,
			},
			{
				Name:  "show",
				Usage: "Show the stored attributes of one profile",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.ProfilesShow,
			},
			{
				Name:  "remove",
				Usage: "Delete a profile from both settings trees",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Remove without confirmation",
					},
				},
				Action: r.ProfilesRemove,
			},
			{
				Name:    "tui",
				Aliases: []string{"interactive", "ui"},
				Usage:   "Browse profiles in an interactive TUI",
				Flags:   []cli.Flag{configFlag()},
				Action:  r.ProfilesTUI,
			},
		},
	}
}
