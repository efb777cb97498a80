package main

import (
	"context"
	"errors"
	"os"

	"github.com/tbarron/m365prof/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
			configPath = "config.toml"
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "m365prof",
		Usage:    "Provision Microsoft 365 mail profiles from a user roster",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrClientRunning) {
			logger.Error("provisioning refused while the mail client is running")
			os.Exit(2)
		}
		logger.Fatalf("application error: %v", err)
	}
}
