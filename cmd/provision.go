package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/report"
	"github.com/tbarron/m365prof/internal/roster"
	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
	"github.com/tbarron/m365prof/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ProvisionRun provisions one mail profile per roster row.
//
// The roster is loaded and the running-client preflight passes before any
// store mutation, so input and environment errors never leave partial state.
// Individual record failures do not stop the run.
func (r *Runner) ProvisionRun(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	rosterPath := cmd.String("roster")
	baseName := cmd.String("base-name")
	if baseName == "" {
		baseName = r.config.Profile.BaseName
	}
	setDefault := cmd.Bool("set-default")
	dryRun := cmd.Bool("dry-run")
	force := cmd.Bool("force")
	reportPath := cmd.String("report")

	r.logger.Info("loading roster", "path", rosterPath)
	records, err := roster.LoadFile(rosterPath)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if len(records) == 0 {
		r.writePlain("Roster has no data rows, nothing to do.\n\n")
		r.writePlainHeader("Provisioning Complete")
		r.writePlain("Created: %d\n", 0)
		r.writePlain("Failed: %d\n", 0)
		return nil
	}

	if !dryRun && !force {
		if err := r.preflight(); err != nil {
			return err
		}
	}

	var st store.Store
	if dryRun {
		r.logger.Info("dry run, using in-memory store")
		st = store.NewMemoryStore()
	} else {
		var cleanup func()
		if st, cleanup, err = r.openStore(); err != nil {
			return err
		}
		defer cleanup()
	}

	r.writePlain("Provisioning %d profiles...\n", len(records))
	r.writePlain("Base name: %s\n\n", baseName)

	engine := tasks.NewProvisionEngine(profile.NewWriter(st, r.logger), r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.CreateProfile:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.RecordDone:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary := engine.Run(records, baseName, setDefault, progressCh)
	close(progressCh)
	<-done

	r.writePlain("\n")
	r.writePlainHeader("Provisioning Complete")
	r.writePlain("Run ID: %s\n", summary.RunID)
	r.writePlain("Created: %d\n", summary.Created)
	r.writePlain("Failed: %d\n", summary.Failed)

	if summary.Failed > 0 {
		r.writePlain("\nRecords not provisioned:\n")
		for _, res := range summary.Results {
			if res.Status == profile.Created {
				continue
			}
			identity := res.Identity
			if identity == "" {
				identity = "(missing identity)"
			}
			r.writePlain("  - %s: %v\n", identity, res.Err)
		}
	}

	if reportPath != "" {
		format := reportFormat(reportPath)
		if err := report.WriteReport(summary, format, reportPath); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.writePlain("\nReport written to %s\n", reportPath)
	}

	return nil
}

// preflight refuses to mutate the store while the mail client is open, since
// the client can overwrite or cache profile entries mid-run.
func (r *Runner) preflight() error {
	running, err := r.procCheck(r.config.Client.ProcessName)
	if err != nil {
		r.logger.Warn("could not check for a running mail client", "error", err)
		return nil
	}
	if !running {
		return nil
	}

	if !r.interactive() {
		return fmt.Errorf("%w: close %s or pass --force", shared.ErrClientRunning, r.config.Client.ProcessName)
	}

	ok, err := r.confirm(fmt.Sprintf("%s appears to be running. Provision anyway?", r.config.Client.ProcessName))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: aborted", shared.ErrClientRunning)
	}
	return nil
}

// reportFormat infers the report format from the file extension.
func reportFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	case ".txt":
		return "txt"
	default:
		return "csv"
	}
}
