package main

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/shared"
	"github.com/tbarron/m365prof/internal/store"
	"github.com/tbarron/m365prof/internal/ui"
	"github.com/urfave/cli/v3"
)

// ProfilesList lists every provisioned profile.
func (r *Runner) ProfilesList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	st, cleanup, err := r.openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	infos, err := profile.List(st)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(infos, cmd.Bool("pretty"))
	}

	if len(infos) == 0 {
		r.writePlain("No profiles provisioned.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Profiles (%d)", len(infos)))
	for _, info := range infos {
		marker := " "
		if info.Default {
			marker = "*"
		}
		identity := info.Identity
		if identity == "" {
			identity = "-"
		}
		r.writePlain("%s %s  (%s)\n", marker, info.Name, identity)
	}
	return nil
}

// ProfilesShow prints the stored attributes of one profile.
func (r *Runner) ProfilesShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: profile name", shared.ErrMissingArgument)
	}

	st, cleanup, err := r.openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	details, err := profile.Inspect(st, name)
	if err != nil {
		return err
	}

	r.writePlainHeader(details.Name)
	if details.Default {
		r.writePlain("Default profile\n")
	}
	r.writePlain("Identity: %s\n", details.Identity)

	r.writeAttrSection("Account", details.Account)
	r.writeAttrSection("Service", details.Service)
	return nil
}

func (r *Runner) writeAttrSection(title string, attrs map[string]store.Value) {
	if len(attrs) == 0 {
		return
	}
	r.writePlainln("%s:", title)
	for _, name := range sortedAttrNames(attrs) {
		v := attrs[name]
		r.writePlain("  %-14s %-7s %s\n", name, v.Kind, ui.FormatValue(v))
	}
}

func sortedAttrNames(attrs map[string]store.Value) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfilesRemove deletes a profile from both settings trees.
func (r *Runner) ProfilesRemove(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: profile name", shared.ErrMissingArgument)
	}

	if !cmd.Bool("force") {
		if !r.interactive() {
			return fmt.Errorf("%w: pass --force to remove without a prompt", shared.ErrNotInteractive)
		}
		ok, err := r.confirm(fmt.Sprintf("Remove profile '%s'?", name))
		if err != nil {
			return err
		}
		if !ok {
			r.writePlain("Aborted.\n")
			return nil
		}
	}

	st, cleanup, err := r.openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := profile.Remove(st, name); err != nil {
		return err
	}

	r.logger.Info("profile removed", "name", name)
	r.writePlain("✓ Removed %s\n", name)
	return nil
}

// ProfilesTUI launches the interactive profile browser.
func (r *Runner) ProfilesTUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	st, cleanup, err := r.openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/m365prof-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(st)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
