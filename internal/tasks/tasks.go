package tasks

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/roster"
	"github.com/tbarron/m365prof/internal/shared"
)

// RecordResult captures the outcome of provisioning a single roster record.
type RecordResult struct {
	Identity    string         // Mailbox identity from the roster (may be empty)
	ProfileName string         // Derived profile name (empty when identity was missing)
	Status      profile.Status // Created, Skipped, or Failed
	Err         error          // Cause for Skipped and Failed results
}

// RunSummary tallies one provisioning run. Created and Failed always sum to
// the number of records considered.
type RunSummary struct {
	RunID   string         // Unique identifier for this run
	Created int            // Profiles written completely
	Failed  int            // Records skipped, invalid, or failed mid-write
	Results []RecordResult // Per-record detail, in iteration order
}

// ProfileWriter is the single-record dependency of the engine. Satisfied by
// [profile.Writer].
type ProfileWriter interface {
	Create(profileName, identity string, makeDefault bool) profile.Outcome
}

// ProvisionEngine runs a roster through a profile writer sequentially.
type ProvisionEngine struct {
	writer ProfileWriter
	logger *log.Logger
}

// NewProvisionEngine creates an engine around the given writer.
func NewProvisionEngine(w ProfileWriter, logger *log.Logger) *ProvisionEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ProvisionEngine{writer: w, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ProvisionEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run provisions a profile for every roster record, in order, and returns the
// batch summary. Per-record errors are absorbed into the counters; nothing a
// single record does can abort the batch.
//
// When setFirstAsDefault is true, only the first record is asked to become
// the default profile. The flag is consumed after that record regardless of
// its outcome, so a skipped or failed first record is never retried as
// default by a later one.
func (e *ProvisionEngine) Run(records []roster.Record, baseName string, setFirstAsDefault bool, progress chan<- ProgressUpdate) *RunSummary {
	if baseName == "" {
		baseName = profile.DefaultBaseName
	}

	summary := &RunSummary{
		RunID:   shared.GenerateID(),
		Results: make([]RecordResult, 0, len(records)),
	}

	e.logger.Info("starting provisioning run", "run_id", summary.RunID, "records", len(records), "base_name", baseName)

	total := len(records)
	defaultPending := setFirstAsDefault

	for i, record := range records {
		result := RecordResult{Identity: record.UPN}

		if record.UPN == "" {
			e.logger.Warn("record has no identity, counting as failure", "row", i+1)
			result.Status = profile.Failed
			result.Err = fmt.Errorf("%w: row %d", shared.ErrMissingIdentity, i+1)
			summary.Failed++
			summary.Results = append(summary.Results, result)
			e.sendProgress(progress, recordResultUpdate(i+1, total, result))
			defaultPending = false
			continue
		}

		result.ProfileName = profile.Name(baseName, record.UPN)
		e.sendProgress(progress, creatingProfileUpdate(i+1, total, result.ProfileName))

		outcome := e.writer.Create(result.ProfileName, record.UPN, defaultPending)
		defaultPending = false

		result.Status = outcome.Status
		result.Err = outcome.Err
		if outcome.Status == profile.Created {
			summary.Created++
		} else {
			summary.Failed++
		}

		summary.Results = append(summary.Results, result)
		e.sendProgress(progress, recordResultUpdate(i+1, total, result))
	}

	e.logger.Info("provisioning run complete", "run_id", summary.RunID, "created", summary.Created, "failed", summary.Failed)
	return summary
}
