package tasks

import (
	"fmt"

	"github.com/tbarron/m365prof/internal/profile"
)

// ProgressUpdate represents a progress event during a provisioning run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current record number within the run
	Total   int    // Total records in the run
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	CreateProfile Phase = iota
	RecordDone
)

func (p Phase) String() string {
	switch p {
	case CreateProfile:
		return "create_profile"
	case RecordDone:
		return "record_done"
	default:
		return ""
	}
}

func creatingProfileUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateProfile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Creating profile: %s", step, total, name),
	}
}

func recordResultUpdate(step, total int, result RecordResult) ProgressUpdate {
	var message string
	switch result.Status {
	case profile.Created:
		message = fmt.Sprintf("[%d/%d] ✓ %s", step, total, result.ProfileName)
	case profile.Skipped:
		message = fmt.Sprintf("[%d/%d] ⚠ %s already exists", step, total, result.ProfileName)
	default:
		name := result.ProfileName
		if name == "" {
			name = "(missing identity)"
		}
		message = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, result.Err)
	}

	return ProgressUpdate{
		Phase:   RecordDone,
		Step:    step,
		Total:   total,
		Message: message,
		Data:    result,
	}
}
