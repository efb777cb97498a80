package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Roster input errors
	ErrRosterNotFound  = fmt.Errorf("roster file not found")
	ErrRosterParse     = fmt.Errorf("roster file could not be parsed")
	ErrMissingIdentity = fmt.Errorf("row is missing an identity")

	// Store and profile errors
	ErrProfileExists   = fmt.Errorf("profile already exists")
	ErrProfileNotFound = fmt.Errorf("profile not found")
	ErrStoreWrite      = fmt.Errorf("settings store write failed")
	ErrStoreClosed     = fmt.Errorf("settings store is closed")

	// Preflight errors
	ErrClientRunning  = fmt.Errorf("mail client is running")
	ErrNotInteractive = fmt.Errorf("confirmation required but stdin is not a terminal")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
