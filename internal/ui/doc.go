// Package ui implements the interactive terminal surfaces using bubbletea's Elm architecture.
//
// The profile browser provides a multi-view workflow over the settings store:
//  1. [ProfileListView] : Browse provisioned profiles with identity and default marker
//  2. [DetailView] : Inspect the account and service attributes of one profile
//  3. [ConfirmDeleteView] : Confirm removal of a profile from both trees
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. Store
// reads and deletes run inside tea.Cmd closures so the event loop never blocks
// on the database.
//
// The package also exposes [Confirm], a single-key yes/no prompt used before
// mutating runs when the mail client appears to be open.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, x, y/n, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
