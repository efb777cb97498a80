package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/term"
)

var getRuntime = func() string { return runtime.GOOS }

// IsTerminal reports whether stdin is attached to a terminal. Commands that
// need a confirmation refuse to prompt when it is not.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ProcessRunning reports whether a process with the given name is currently
// active for any user session.
//
// Supports macOS, Linux, and Windows platforms.
func ProcessRunning(name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: process name is empty", ErrInvalidArgument)
	}

	rt := getRuntime()
	switch rt {
	case "darwin", "linux":
		// pgrep exits 1 when no process matches, which is not an error here.
		cmd := exec.Command("pgrep", "-xi", name)
		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
				return false, nil
			}
			return false, fmt.Errorf("failed to check for running process: %w", err)
		}
		return true, nil
	case "windows":
		out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("IMAGENAME eq %s.exe", name), "/NH").Output()
		if err != nil {
			return false, fmt.Errorf("failed to check for running process: %w", err)
		}
		return strings.Contains(strings.ToLower(string(out)), strings.ToLower(name)), nil
	default:
		return false, fmt.Errorf("unsupported platform: %s", rt)
	}
}
