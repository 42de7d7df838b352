// Package normalize turns a raw FileVault process outcome into a
// CommandResult whose Success field can be trusted.
//
// FileVault sometimes exits 0 after failing internally, so the exit code
// alone is not believed: a run succeeds only when it exited 0 and its
// sanitized output carries no failure marker.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deixis/vaultbridge/internal/runner"
)

// NoExitCode is reported when the process was terminated by a signal.
const NoExitCode = -1

// CommandResult is the normalized result of one invocation.
// Error is empty exactly when Success is true.
type CommandResult struct {
	Success  bool   `json:"success"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error"`
}

// MarshalJSON encodes an empty Error as null.
func (r CommandResult) MarshalJSON() ([]byte, error) {
	type plain CommandResult
	var errMsg *string
	if r.Error != "" {
		errMsg = &r.Error
	}
	return json.Marshal(struct {
		plain
		Error *string `json:"error"`
	}{plain(r), errMsg})
}

// Normalize decodes and sanitizes both streams, reconciles the exit status
// against the markers and extracts an error message on failure.
func Normalize(o *runner.Outcome, m Markers) CommandResult {
	stdout := Sanitize(Decode(o.Stdout))
	stderr := Sanitize(Decode(o.Stderr))

	exitCode := NoExitCode
	if o.Exited {
		exitCode = o.ExitCode
	}

	found := m.Found(stdout, stderr)
	res := CommandResult{
		Success:  Reconcile(o.Success(), found),
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
	}
	if !res.Success {
		res.Error = ExtractError(stdout, stderr, found, exitCode, m)
	}
	return res
}

// Reconcile combines the process-reported status with marker detection.
func Reconcile(statusSuccess, markerFound bool) bool {
	return statusSuccess && !markerFound
}

// ExtractError picks the message for a failed run: stderr verbatim when
// present, else the marked stdout lines, else a generic message. The result
// is never empty.
func ExtractError(stdout, stderr string, markerFound bool, exitCode int, m Markers) string {
	if stderr != "" {
		return stderr
	}
	if markerFound {
		if lines := m.ErrorLines(stdout); len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}
	return fmt.Sprintf("Command failed with exit code %d", exitCode)
}
