package runner

import "time"

// Outcome holds the raw result of one process execution.
type Outcome struct {
	RunID     string        // unique identifier for this run
	Path      string        // executable that was started
	Args      []string      // arguments as passed by the caller
	Stdout    []byte        // captured stdout (may be truncated)
	Stderr    []byte        // captured stderr (may be truncated)
	ExitCode  int           // process exit code; -1 when Exited is false
	Exited    bool          // false when the process was terminated by a signal
	Truncated bool          // true if output exceeded the size cap
	StartedAt time.Time     // when the process was started
	Duration  time.Duration // wall time until the process exited
}

// Success reports whether the process ran and exited with code 0.
func (o *Outcome) Success() bool {
	return o.Exited && o.ExitCode == 0
}
