// Package runner starts the FileVault executable and captures its output.
//
// Both output streams are always captured, never inherited, so the caller
// never sees a console. Run blocks until the child exits. By default there
// is no timeout; a hung child hangs its invocation.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/deixis/vaultbridge/internal/platform"
	"github.com/google/uuid"
)

// ErrSpawn is matched by every SpawnError.
var ErrSpawn = errors.New("spawn failed")

// SpawnError reports that the operating system could not start the process.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("Failed to execute command %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSpawn) hold.
func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

// waitDelay bounds how long Wait keeps reading after the child is killed,
// since a grandchild may still hold the output pipes open.
const waitDelay = time.Second

// Runner executes the FileVault binary.
type Runner struct {
	Profile   platform.Profile
	Timeout   time.Duration // 0 waits for the child indefinitely
	MaxOutput int           // bytes per stream; 0 captures everything
	Logger    *slog.Logger
}

// Run starts path with args and waits for it to exit. An error is returned
// only when the process could not be started or waited for; a process that
// ran and failed is reported through the Outcome.
func (r *Runner) Run(ctx context.Context, path string, args []string) (*Outcome, error) {
	if path == "" {
		return nil, &SpawnError{Path: path, Err: errors.New("empty executable path")}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	runID := uuid.New().String()
	log := r.logger().With("run_id", runID)
	log.Debug("executing filevault", "path", path, "argc", len(args), "args", Redact(args))

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.SysProcAttr = r.Profile.SysProcAttr()
	if ctx.Done() != nil {
		cmd.WaitDelay = waitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = r.capture(&stdout)
	cmd.Stderr = r.capture(&stderr)

	started := time.Now()
	if err := cmd.Start(); err != nil {
		log.Debug("spawn failed", "path", path, "err", err)
		return nil, &SpawnError{Path: path, Err: err}
	}

	waitErr := cmd.Wait()
	elapsed := time.Since(started)

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			// Output copying failed; the exit status is unreliable.
			return nil, fmt.Errorf("waiting for %s: %w", path, waitErr)
		}
	}

	// ExitCode is -1 when the child was killed by a signal.
	exitCode := cmd.ProcessState.ExitCode()

	out := &Outcome{
		RunID:     runID,
		Path:      path,
		Args:      args,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		ExitCode:  exitCode,
		Exited:    exitCode >= 0,
		Truncated: r.MaxOutput > 0 && (stdout.Len() >= r.MaxOutput || stderr.Len() >= r.MaxOutput),
		StartedAt: started,
		Duration:  elapsed,
	}
	log.Debug("filevault exited", "exit_code", exitCode, "exited", out.Exited, "duration", elapsed)
	return out, nil
}

func (r *Runner) capture(buf *bytes.Buffer) io.Writer {
	if r.MaxOutput <= 0 {
		return buf
	}
	return &limitWriter{buf: buf, limit: r.MaxOutput}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Report all bytes as consumed to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
