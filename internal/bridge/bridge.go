// Package bridge is the caller-facing entry point: it resolves the
// FileVault executable, runs it and returns one normalized result.
//
// Path resolution and spawn failures are returned as errors and produce no
// result. A run that started but failed is a normal result with Success
// false. A Bridge holds no mutable state of its own and may be used from
// many goroutines at once.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/deixis/vaultbridge/internal/config"
	"github.com/deixis/vaultbridge/internal/locator"
	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/deixis/vaultbridge/internal/platform"
	"github.com/deixis/vaultbridge/internal/report"
	"github.com/deixis/vaultbridge/internal/runner"
)

// Invocation is the result of one run plus its bookkeeping.
type Invocation struct {
	RunID      string
	Executable string
	StartedAt  time.Time
	Duration   time.Duration
	Truncated  bool
	Result     normalize.CommandResult
}

// Options configures a Bridge.
type Options struct {
	Locator *locator.Locator
	Runner  *runner.Runner
	Markers normalize.Markers // empty lists fall back to normalize.DefaultMarkers
	Store   report.Store      // optional run history
	Logger  *slog.Logger
}

// Bridge runs FileVault commands.
type Bridge struct {
	locator *locator.Locator
	runner  *runner.Runner
	markers normalize.Markers
	store   report.Store
	log     *slog.Logger
}

// New creates a Bridge from opts.
func New(opts Options) *Bridge {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := opts.Runner
	if r == nil {
		r = &runner.Runner{Profile: opts.Locator.Profile, Logger: log}
	}
	return &Bridge{
		locator: opts.Locator,
		runner:  r,
		markers: opts.Markers.Merge(),
		store:   opts.Store,
		log:     log,
	}
}

// FromConfig builds a Bridge for the given platform from loaded configuration.
func FromConfig(cfg *config.Config, base platform.Profile, store report.Store, log *slog.Logger) *Bridge {
	profile := cfg.Profile(base)
	root := cfg.ResourceRoot
	if root == "" {
		root = DefaultResourceRoot()
	}
	return New(Options{
		Locator: &locator.Locator{
			Profile:      profile,
			ResourceRoot: root,
			Binary:       cfg.BinaryName(),
		},
		Runner: &runner.Runner{
			Profile:   profile,
			Timeout:   cfg.Timeout(),
			MaxOutput: cfg.MaxOutputBytes(),
			Logger:    log,
		},
		Markers: cfg.ErrorMarkers(),
		Store:   store,
		Logger:  log,
	})
}

// DefaultResourceRoot is the directory holding the running executable,
// which is where a packaged application keeps its bundled resources.
func DefaultResourceRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Locate resolves the FileVault executable without running it.
func (b *Bridge) Locate() (string, error) {
	return b.locator.Locate()
}

// Markers returns the failure markers the bridge reconciles against.
func (b *Bridge) Markers() normalize.Markers {
	return b.markers
}

// Run executes FileVault with args and returns the normalized result.
func (b *Bridge) Run(ctx context.Context, args []string) (*normalize.CommandResult, error) {
	inv, err := b.Invoke(ctx, args)
	if err != nil {
		return nil, err
	}
	return &inv.Result, nil
}

// Invoke is Run with the run's bookkeeping attached. When a history store
// is configured the run is recorded; a failure to record is logged and does
// not fail the invocation.
func (b *Bridge) Invoke(ctx context.Context, args []string) (*Invocation, error) {
	exe, err := b.locator.Locate()
	if err != nil {
		b.log.Error("filevault executable not found", "err", err)
		return nil, err
	}

	out, err := b.runner.Run(ctx, exe, args)
	if err != nil {
		b.log.Error("filevault invocation failed", "path", exe, "err", err)
		return nil, fmt.Errorf("running filevault: %w", err)
	}

	inv := &Invocation{
		RunID:      out.RunID,
		Executable: exe,
		StartedAt:  out.StartedAt,
		Duration:   out.Duration,
		Truncated:  out.Truncated,
		Result:     normalize.Normalize(out, b.markers),
	}

	log := b.log.With("run_id", inv.RunID, "exit_code", inv.Result.ExitCode)
	if inv.Result.Success {
		log.Info("filevault command succeeded", "duration", inv.Duration)
	} else {
		if out.Success() {
			log.Warn("exit status 0 overruled by error marker")
		}
		log.Info("filevault command failed", "error", inv.Result.Error)
	}

	b.record(inv, args)
	return inv, nil
}

func (b *Bridge) record(inv *Invocation, args []string) {
	if b.store == nil {
		return
	}
	rec := &report.Record{
		ID:         inv.RunID,
		Executable: inv.Executable,
		Args:       runner.Redact(args),
		StartedAt:  inv.StartedAt,
		Duration:   inv.Duration,
		Truncated:  inv.Truncated,
		Result:     inv.Result,
	}
	if err := b.store.Save(rec); err != nil {
		b.log.Warn("recording run failed", "run_id", inv.RunID, "err", err)
	}
}
