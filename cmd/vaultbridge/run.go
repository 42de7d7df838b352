package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/deixis/vaultbridge/internal/vault"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run [--json] -- <filevault args...>",
		Short: "Run FileVault with the given arguments",
		Example: `  vaultbridge run -- info secret.fv
  vaultbridge run --json -- decrypt secret.fv -p hunter2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			inv, err := e.bridge.Invoke(ctx, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(inv.Result); err != nil {
					return err
				}
			} else {
				renderResult(out, inv.RunID, inv.Duration, inv.Result, e.bridge.Markers())
			}

			if !inv.Result.Success {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	return cmd
}

// renderResult prints a human-readable result.
func renderResult(w io.Writer, runID string, d time.Duration, res normalize.CommandResult, m normalize.Markers) {
	status := styles.Success.Render("✓ OK")
	if !res.Success {
		status = styles.Error.Render("✗ FAIL")
	}
	meta := fmt.Sprintf("exit %d, %s, run %s", res.ExitCode, d.Round(time.Millisecond), runID)
	if res.ExitCode == normalize.NoExitCode {
		meta = fmt.Sprintf("no exit code, %s, run %s", d.Round(time.Millisecond), runID)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", status, styles.Muted.Render("("+meta+")"))

	writeStdout(w, res, m)
	writeSection(w, "stderr", res.Stderr)
	if !res.Success {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.Error.Render("error:"), strings.TrimRight(res.Error, "\n"))
	}
}

// writeStdout prints stdout lines colored by their log level.
func writeStdout(w io.Writer, res normalize.CommandResult, m normalize.Markers) {
	entries := vault.LogLines(res, m)
	if len(entries) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, styles.Label.Render("stdout:"))
	for _, e := range entries {
		line := e.Message
		switch e.Level {
		case vault.LevelError:
			line = styles.Error.Render(line)
		case vault.LevelSuccess:
			line = styles.Success.Render(line)
		case vault.LevelWarning:
			line = styles.Warning.Render(line)
		}
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}

func writeSection(w io.Writer, label, text string) {
	if text == "" {
		return
	}
	_, _ = fmt.Fprintln(w, styles.Label.Render(label+":"))
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}
