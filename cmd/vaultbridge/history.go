package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs or show one run in detail",
		Long: `Without arguments, list the most recent runs recorded in history.dir.
With a run ID, print that run's stored result.

History only survives between invocations when history.dir is set in the
config file; otherwise each process records into its own temporary directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			if e.cfg.History.Dir == "" {
				return errors.New("history.dir is not configured")
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				rec, err := e.store.Load(args[0])
				if err != nil {
					return fmt.Errorf("loading run %s: %w", args[0], err)
				}
				renderResult(out, rec.ID, rec.Duration, rec.Result, e.bridge.Markers())
				_, _ = fmt.Fprintf(out, "%s %s %s\n", styles.Muted.Render("ran"), rec.Executable, strings.Join(rec.Args, " "))
				return nil
			}

			recs, err := e.disk.List(limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				_, _ = fmt.Fprintln(out, styles.Muted.Render("No runs recorded."))
				return nil
			}
			for _, rec := range recs {
				status := styles.Success.Render(rec.Status())
				if !rec.Result.Success {
					status = styles.Error.Render(rec.Status())
				}
				_, _ = fmt.Fprintf(out, "%s  %s  %s  %s\n",
					rec.ID,
					styles.Muted.Render(rec.StartedAt.Format(time.DateTime)),
					status,
					strings.Join(rec.Args, " "),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to list")
	return cmd
}
