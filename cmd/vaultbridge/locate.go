package main

import (
	"errors"
	"fmt"

	"github.com/deixis/vaultbridge/internal/locator"
	"github.com/spf13/cobra"
)

func newLocateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Show which FileVault executable would be run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			out := cmd.OutOrStdout()
			path, err := e.bridge.Locate()
			var nf *locator.NotFoundError
			if errors.As(err, &nf) {
				_, _ = fmt.Fprintln(out, styles.Error.Render("✗ FileVault executable not found"))
				for _, p := range nf.Paths() {
					_, _ = fmt.Fprintf(out, "  %s\n", styles.Muted.Render(p))
				}
				return errFailed
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, path)
			return nil
		},
	}
}
