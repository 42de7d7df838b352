package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/deixis/vaultbridge/internal/bridge"
	"github.com/deixis/vaultbridge/internal/config"
	"github.com/deixis/vaultbridge/internal/logging"
	"github.com/deixis/vaultbridge/internal/platform"
	"github.com/deixis/vaultbridge/internal/report"
	"github.com/spf13/cobra"
)

// errFailed reports a FileVault failure that has already been printed.
var errFailed = errors.New("command failed")

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	cfgFile      string
	resourceRoot string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "vaultbridge",
		Short: "Run FileVault and report normalized results",
		Long: `vaultbridge locates the FileVault executable, runs it and turns its
output into a single result: success, sanitized stdout and stderr, the exit
code and an error message.

FileVault sometimes exits 0 after a failure; vaultbridge also scans the
output for failure markers so the reported status can be trusted.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: nearest "+config.FileName+")")
	cmd.PersistentFlags().StringVar(&opts.resourceRoot, "resource-root", "", "directory holding the bundled FileVault executable")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCmd(opts),
		newLocateCmd(opts),
		newHistoryCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		printErrorTo(os.Stderr, err)
	}
	return err
}

func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, styles.Error.Render("Error:"), err)
}

// env is everything a subcommand needs to talk to FileVault.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	disk   *report.DiskStore // nil when history is off
	store  report.Store      // nil when history is off
	bridge *bridge.Bridge
	close  func() error
}

// load reads the configuration and builds the bridge. Run history is
// recorded only into a configured history.dir unless tempHistory is set, in
// which case an unset dir falls back to a per-process temp directory.
func (o *globalOptions) load(tempHistory bool) (*env, error) {
	loaded, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config
	if o.resourceRoot != "" {
		cfg.ResourceRoot = o.resourceRoot
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	if loaded.Path != "" {
		log.Debug("loaded config", "path", loaded.Path)
	}

	e := &env{cfg: cfg, log: log, close: closeLog}
	if cfg.History.Dir != "" || tempHistory {
		e.disk = report.NewDiskStore(cfg.History.Dir)
		e.store = report.NewLRUStore(cfg.HistoryCapacity(), e.disk)
	}
	e.bridge = bridge.FromConfig(cfg, platform.Current(), e.store, log)
	return e, nil
}

func (o *globalOptions) loadConfig() (*config.LoadResult, error) {
	if o.cfgFile != "" {
		loaded, err := config.LoadFile(o.cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return loaded, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	loaded, err := config.Load(wd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return loaded, nil
}
