package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
	"github.com/jamesainslie/genindex/pkg/genindex/logging"
	"github.com/jamesainslie/genindex/pkg/genindex/manifest"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
	"github.com/spf13/cobra"
)

var logger = logging.Get("cli")

// errInterrupted is returned when a signal stopped the run early.
var errInterrupted = errors.New("generation interrupted")

// runGenerate is the root command handler.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogging(cmd, cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	root := cfg.DefaultPath
	if len(args) > 0 {
		root = args[0]
	}
	if root, err = config.ExpandPath(root); err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	f, err := buildFilter(cfg)
	if err != nil {
		return err
	}

	opts := buildOptions(cfg)
	if opts.Verbose {
		opts.Reporter = indexer.ReporterFunc(func(path string, kind types.EntryKind) {
			logger.Debug("listed", "path", path, "kind", kind.String())
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := indexer.New(f, opts).Generate(ctx, root)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		recordRun(cfg, res)
	}

	if !getQuiet() {
		printSummary(cmd.OutOrStdout(), res)
	}

	if res.Interrupted {
		return errInterrupted
	}
	return nil
}

// initLogging configures console output from the verbosity flags and the
// log file from the configuration.
func initLogging(cmd *cobra.Command, cfg *config.Config) error {
	return logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Path:         cfg.Logging.Path,
		Components:   cfg.Logging.Components,
		ConsoleLevel: logging.ConsoleLevelFor(getVerbose(), getQuiet()),
		Console:      cmd.ErrOrStderr(),
	})
}

// recordRun stores res in the run history. Failures are logged; they do
// not fail the run.
func recordRun(cfg *config.Config, res *indexer.Result) {
	m, err := openHistory(cfg)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	if err := m.EnsureDir(); err != nil {
		logger.Warn("cannot create history directory", "dir", m.Dir(), "error", err)
		return
	}

	entry, err := m.LogRun(res, runSettings(cfg))
	if err != nil {
		logger.Warn("cannot record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", entry.ID)
}

// openHistory returns the run history at the configured location.
func openHistory(cfg *config.Config) (*manifest.Manifest, error) {
	dir := cfg.History.Path
	if dir == "" {
		dir = config.HistoryDir()
	}
	return manifest.New(dir)
}
