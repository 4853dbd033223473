package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/migrc/pkg/batch"
	"github.com/walteh/migrc/pkg/config"
	"github.com/walteh/migrc/pkg/log"
	"github.com/walteh/migrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	async      bool
)

// newRootCmd builds the migrc command tree
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrc",
		Short: "batch source-pattern migrator",
		Long:  "migrc rewrites legacy source constructs to their migrated form across a set of candidate files, driven by pattern rules from a config file.",
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".migrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "process files concurrently")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// newRunCmd builds the run command: apply rewrites and persist them
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "apply the configured rewrites to the candidate files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), false)
		},
	}
}

// newStatusCmd builds the status command: a dry run that reports what
// would change without writing anything
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "report which candidate files would change, without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), true)
		},
	}
}

// runBatch loads the config, compiles the rules, and runs the batch.
// Partial success (some files updated, some failed or skipped) is a normal
// outcome, not an error; every file's fate shows up in the report.
func runBatch(ctx context.Context, dryRun bool) error {
	// Set up structured logging
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}
	zlog := zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	// Set up the console logger
	logger := log.New(os.Stdout, logLevel)

	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// Compile rules and injection
	rules, err := cfg.CompileRules()
	if err != nil {
		return errors.Errorf("compiling rules: %w", err)
	}
	injection, err := cfg.CompileInjection()
	if err != nil {
		return errors.Errorf("compiling injection: %w", err)
	}

	action := "updating"
	if dryRun {
		action = "checking"
	}
	logger.Header(action + " " + cfg.String())

	// Create and run the batch
	runner, err := batch.NewRunner(batch.Options{
		Paths:     cfg.Paths,
		Root:      cfg.Root,
		Glob:      cfg.Glob,
		Rules:     rules,
		Injection: injection,
		DryRun:    dryRun,
		Async:     async,
		Reporter:  status.NewConsoleReporter(logger),
	})
	if err != nil {
		return errors.Errorf("creating batch runner: %w", err)
	}

	if _, err := runner.Run(ctx); err != nil {
		return errors.Errorf("running batch: %w", err)
	}

	return nil
}
