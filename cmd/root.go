// Package cmd contains the launcher's CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"launcher/internal/config"
	"launcher/internal/index"
	"launcher/internal/logging"
	"launcher/internal/paths"
)

// Version is set via -ldflags.
var Version = "dev"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFile   string
	flagBatchSize int
	flagKeyBy     string
	flagDirs      []string

	// cfg is loaded once per invocation by loadConfig.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "launcher [query]",
	Short: "Fuzzy-find and launch desktop applications",
	Long: `launcher scans the freedesktop application directories for .desktop
files, lets you fuzzy-search them by name and description, and runs the
best match when you press enter. Its exit status is the launched
program's.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return runTUI(cmd, query)
	},
}

// Execute runs the root command and exits with the launched program's code.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// errorHandler reports failures through fang's handler but stays quiet
// for a launched program's non-zero exit, which is not a launcher error.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default $XDG_CONFIG_HOME/launcher/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append logs to this file")
	rootCmd.PersistentFlags().IntVar(&flagBatchSize, "batch-size", index.DefaultBatchSize, "entries indexed per redraw")
	rootCmd.PersistentFlags().StringVar(&flagKeyBy, "key-by", "search", "index key: search (dedupe by name and comment) or path")
	rootCmd.PersistentFlags().StringArrayVar(&flagDirs, "dir", nil, "extra directory to scan (repeatable)")
}

// loadConfig reads the config file and environment, then applies flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, _, err := config.Load(config.LoadOptions{ConfigFilePath: flagConfig})
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		loaded.Log.File = flagLogFile
	}
	if flags.Changed("batch-size") {
		loaded.BatchSize = flagBatchSize
	}
	if flags.Changed("key-by") {
		loaded.KeyBy = flagKeyBy
	}
	loaded.ExtraDirs = append(loaded.ExtraDirs, flagDirs...)

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	cfg = loaded
	return nil
}

// openLogger builds the logger for a command. Logs go to the configured
// file when there is one, otherwise to fallback.
func openLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	return logging.Open(cfg.Log.File, cfg.Log.Level, fallback)
}

func scanDirs() []string {
	return paths.Dirs(paths.Options{
		Extra:    cfg.ExtraDirs,
		Fallback: cfg.FallbackDir,
	})
}

func discoveryOptions(logger *log.Logger) index.Options {
	return index.Options{
		Exclude: cfg.Exclude,
		Workers: cfg.Workers,
		KeyBy:   cfg.KeyMode(),
		Logger:  logger,
	}
}
