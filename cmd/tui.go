package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"launcher/internal/index"
	"launcher/internal/launch"
	"launcher/internal/tui"
)

// runTUI starts discovery, runs the picker, and launches whatever it
// commits. The picker and the launch coordinator run concurrently; the
// child only starts once the picker has released the terminal.
func runTUI(cmd *cobra.Command, query string) error {
	// The picker owns the terminal, so logs are dropped unless a file is set.
	logger, closer, err := openLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	x := index.Start(scanDirs(), discoveryOptions(logger))
	h := launch.NewHandoff()

	pickerDone := make(chan struct{})
	var pickerErr error
	go func() {
		defer close(pickerDone)
		defer h.Close()
		_, pickerErr = tui.Run(tui.Config{
			Index:     x,
			Handoff:   h,
			BatchSize: cfg.BatchSize,
			Theme:     cfg.Theme,
			Query:     query,
			Logger:    logger,
		})
	}()

	code, launched, err := launch.Coordinate(cmd.Context(), h, launch.Options{
		Logger: logger,
		Settle: func() error {
			<-pickerDone
			return pickerErr
		},
	})
	<-pickerDone
	if pickerErr != nil {
		return fmt.Errorf("run picker: %w", pickerErr)
	}
	if err != nil {
		return err
	}
	if !launched {
		logger.Debug("picker closed without launching")
		return nil
	}

	logger.Info("child exited", "code", code)
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
