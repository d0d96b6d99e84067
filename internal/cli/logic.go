package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/idelchi/sizefinder/internal/sizefinder"
)

// newLogger creates the diagnostics logger writing to w.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

func logic(ctx context.Context, options sizefinder.Options, stdout, stderr io.Writer) error {
	jsonOutput := strings.ToLower(options.Output) == "json"

	options.Log = newLogger(stderr, options.Debug)

	// Keep stdout clean for JSON; show progress on an interactive stderr only.
	switch {
	case !jsonOutput:
		options.Progress = stdout

		fmt.Fprintln(stdout, banner())
		fmt.Fprintf(stdout, "Scanning %s\n", options.Path)
	case isTerminal(stderr):
		options.Progress = stderr
	default:
		options.Progress = io.Discard
	}

	// An interrupt ends collection early; the partial results are still reported.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	stats, err := sizefinder.Run(ctx, options)

	// Restore default signal behavior so a second interrupt terminates.
	stop()

	if err != nil {
		return err
	}

	switch strings.ToLower(options.Output) {
	case "json":
		return PrintJSON(stats, stdout)
	case "table":
		return PrintTable(stats, stdout)
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
