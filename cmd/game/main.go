package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/dodger/internal/config"
	"github.com/tomz197/dodger/internal/loop"
	lconfig "github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/submit"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// The screen belongs to the game, so logs go to a file or nowhere.
	logOut, closeLog, err := openLog(config.GetEnv("DODGER_LOG_FILE", ""))
	if err != nil {
		return err
	}
	defer closeLog()
	logger := config.NewLogger(logOut, "game")

	tuning, err := lconfig.LoadTuningOrDefault(config.GetEnv("DODGER_TUNING", ""))
	if err != nil {
		return fmt.Errorf("failed to load tuning: %w", err)
	}

	submitter := submit.NewClient(
		config.GetEnv("DODGER_SUBMIT_URL", ""),
		config.GetEnvDuration("DODGER_SUBMIT_TIMEOUT", submit.DefaultTimeout),
		logger,
	)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Tuning:    tuning,
		Submitter: submitter,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("game error", "err", err)
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// openLog opens the log destination. An empty path discards logs.
func openLog(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}
