// Package loop runs one game: a simulation driver paired with a terminal client.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/dodger/internal/draw"
	"github.com/tomz197/dodger/internal/loop/client"
	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/loop/sim"
	"github.com/tomz197/dodger/internal/submit"
)

// Options configures a game run.
type Options struct {
	Tuning       config.Tuning // Zero value means config.DefaultTuning()
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Submitter    *submit.Client
	Logger       *log.Logger
}

// Run plays on the terminal behind r and w until the player quits, the
// input ends or ctx is cancelled. Every call gets its own independent game.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	tuning := opts.Tuning
	if tuning == (config.Tuning{}) {
		tuning = config.DefaultTuning()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	driver := sim.NewDriver(tuning, client.FieldFor(termWidth, termHeight))
	driverDone := make(chan struct{})
	go func() {
		driver.Run(ctx)
		close(driverDone)
	}()

	c := client.NewClient(driver, r, w, client.ClientOptions{
		TermSizeFunc: sizeFunc,
		Username:     opts.Username,
		Submitter:    opts.Submitter,
		Logger:       opts.Logger,
	})
	err = c.Run(ctx)

	cancel()
	<-driverDone
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	return nil
}
