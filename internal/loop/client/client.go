// Package client is the per-terminal frontend: it reads keyboard and mouse
// input, forwards it to a simulation driver and draws its snapshots.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/dodger/internal/draw"
	"github.com/tomz197/dodger/internal/input"
	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/loop/sim"
	"github.com/tomz197/dodger/internal/object"
	"github.com/tomz197/dodger/internal/submit"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	driver       *sim.Driver
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	submitter    *submit.Client
	logger       *log.Logger

	form     *Form
	submitCh <-chan error
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Submitter    *submit.Client // Nil disables score submission
	Logger       *log.Logger
}

// NewClient creates a client for the given driver. The driver must be run
// separately; see loop.Run.
func NewClient(d *sim.Driver, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, config.PixelScale)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		driver:       d,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		submitter:    opts.Submitter,
		logger:       logger,
	}
}

// FieldFor returns the playfield that a terminal of the given size shows.
func FieldFor(termWidth, termHeight int) object.Field {
	renderWidth, renderHeight, _, _ := clampTermSize(termWidth, termHeight)
	return object.Field{
		Width:  float64(renderWidth) * config.PixelScale,
		Height: float64(renderHeight*2) * config.PixelScale,
	}
}

// Run starts the client loop. Blocks until the player quits, the input
// ends, the driver stops or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	input.EnableMouse(c.writer)
	defer func() {
		input.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()

		// Process input
		c.processInput()

		// Check for driver events
		c.processDriverEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateGameOver:
			c.updateGameOverState(ctx)
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if c.inputStream.Closed() || c.state.Input.Interrupt {
		c.state.Running = false
		return
	}

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	typing := c.state.GameState == GameStateGameOver && c.form != nil && c.form.Focused()
	if c.state.Input.Quit && !typing {
		c.state.Running = false
	}
}

// processDriverEvents handles events from the driver.
func (c *Client) processDriverEvents() {
	for {
		select {
		case event, ok := <-c.driver.Events():
			if !ok {
				// Driver stopped
				c.state.Running = false
				return
			}
			switch event.Type {
			case sim.EventGameStarted:
				c.state.starting = false
				c.state.GameState = GameStatePlaying
				c.form = nil
				c.submitCh = nil
			case sim.EventGameOver:
				c.state.GameState = GameStateGameOver
				c.state.LastEvent = event
				c.form = NewForm(event.ScoreText)
				c.logger.Info("game over", "time", event.ScoreText)
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area and tells the driver about the new field.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetOffset(offsetCol, offsetRow)
		c.canvas.ForceRedraw()
		c.chunkWriter.SetOffset(offsetCol, offsetRow)
		c.driver.Resize(FieldFor(termWidth, termHeight))
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(1, min(termWidth, config.MaxTermWidth))
	renderHeight = max(1, min(termHeight, config.MaxTermHeight))
	offsetCol = max(0, (termWidth-renderWidth)/2)
	offsetRow = max(0, (termHeight-renderHeight)/2)
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState forwards this frame's controls to the driver.
func (c *Client) updatePlayingState() {
	c.driver.SendInput(c.gameInput(c.state.Input))
}

// gameInput translates terminal input into simulation input. Mouse cells
// become pointer targets in field coordinates.
func (c *Client) gameInput(in input.Input) object.Input {
	out := object.Input{
		Up:    in.Up,
		Down:  in.Down,
		Left:  in.Left,
		Right: in.Right,
	}
	if in.HasMouse {
		x, y := c.canvas.TerminalToLogical(in.Mouse.Col, in.Mouse.Row)
		out.Pointer.X, out.Pointer.Y = x, y
		out.HasPointer = true
	}
	return out
}

// updateGameOverState runs the submission form and restart controls.
func (c *Client) updateGameOverState(ctx context.Context) {
	c.pollSubmission()
	if c.form == nil {
		return
	}

	in := c.state.Input
	switch {
	case in.Tab:
		c.form.NextField()
	case in.Escape && c.form.Focused():
		c.form.Focus = FieldNone
	case in.Enter:
		c.submitScore(ctx)
	case c.form.Focused():
		c.form.Edit(in)
	case in.Space || in.Restart:
		c.startGame()
	}
}

// submitScore starts an asynchronous submission of the form.
func (c *Client) submitScore(ctx context.Context) {
	if !c.form.Begin() {
		return
	}
	c.submitCh = c.submitter.SubmitAsync(ctx, c.form.Entry())
}

// pollSubmission collects a finished submission result, if any.
func (c *Client) pollSubmission() {
	if c.submitCh == nil {
		return
	}
	select {
	case err, ok := <-c.submitCh:
		if !ok {
			c.submitCh = nil
			return
		}
		if err != nil {
			c.logger.Warn("score submission failed", "err", err)
		}
		if c.form != nil {
			c.form.Finish(err)
		}
		c.submitCh = nil
	default:
	}
}

// startGame asks the driver for a new game.
func (c *Client) startGame() {
	if c.state.starting {
		return
	}
	input.ResetKeyInput(c.inputStream)
	c.state.starting = true
	c.driver.Start()
}
