package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/object"
)

// EventType identifies the type of driver event.
type EventType int

const (
	EventGameStarted EventType = iota
	EventGameOver
)

// Event is sent from the driver to its frontend.
type Event struct {
	Type      EventType
	Score     int    // Tenths of a second, for EventGameOver
	ScoreText string // Score formatted with one decimal place
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdResize
)

type command struct {
	kind  commandKind
	field object.Field
}

// Driver owns a Session and steps it at a fixed tick on a single goroutine.
// Frontends talk to it through channels and read published snapshots.
type Driver struct {
	session  *Session
	snapshot atomic.Pointer[Snapshot]
	tickTime time.Duration

	inputCh   chan object.Input
	commandCh chan command
	eventsCh  chan Event
	done      chan struct{} // Closed when Run returns

	input object.Input // Latest merged input, owned by Run
}

// NewDriver creates a driver for a new idle session.
func NewDriver(tuning config.Tuning, field object.Field) *Driver {
	d := &Driver{
		session:   NewSession(tuning, field),
		tickTime:  config.TickTime,
		inputCh:   make(chan object.Input, 64),
		commandCh: make(chan command, 16),
		eventsCh:  make(chan Event, 16),
		done:      make(chan struct{}),
	}
	d.snapshot.Store(d.session.Snapshot())
	return d
}

// Run steps the session until the context is cancelled, then closes the
// events channel.
func (d *Driver) Run(ctx context.Context) {
	defer close(d.eventsCh)
	defer close(d.done)

	ticker := time.NewTicker(d.tickTime)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case frameStart := <-ticker.C:
			delta := frameStart.Sub(lastTime)
			lastTime = frameStart

			d.processCommands()
			d.collectInputs()
			d.step(delta)
			d.snapshot.Store(d.session.Snapshot())
		}
	}
}

// step runs one tick and reports the phase change it caused, if any.
func (d *Driver) step(delta time.Duration) {
	before := d.session.Phase()
	d.session.Step(delta, d.input)
	d.input.HasPointer = false

	if before == PhasePlaying && d.session.Phase() == PhaseGameOver {
		score := d.session.Score()
		d.emit(Event{Type: EventGameOver, Score: score, ScoreText: FormatScore(score)})
	}
}

// processCommands applies pending start and resize requests.
func (d *Driver) processCommands() {
	for {
		select {
		case cmd := <-d.commandCh:
			switch cmd.kind {
			case cmdStart:
				if err := d.session.Start(); err == nil {
					d.input = object.Input{}
					d.emit(Event{Type: EventGameStarted})
				}
			case cmdResize:
				d.session.Resize(cmd.field)
			}
		default:
			return
		}
	}
}

// collectInputs merges all pending inputs: the newest key state wins and
// the newest pointer sample is kept even if a later input has none.
func (d *Driver) collectInputs() {
	for {
		select {
		case in := <-d.inputCh:
			pointer, hasPointer := d.input.Pointer, d.input.HasPointer
			d.input = in
			if !in.HasPointer && hasPointer {
				d.input.Pointer, d.input.HasPointer = pointer, true
			}
		default:
			return
		}
	}
}

func (d *Driver) emit(ev Event) {
	select {
	case d.eventsCh <- ev:
	default:
	}
}

// SendInput queues input for the next tick. Drops it if the queue is full.
func (d *Driver) SendInput(in object.Input) {
	select {
	case d.inputCh <- in:
	default:
		// Input channel full, drop input
	}
}

// Start requests a new game. Ignored while a game is running.
func (d *Driver) Start() {
	d.send(command{kind: cmdStart})
}

// Resize requests new field bounds.
func (d *Driver) Resize(field object.Field) {
	d.send(command{kind: cmdResize, field: field})
}

// send queues a command for the next tick. Once Run has returned the
// command is dropped.
func (d *Driver) send(cmd command) {
	select {
	case d.commandCh <- cmd:
	case <-d.done:
	}
}

// Snapshot returns the latest published snapshot.
func (d *Driver) Snapshot() *Snapshot {
	return d.snapshot.Load()
}

// Events returns the channel of game events. It is closed when Run returns.
func (d *Driver) Events() <-chan Event {
	return d.eventsCh
}
