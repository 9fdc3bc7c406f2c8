package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/dodger/internal/draw"
	"github.com/tomz197/dodger/internal/loop/config"
	"github.com/tomz197/dodger/internal/loop/sim"
	"github.com/tomz197/dodger/internal/physics"
)

const (
	colorText    = 0xFFFFFF
	colorDim     = 0x9E9E9E
	colorHeading = 0xFFFFFF
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.driver.Snapshot()
	if c.state.GameState != GameStateStart && snapshot.HasPlayer {
		c.drawWorld(snapshot)
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	if c.state.GameState == GameStatePlaying {
		c.drawPowerUpLabels(snapshot)
	}

	// Draw UI overlay
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawWorld paints power-ups, enemies, particles and the player, in that order.
func (c *Client) drawWorld(s *sim.Snapshot) {
	cv := c.canvas

	for _, p := range s.PowerUps {
		cv.FillCircle(point(p.Pos), p.Radius, p.Kind.Color(), 1)
	}

	for _, e := range s.Enemies {
		cv.FillCircle(point(e.Pos), e.Radius, config.ColorEnemy, 1)
		tip := e.Pos.Add(e.Vel.Scale(3))
		cv.DrawLine(point(e.Pos), point(tip), colorHeading)
	}

	for _, p := range s.Particles {
		cv.FillCircle(point(p.Pos), p.Radius, p.Color, p.Alpha)
	}

	player := point(s.Player.Pos)
	cv.FillCircle(player, s.Player.Radius, config.ColorPlayer, 1)
	if s.ShieldTimer > 0 {
		pulse := 0.6 + 0.4*math.Sin(float64(time.Now().UnixMilli())/100)
		cv.Ring(player, s.Player.Radius+5, draw.Blend(draw.Background, config.ColorShield, pulse))
	}
}

// drawPowerUpLabels writes the kind letter over each power-up.
func (c *Client) drawPowerUpLabels(s *sim.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	for _, p := range s.PowerUps {
		col, row := c.canvas.LogicalToTerminal(p.Pos.X, p.Pos.Y)
		if col < 1 || col > termWidth || row < 1 || row > termHeight {
			continue
		}
		c.chunkWriter.Text(col, row, string(p.Kind.Label()), colorText)
		c.canvas.MarkTextDirty(col, row, 1)
	}
}

func point(v physics.Vec) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *sim.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, snapshot)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeCentered writes text centered on col and marks it for repaint.
func (c *Client) writeCentered(centerX, row int, text string, color uint32) {
	col := max(1, centerX-len([]rune(text))/2)
	c.chunkWriter.Text(col, row, text, color)
	c.canvas.MarkTextDirty(col, row, len([]rune(text)))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING", colorText)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg, colorText)
	c.writeCentered(centerX, centerY+2, "Press any key to continue", colorDim)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___   ___  ___   ___ ___ ___  `,
		` |   \ / _ \|   \ / __| __| _ \ `,
		` | |) | (_) | |) | (_ | _||   / `,
		` |___/ \___/|___/ \___|___|_|_\ `,
		`                                `,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line, config.ColorPlayer)
	}

	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Survive the swarm as long as you can ~", colorDim)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls", colorText)

	controlLines := []string{
		"W A S D / Arrows . . . Move",
		"Mouse  . . . . . . . Follow",
		"Q / Ctrl+C . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line, colorText)
	}

	powerLines := []struct {
		text  string
		color uint32
	}{
		{"I  Shield: destroys enemies on contact", config.ColorShield},
		{"S  Slow: enemies move at half speed", config.ColorSlow},
	}
	for i, p := range powerLines {
		c.writeCentered(centerX, controlsY+len(controlLines)+2+i, p.text, p.color)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+len(powerLines)+3, ">>  Press SPACE to Start  <<", colorText)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int, s *sim.Snapshot) {
	cw := c.chunkWriter

	timeText := fmt.Sprintf("Time: %-8s", s.ScoreText()+"s")
	cw.Text(2, 1, timeText, colorText)
	c.canvas.MarkTextDirty(2, 1, len(timeText))

	if s.ShieldTimer > 0 {
		text := fmt.Sprintf("Shield: %4.1fs", s.ShieldTimer.Seconds())
		cw.Text(termWidth-len(text)-1, 1, text, config.ColorShield)
		c.canvas.MarkTextDirty(termWidth-len(text)-1, 1, len(text))
	}
	if s.SlowTimer > 0 {
		text := fmt.Sprintf("Slow:   %4.1fs", s.SlowTimer.Seconds())
		cw.Text(termWidth-len(text)-1, 2, text, config.ColorSlow)
		c.canvas.MarkTextDirty(termWidth-len(text)-1, 2, len(text))
	}
}

// drawGameOverScreen draws the final time and the submission form.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
		`                                              `,
	}

	titleStartY := centerY - 9
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line, config.ColorEnemy)
	}

	final := c.state.LastEvent.ScoreText
	y := titleStartY + len(titleArt)
	c.writeCentered(centerX, y, fmt.Sprintf("Game Over! Time Survived: %s seconds", final), colorText)
	c.writeCentered(centerX, y+1, fmt.Sprintf("You lasted %s seconds. Good job!", final), colorDim)

	if c.form != nil {
		c.drawForm(centerX, y+3)
	}
}

// drawForm renders the submission form starting at row y.
func (c *Client) drawForm(centerX, y int) {
	f := c.form
	const labelWidth = 8
	boxWidth := maxFieldLen + 2
	left := max(1, centerX-(labelWidth+boxWidth)/2)

	rows := []struct {
		label string
		value string
		field FormField
	}{
		{"Name", string(f.Name), FieldName},
		{"Email", string(f.Email), FieldEmail},
		{"Time", f.TimeScore, FieldNone},
	}
	for i, r := range rows {
		value := r.value
		color := uint32(colorDim)
		if r.field != FieldNone && f.Focus == r.field {
			value += "_"
			color = colorText
		}
		line := fmt.Sprintf("%-*s[%-*s]", labelWidth, r.label, maxFieldLen, value)
		c.chunkWriter.Text(left, y+i, line, color)
		c.canvas.MarkTextDirty(left, y+i, len([]rune(line)))
	}

	status := f.Status
	if status == "" {
		status = "TAB: edit fields   ENTER: submit score"
	}
	c.writeCentered(centerX, y+len(rows)+1, fmt.Sprintf("%-60s", status), colorText)

	if !f.Focused() && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, y+len(rows)+3, ">>  Press SPACE or R to Restart  <<", colorText)
	} else {
		c.writeCentered(centerX, y+len(rows)+3, fmt.Sprintf("%36s", ""), colorText)
	}
}
