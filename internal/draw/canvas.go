package draw

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// pixelSet marks a stored pixel as drawn; the low 24 bits hold its color.
const pixelSet = 0xFF000000

// cell is what a terminal cell shows: two stacked sub-pixels.
type cell struct {
	top, bottom uint32
}

// Canvas is a colored drawing buffer with 2x vertical resolution using
// half-block characters. Logical coordinates are scaled down by a fixed
// number of units per sub-pixel. Render only writes cells that changed.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], pixelSet|color or 0
	scale          float64  // Logical units per sub-pixel

	prev  []cell // What the terminal currently shows
	dirty []bool // Cells overwritten by text since the last render
	force bool   // Redraw every cell on the next render

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf []byte // Reusable buffer for batching render output
}

// NewCanvas creates a canvas for the given terminal dimensions where every
// sub-pixel covers scale logical units.
func NewCanvas(termWidth, termHeight int, scale float64) *Canvas {
	c := &Canvas{scale: scale}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = max(0, termWidth)
	c.termHeight = max(0, termHeight)
	c.subPixelHeight = c.termHeight * 2
	c.pixels = make([]uint32, c.subPixelHeight*c.termWidth)
	c.prev = make([]cell, c.termHeight*c.termWidth)
	c.dirty = make([]bool, c.termHeight*c.termWidth)
	c.force = true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.force = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// MarkTextDirty records that n cells starting at the 1-based canvas position
// were overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[y*c.termWidth+x] = true
		}
	}
}

// LogicalWidth returns the logical width covered by the canvas.
func (c *Canvas) LogicalWidth() float64 {
	return float64(c.termWidth) * c.scale
}

// LogicalHeight returns the logical height covered by the canvas.
func (c *Canvas) LogicalHeight() float64 {
	return float64(c.subPixelHeight) * c.scale
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x / c.scale))
	py := int(math.Floor(y / c.scale))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based terminal position (as reported by the
// mouse) to the logical center of that cell, honoring the canvas offset.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	x = (float64(cx) + 0.5) * c.scale
	y = (float64(cy)*2 + 1) * c.scale
	return x, y
}

// setPixel sets a sub-pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color uint32) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = pixelSet | color&0xFFFFFF
	}
}

// blendPixel mixes color over whatever is already at (x, y).
func (c *Canvas) blendPixel(x, y int, color uint32, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	base := uint32(Background)
	if p := c.pixels[y*c.termWidth+x]; p&pixelSet != 0 {
		base = p
	}
	c.pixels[y*c.termWidth+x] = pixelSet | Blend(base, color, alpha)
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y float64, color uint32) {
	c.setPixel(int(math.Floor(x/c.scale)), int(math.Floor(y/c.scale)), color)
}

// At returns the color at logical coordinates and whether anything is drawn there.
func (c *Canvas) At(x, y float64) (uint32, bool) {
	px := int(math.Floor(x / c.scale))
	py := int(math.Floor(y / c.scale))
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return 0, false
	}
	p := c.pixels[py*c.termWidth+px]
	return p & 0xFFFFFF, p&pixelSet != 0
}

// FillCircle fills a disc given in logical coordinates. Every sub-pixel
// whose center lies inside the disc is painted, and at least the center
// sub-pixel is painted for tiny radii.
func (c *Canvas) FillCircle(center Point, radius float64, color uint32, alpha float64) {
	cx := center.X / c.scale
	cy := center.Y / c.scale
	r := radius / c.scale

	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))

	painted := false
	for y := minY; y <= maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r*r {
				c.blendPixel(x, y, color, alpha)
				painted = true
			}
		}
	}
	if !painted {
		c.blendPixel(int(math.Floor(cx)), int(math.Floor(cy)), color, alpha)
	}
}

// Ring draws a circle outline given in logical coordinates.
func (c *Canvas) Ring(center Point, radius float64, color uint32) {
	r := radius / c.scale
	steps := max(16, int(2*math.Pi*r*2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a), color)
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, color uint32) {
	x1 := int(math.Floor(p1.X / c.scale))
	y1 := int(math.Floor(p1.Y / c.scale))
	x2 := int(math.Floor(p2.X / c.scale))
	y2 := int(math.Floor(p2.Y / c.scale))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, color)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500 byte MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the changed cells to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	var numBuf [20]byte

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if !c.force && !c.dirty[idx] && c.prev[idx] == cur {
				continue
			}
			c.prev[idx] = cur
			c.dirty[idx] = false

			buf = append(buf, "\033["...)
			buf = append(buf, strconv.AppendInt(numBuf[:0], int64(row+1+c.offsetRow), 10)...)
			buf = append(buf, ';')
			buf = append(buf, strconv.AppendInt(numBuf[:0], int64(col+1+c.offsetCol), 10)...)
			buf = append(buf, 'H')
			buf = appendCell(buf, cur)
		}
	}
	c.force = false
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		buf = buf[len(chunk):]
	}
	return nil
}

// appendCell appends the styled glyph for one cell followed by a reset.
func appendCell(b []byte, cl cell) []byte {
	top := cl.top&pixelSet != 0
	bottom := cl.bottom&pixelSet != 0

	switch {
	case top && bottom && cl.top == cl.bottom:
		b = appendFg(b, cl.top)
		b = append(b, string(BlockFull)...)
	case top && bottom:
		b = appendFg(b, cl.top)
		b = appendBg(b, cl.bottom)
		b = append(b, string(BlockUpperHalf)...)
	case top:
		b = appendFg(b, cl.top)
		b = append(b, string(BlockUpperHalf)...)
	case bottom:
		b = appendFg(b, cl.bottom)
		b = append(b, string(BlockLowerHalf)...)
	default:
		return append(b, ' ')
	}
	return append(b, ColorReset...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
