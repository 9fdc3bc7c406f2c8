package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const clearScreenSeq = "\033[H\033[2J"

// ChunkWriter buffers one frame of terminal output: the canvas diff, the
// border and the colored text overlay. Flush sends the frame in
// maxChunkSize pieces so it crosses an SSH channel as a few packets.
//
// Text coordinates are 1-based canvas cells; the offset set by SetOffset
// is added so overlays stay aligned with a centered canvas.
type ChunkWriter struct {
	buf    []byte
	out    *bufio.Writer
	offCol int
	offRow int

	fg     uint32
	styled bool // fg is the active terminal foreground
}

// NewChunkWriter creates a ChunkWriter that writes frames to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the canvas offset after a terminal resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write appends raw terminal output, such as Canvas.Render's cell diff.
// The active color is unknown afterwards.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	cw.styled = false
	return len(p), nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// ClearScreen queues a full terminal clear ahead of the rest of the frame.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf = append(cw.buf, clearScreenSeq...)
	cw.styled = false
}

// Text writes s in the 0xRRGGBB color at a canvas cell. Consecutive text in
// the same color shares one color sequence.
func (cw *ChunkWriter) Text(col, row int, s string, color uint32) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
	if !cw.styled || cw.fg != color {
		cw.buf = appendFg(cw.buf, color)
		cw.fg = color
		cw.styled = true
	}
	cw.buf = append(cw.buf, s...)
}

// Len returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

// Flush resets any text color and writes the frame to the underlying writer.
func (cw *ChunkWriter) Flush() error {
	if cw.styled {
		cw.buf = append(cw.buf, ColorReset...)
		cw.styled = false
	}
	data := cw.buf
	cw.buf = cw.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreenSeq)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
