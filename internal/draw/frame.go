package draw

import (
	"strconv"
	"strings"
)

// Cell is one terminal character with its foreground color.
type Cell struct {
	Ch    rune
	Color Color
}

var blankCell = Cell{Ch: BlockEmpty}

// Frame is a double-buffered grid of cells. Render only emits the cells that
// changed since the previous Render, which keeps SSH traffic small.
type Frame struct {
	width  int
	height int
	cells  []Cell // Current frame, row-major
	prev   []Cell // What the terminal shows
	full   bool   // Next Render repaints every cell

	numBuf [20]byte
}

// NewFrame creates a blank frame of the given size.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize changes the frame size and forces a full repaint.
func (f *Frame) Resize(width, height int) {
	f.width = max(0, width)
	f.height = max(0, height)
	f.cells = make([]Cell, f.width*f.height)
	f.prev = make([]Cell, f.width*f.height)
	f.Clear()
	f.full = true
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// Clear blanks the current frame. The terminal is untouched until Render.
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = blankCell
	}
}

// Invalidate makes the next Render repaint everything, e.g. after the screen
// was cleared behind the frame's back.
func (f *Frame) Invalidate() {
	f.full = true
}

// Set puts a character at 0-based (col, row). Out of range is ignored.
func (f *Frame) Set(col, row int, ch rune, color Color) {
	if col < 0 || row < 0 || col >= f.width || row >= f.height {
		return
	}
	f.cells[row*f.width+col] = Cell{Ch: ch, Color: color}
}

// At returns the cell at 0-based (col, row).
func (f *Frame) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= f.width || row >= f.height {
		return blankCell
	}
	return f.cells[row*f.width+col]
}

// Fill sets a rectangle of cells.
func (f *Frame) Fill(col, row, width, height int, ch rune, color Color) {
	for r := row; r < row+height; r++ {
		for c := col; c < col+width; c++ {
			f.Set(c, r, ch, color)
		}
	}
}

// Text writes s starting at 0-based (col, row), clipped to the frame.
func (f *Frame) Text(col, row int, s string, color Color) {
	for _, ch := range s {
		f.Set(col, row, ch, color)
		col++
	}
}

// Render appends the changed cells to cw as cursor moves and SGR colors.
// Coordinates are frame-relative; cw applies its own offset.
func (f *Frame) Render(cw *ChunkWriter) {
	var (
		curColor = Color(255)
		colorSet bool
		nextCol  = -1
		nextRow  = -1
	)

	for row := 0; row < f.height; row++ {
		for col := 0; col < f.width; col++ {
			i := row*f.width + col
			cell := f.cells[i]
			if !f.full && cell == f.prev[i] {
				continue
			}
			f.prev[i] = cell

			if col != nextCol || row != nextRow {
				cw.MoveCursor(col+1, row+1)
			}
			if !colorSet || cell.Color != curColor {
				cw.WriteString(f.sgr(cell.Color))
				curColor, colorSet = cell.Color, true
			}
			cw.WriteRune(cell.Ch)
			nextCol, nextRow = col+1, row
		}
	}

	if colorSet {
		cw.WriteString(resetSGR)
	}
	f.full = false
}

const resetSGR = "\033[0m"

func (f *Frame) sgr(c Color) string {
	if c == ColorDefault {
		return resetSGR
	}
	var b strings.Builder
	b.WriteString("\033[38;5;")
	b.Write(strconv.AppendInt(f.numBuf[:0], int64(c), 10))
	b.WriteByte('m')
	return b.String()
}

// Box draws a single-line box whose outer corners are (col, row) and
// (col+width-1, row+height-1).
func (f *Frame) Box(col, row, width, height int, color Color) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := col+width-1, row+height-1
	for c := col + 1; c < right; c++ {
		f.Set(c, row, '─', color)
		f.Set(c, bottom, '─', color)
	}
	for r := row + 1; r < bottom; r++ {
		f.Set(col, r, '│', color)
		f.Set(right, r, '│', color)
	}
	f.Set(col, row, '┌', color)
	f.Set(right, row, '┐', color)
	f.Set(col, bottom, '└', color)
	f.Set(right, bottom, '┘', color)
}
