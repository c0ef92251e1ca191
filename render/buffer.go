package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is the subset of tcell.Screen a Buffer flushes to
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Cell is one composited terminal cell
// Depth is distance from the viewer, smaller is nearer
type Cell struct {
	Rune  rune
	Fg    RGB
	Depth float64
	Set   bool
}

// Buffer is a depth-tested cell compositor
type Buffer struct {
	cells      []Cell
	width      int
	height     int
	Background RGB
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int, bg RGB) *Buffer {
	b := &Buffer{Background: bg}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// inBounds returns true if in screen bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Plot writes a cell if it is nearer than what the cell already holds
// Reports whether the write won the depth test
func (b *Buffer) Plot(x, y int, r rune, fg RGB, depth float64) bool {
	if !b.inBounds(x, y) {
		return false
	}
	dst := &b.cells[y*b.width+x]
	if dst.Set && depth >= dst.Depth {
		return false
	}
	*dst = Cell{Rune: r, Fg: fg, Depth: depth, Set: true}
	return true
}

// Get returns the cell at x,y
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Filled returns the number of cells written since the last Clear
func (b *Buffer) Filled() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].Set {
			n++
		}
	}
	return n
}

// Flush writes every cell to c and shows it
func (b *Buffer) Flush(c Canvas) {
	bg := b.Background.TCell()
	blank := tcell.StyleDefault.Background(bg)
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			cell := &row[x]
			if !cell.Set {
				c.SetContent(x, y, ' ', nil, blank)
				continue
			}
			c.SetContent(x, y, cell.Rune, nil, blank.Foreground(cell.Fg.TCell()))
		}
	}
	c.Show()
}
