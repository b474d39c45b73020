package canvas

import (
	"github.com/boljen/go-bitmap"

	"github.com/voidshard/citygrid/internal/encoding"
	"github.com/voidshard/citygrid/internal/line"
)

// Cell is a single square of the grid.
//
//	ID   [16 bits] -> terrain id (see the registry), 0 is void
//	Meta [8 bits]
//	  bits 0-1 -> orientation (only meaningful for buildings)
//	  bits 2-7 -> reserved
type Cell struct {
	ID   uint16
	Meta uint8
}

// Canvas is a fixed size square grid of Cells stored row-major.
// Every read & write is bounds checked; reading outside the grid returns
// the void Cell and writing outside the grid does nothing.
type Canvas struct {
	size  int
	cells []Cell
}

// New returns a size*size canvas where every cell is void.
func New(size int) *Canvas {
	if size < 0 {
		size = 0
	}
	return &Canvas{size: size, cells: make([]Cell, size*size)}
}

// Size is the length of one side of the grid
func (c *Canvas) Size() int {
	return c.size
}

// InBounds returns if x,y is a cell of the grid
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size
}

// Clear sets every cell to id, meta
func (c *Canvas) Clear(id uint16, meta uint8) {
	for i := range c.cells {
		c.cells[i] = Cell{ID: id, Meta: meta}
	}
}

// Set writes id, meta at x,y
func (c *Canvas) Set(x, y int, id uint16, meta uint8) {
	if !c.InBounds(x, y) {
		return
	}
	c.cells[y*c.size+x] = Cell{ID: id, Meta: meta}
}

// Get returns the cell at x,y
func (c *Canvas) Get(x, y int) Cell {
	if !c.InBounds(x, y) {
		return Cell{}
	}
	return c.cells[y*c.size+x]
}

// FillRect fills w*h cells with (x,y) as the top left.
func (c *Canvas) FillRect(x, y, w, h int, id uint16, meta uint8) {
	for iy := y; iy < y+h; iy++ {
		for ix := x; ix < x+w; ix++ {
			c.Set(ix, iy, id, meta)
		}
	}
}

// DrawLine draws a 4-connected line from (x0,y0) to (x1,y1)
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, id uint16, meta uint8) {
	line.Walk(c.Plotter(id, meta), x0, y0, x1, y1)
}

// DrawCircle draws a 4-connected ring of radius r around (cx,cy)
func (c *Canvas) DrawCircle(cx, cy, r float64, id uint16, meta uint8) {
	line.Circle(c.Plotter(id, meta), cx, cy, r)
}

// Plotter returns a line.Plotter that writes id, meta to every plotted cell.
func (c *Canvas) Plotter(id uint16, meta uint8) line.Plotter {
	return line.PlotFunc(func(x, y int) {
		c.Set(x, y, id, meta)
	})
}

// Count returns the number of cells with the given id
func (c *Canvas) Count(id uint16) int {
	n := 0
	for _, cell := range c.cells {
		if cell.ID == id {
			n++
		}
	}
	return n
}

// Mask returns a bitmap with bit (y*size + x) set for every cell matching fn.
func (c *Canvas) Mask(fn func(Cell) bool) bitmap.Bitmap {
	bm := bitmap.New(len(c.cells))
	for i, cell := range c.cells {
		if fn(cell) {
			bm.Set(i, true)
		}
	}
	return bm
}

// Bytes encodes the grid as 3 bytes per cell, row-major; the terrain id
// (big endian) followed by the meta byte.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, 0, len(c.cells)*3)
	for _, cell := range c.cells {
		hi, lo := encoding.Split16(cell.ID)
		out = append(out, hi, lo, cell.Meta)
	}
	return out
}
