package line

import (
	"github.com/unixpickle/essentials"
)

// Plotter interface for bresenham
type Plotter interface {
	Set(x int, y int)
}

// PlotFunc adapts a plain function to a Plotter.
type PlotFunc func(x, y int)

// Set calls f(x, y)
func (f PlotFunc) Set(x, y int) {
	f(x, y)
}

// Walk plots every cell on the line from (x0,y0) to (x1,y1) inclusive.
//
// This is the error-term form of Bresenham with one change: whenever the next
// step would move diagonally we first plot an extra "bridging" cell along one
// axis. The result is 4-connected, ie. every cell touches the next one by an
// edge & never only by a corner.
// A line where start == end plots exactly one cell.
func Walk(p Plotter, x0, y0, x1, y1 int) {
	dx := essentials.AbsInt(x1 - x0)
	dy := -essentials.AbsInt(y1 - y0)

	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}

	err := dx + dy
	for {
		p.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err

		if e2 >= dy && e2 <= dx { // about to step diagonally
			if dx > -dy {
				p.Set(x0+sx, y0)
			} else {
				p.Set(x0, y0+sy)
			}
		}

		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
