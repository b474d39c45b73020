package line

import (
	"math"
)

// Circle plots a ring of radius r around (cx, cy) with the midpoint algorithm.
//
// Each computed (x, y) is mirrored into all eight octants. Before x is
// decremented the points for the new y are plotted as well, so the ring is
// 4-connected in the same way Walk is.
// Nothing is plotted if r <= 0.
func Circle(p Plotter, cx, cy, r float64) {
	if r <= 0 {
		return
	}

	x := int(math.Round(r))
	y := 0
	err := 1 - x

	for x >= y {
		octants(p, cx, cy, x, y)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			octants(p, cx, cy, x, y) // bridge before stepping inwards
			x--
			err += 2*(y-x) + 1
		}
	}
}

// octants plots (x,y) mirrored around the centre
func octants(p Plotter, cx, cy float64, x, y int) {
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			p.Set(round(cx+sx*float64(x)), round(cy+sy*float64(y)))
			p.Set(round(cx+sx*float64(y)), round(cy+sy*float64(x)))
		}
	}
}

// round to the nearest int, halves away from zero
func round(f float64) int {
	return int(math.Round(f))
}
