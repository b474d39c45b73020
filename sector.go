package citygrid

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citygrid/internal/line"
)

const (
	// cells may sit this far outside a sector's radial band & still count
	sectorTolerance = 0.5

	// blocks narrower than this (either way) are not split further
	minBlockSize = 5

	// splits land in [minSplit, minSplit+splitRange) of the longer side
	minSplit   = 0.35
	splitRange = 0.3
)

// sector is an annular sector around the city centre; the area between two
// bearings (start -> end) & two radii.
type sector struct {
	start float64
	end   float64
	rIn   float64
	rOut  float64
}

// isInSector returns if cell x,y is inside s.
// The radial test allows sectorTolerance either side. Bearings are compared
// in [0, 2pi); if start > end the sector wraps through bearing 0.
func (c *City) isInSector(x, y int, s sector) bool {
	d := model2d.Coord{X: float64(x), Y: float64(y)}.Sub(c.centre())

	band := r1.Interval{Lo: s.rIn - sectorTolerance, Hi: s.rOut + sectorTolerance}
	if !band.Contains(d.Norm()) {
		return false
	}

	angle := math.Atan2(d.Y, d.X)
	if angle < 0 {
		angle += math.Pi * 2
	}

	start := normalizeAngle(s.start)
	end := normalizeAngle(s.end)
	if start > end {
		return angle >= start || angle <= end
	}
	return r1.Interval{Lo: start, Hi: end}.Contains(angle)
}

// subdivideSector carves alleys into s, recursing up to depth times.
// We split the bounding box of the sector & rely on drawRestrictedLine to
// keep every alley inside the sector itself.
func (c *City) subdivideSector(s sector, depth int) {
	start, end := s.start, s.end
	if math.Abs(end-start) > math.Pi {
		// represent the sector as one continuous span, not one wrapping past 2pi
		if start < end {
			start += math.Pi * 2
		} else {
			end += math.Pi * 2
		}
	}

	centre := c.centre()
	corners := [4]model2d.Coord{
		polar(centre, start, s.rIn),
		polar(centre, end, s.rIn),
		polar(centre, start, s.rOut),
		polar(centre, end, s.rOut),
	}

	lo, hi := corners[0], corners[0]
	for _, k := range corners[1:] {
		lo = lo.Min(k)
		hi = hi.Max(k)
	}

	c.splitSector(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Ceil(hi.X-lo.X)), int(math.Ceil(hi.Y-lo.Y)),
		depth, s,
	)
}

// splitSector cuts the rect (x,y,w,h) along its longer side with an alley &
// recurses into both halves (left/top first).
// The order matters; each split draws one number from the rng.
func (c *City) splitSector(x, y, w, h, depth int, s sector) {
	if depth <= 0 || w < minBlockSize || h < minBlockSize {
		return
	}

	if w > h {
		sx := x + int(float64(w)*(minSplit+c.rng.Float64()*splitRange))
		c.drawRestrictedLine(sx, y, sx, y+h, c.ids.alley, s)
		c.splitSector(x, y, sx-x, h, depth-1, s)
		c.splitSector(sx+1, y, x+w-sx-1, h, depth-1, s)
	} else {
		sy := y + int(float64(h)*(minSplit+c.rng.Float64()*splitRange))
		c.drawRestrictedLine(x, sy, x+w, sy, c.ids.alley, s)
		c.splitSector(x, y, w, sy-y, depth-1, s)
		c.splitSector(x, sy+1, w, y+h-sy-1, depth-1, s)
	}
}

// drawRestrictedLine walks a line like Canvas.DrawLine but only writes cells
// (bridging cells included) that are inside s & that canPlacePixel allows.
func (c *City) drawRestrictedLine(x0, y0, x1, y1 int, id uint16, s sector) {
	line.Walk(line.PlotFunc(func(x, y int) {
		if c.isInSector(x, y, s) && c.canPlacePixel(x, y, id) {
			c.canvas.Set(x, y, id, 0)
		}
	}), x0, y0, x1, y1)
}
