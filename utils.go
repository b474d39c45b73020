package citygrid

import (
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// polar returns the point r away from centre along bearing angle
func polar(centre model2d.Coord, angle, r float64) model2d.Coord {
	return centre.Add(model2d.Coord{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(r))
}

// normalizeAngle maps a bearing into [0, 2pi)
func normalizeAngle(a float64) float64 {
	res := math.Mod(a, math.Pi*2)
	if res < 0 {
		res += math.Pi * 2
	}
	return res
}

// round to the nearest int, halves away from zero
func round(f float64) int {
	return int(math.Round(f))
}

// clamp v into [lo, hi]
func clamp(v, lo, hi int) int {
	return essentials.MaxInt(lo, essentials.MinInt(v, hi))
}
