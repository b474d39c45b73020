package citygrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// blankCity returns a city on a cleared size*size grid, centred in the middle
func blankCity(size int) *City {
	c := New(nil, &CityConfig{GridSize: size, CentreX: float64(size / 2), CentreY: float64(size / 2)})
	c.canvas.Clear(c.ids.void, 0)
	return c
}

func TestIsInSector(t *testing.T) {
	c := blankCity(64)
	s := sector{start: 0, end: math.Pi / 2, rIn: 5, rOut: 10}

	assert.True(t, c.isInSector(40, 32, s))  // bearing 0
	assert.True(t, c.isInSector(32, 40, s))  // bearing pi/2
	assert.True(t, c.isInSector(37, 37, s))  // middle
	assert.True(t, c.isInSector(42, 32, s))  // on the outer radius
	assert.False(t, c.isInSector(24, 32, s)) // bearing pi
	assert.False(t, c.isInSector(32, 24, s)) // bearing 3pi/2
	assert.False(t, c.isInSector(43, 32, s)) // past outer tolerance
	assert.False(t, c.isInSector(36, 32, s)) // inside inner tolerance
}

func TestIsInSectorWraps(t *testing.T) {
	c := blankCity(64)

	// -pi/2 -> pi/4 wraps through bearing 0
	s := sector{start: -math.Pi / 2, end: math.Pi / 4, rIn: 5, rOut: 10}

	assert.True(t, c.isInSector(40, 32, s))  // 0
	assert.True(t, c.isInSector(38, 26, s))  // 7pi/4
	assert.True(t, c.isInSector(37, 35, s))  // just under pi/4
	assert.False(t, c.isInSector(26, 38, s)) // 3pi/4
	assert.False(t, c.isInSector(24, 32, s)) // pi
}

func TestCanPlacePixel(t *testing.T) {
	c := blankCity(16)

	c.canvas.Set(1, 1, c.ids.water, 0)
	c.canvas.Set(2, 1, c.ids.palace, 0)
	c.canvas.Set(3, 1, c.ids.gate, 0)
	c.canvas.Set(4, 1, c.ids.road, 0)
	c.canvas.Set(5, 1, c.ids.alley, 0)

	for x := 1; x <= 3; x++ {
		for _, id := range []uint16{c.ids.road, c.ids.alley, c.ids.wall, c.ids.building, c.ids.plaza, c.ids.void} {
			assert.False(t, c.canPlacePixel(x, 1, id), "protected cell %d overwritten by %d", x, id)
		}
	}

	// void takes anything
	for _, id := range []uint16{c.ids.road, c.ids.alley, c.ids.building, c.ids.wall, c.ids.plains} {
		assert.True(t, c.canPlacePixel(0, 0, id))
	}

	// roads only give way to non alley/building writes
	assert.False(t, c.canPlacePixel(4, 1, c.ids.alley))
	assert.False(t, c.canPlacePixel(4, 1, c.ids.building))
	assert.True(t, c.canPlacePixel(4, 1, c.ids.wall))
	assert.True(t, c.canPlacePixel(4, 1, c.ids.plaza))

	// alleys are never replaced by buildings
	assert.False(t, c.canPlacePixel(5, 1, c.ids.building))
	assert.False(t, c.canPlacePixel(5, 1, c.ids.alley))
	assert.True(t, c.canPlacePixel(5, 1, c.ids.road))
}

func TestSubdivideSectorStaysInside(t *testing.T) {
	c := blankCity(64)
	s := sector{start: 0, end: math.Pi / 2, rIn: 8, rOut: 28}

	c.subdivideSector(s, 4)

	alleys := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if c.canvas.Get(x, y).ID != c.ids.alley {
				continue
			}
			alleys++
			assert.True(t, c.isInSector(x, y, s), "alley at %d,%d outside sector", x, y)
		}
	}
	assert.Greater(t, alleys, 0)
}

func TestSubdivideSectorWrapping(t *testing.T) {
	c := blankCity(64)
	s := sector{start: 3 * math.Pi / 2, end: math.Pi / 4, rIn: 8, rOut: 28}

	c.subdivideSector(s, 4)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if c.canvas.Get(x, y).ID == c.ids.alley {
				assert.True(t, c.isInSector(x, y, s), "alley at %d,%d outside sector", x, y)
			}
		}
	}
}

func TestSplitSectorTooSmall(t *testing.T) {
	c := blankCity(64)
	s := sector{start: 0, end: math.Pi * 2, rIn: 0, rOut: 64}

	c.splitSector(10, 10, 4, 40, 5, s)
	c.splitSector(10, 10, 40, 40, 0, s)
	assert.Equal(t, 0, c.canvas.Count(c.ids.alley))
}

func TestDrawRestrictedLine(t *testing.T) {
	c := blankCity(64)
	s := sector{start: 0, end: math.Pi / 2, rIn: 0, rOut: 30}

	c.canvas.Set(40, 40, c.ids.road, 0)
	c.canvas.Set(44, 40, c.ids.water, 0)

	c.drawRestrictedLine(20, 40, 60, 40, c.ids.alley, s)

	assert.Equal(t, c.ids.road, c.canvas.Get(40, 40).ID)
	assert.Equal(t, c.ids.water, c.canvas.Get(44, 40).ID)

	// west of the centre is outside the sector
	assert.Equal(t, c.ids.void, c.canvas.Get(25, 40).ID)
	assert.Equal(t, c.ids.alley, c.canvas.Get(35, 40).ID)
}
