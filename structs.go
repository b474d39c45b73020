package citygrid

import (
	"image"
)

// CityNode is a gate or a vertex of an outer ring. Angle is the fixed
// bearing from the city centre; every ring layer grown from a gate keeps it.
type CityNode struct {
	X     int
	Y     int
	Angle float64
}

// Point returns the node position
func (n CityNode) Point() image.Point {
	return image.Pt(n.X, n.Y)
}

// Feature is a special district stamped onto the grid (market square,
// grand plaza).
type Feature struct {
	// Centre of the feature (before rounding to cells)
	X float64
	Y float64

	// Bearing from the city centre the feature was placed along
	Angle float64

	// Bounds of every cell the feature may have touched
	Area image.Rectangle
}

// CityStats holds generic stats about the city
type CityStats struct {
	// Count of the number of cells of a given type
	CellsByTerrain map[Terrain]int

	// Count of buildings by the orientation they face
	BuildingsByOrientation map[string]int `json:",omitempty"`
}

// newCityStats returns blank CityStats
func newCityStats() *CityStats {
	return &CityStats{CellsByTerrain: map[Terrain]int{}, BuildingsByOrientation: map[string]int{}}
}

// increment CellsByTerrain by 1
func (c *CityStats) increment(t Terrain) {
	c.CellsByTerrain[t]++
}

// Count returns number of cells by type
func (c *CityStats) Count(t Terrain) int {
	return c.CellsByTerrain[t]
}

// Terrains returns every terrain with at least one cell, sorted by name
func (c *CityStats) Terrains() []Terrain {
	out := []Terrain{}
	for t, n := range c.CellsByTerrain {
		if n > 0 {
			out = append(out, t)
		}
	}
	sortTerrains(out)
	return out
}
