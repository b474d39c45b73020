package citygrid

import (
	"sort"
)

// Terrain is what occupies a cell of the city grid. The generator itself
// only works with the ids the Registry hands out for these names.
type Terrain string

const (
	Void     Terrain = "void"     // nothing placed (yet)
	Road     Terrain = "road"     // spokes, rings, outer district roads
	Alley    Terrain = "alley"    // lanes carved when sectors are subdivided
	Building Terrain = "building" // placed next to any road-like cell, has an Orientation
	Palace   Terrain = "palace"   // the square at the very centre
	Water    Terrain = "water"    // from the Outline, never built over
	Gate     Terrain = "gate"     // 3x3 markers where spokes meet the city wall
	Plaza    Terrain = "plaza"    // the grand plaza interior
	Forest   Terrain = "forest"   // registered for downstream biome use
	Plains   Terrain = "plains"   // open ground, eg. the market square
	Wall     Terrain = "wall"     // the outermost inner-city ring
)

// Orientation of a building; which side its door (road) is on.
// Stored in the lowest 2 bits of a Cell's Meta.
type Orientation uint8

const (
	South Orientation = iota
	West
	North
	East
)

const orientationMask = 0x03

var (
	allTerrains = []Terrain{
		// registration order, void first so it is always id 0
		Void, Road, Alley, Building, Palace, Water, Gate, Plaza, Forest, Plains, Wall,
	}

	orientationNames = map[Orientation]string{
		South: "south",
		West:  "west",
		North: "north",
		East:  "east",
	}
)

// AllTerrains returns all known Terrain enums
func AllTerrains() []Terrain {
	out := make([]Terrain, len(allTerrains))
	copy(out, allTerrains)
	return out
}

// String name of the orientation
func (o Orientation) String() string {
	return orientationNames[o&orientationMask]
}

// orientationOf unpacks the orientation bits of a meta byte
func orientationOf(meta uint8) Orientation {
	return Orientation(meta & orientationMask)
}

// sortTerrains orders terrains by name, for stable output
func sortTerrains(in []Terrain) {
	sort.Slice(in, func(a, b int) bool {
		return in[a] < in[b]
	})
}
