package citygrid

// Outline tells the generator roughly what is already on the ground before
// the city is laid out. We only have one question;
// - is this square water? (rivers, lakes, coast)
// Water is stamped straight after the grid is cleared & nothing the
// generator draws afterwards will overwrite it.
type Outline interface {
	// true if x,y (grid co-ords) is water
	IsWater(x, y int) bool
}

// RiverOutline is a simple Outline: a straight band of water of the given
// Width running either top to bottom (Vertical) or left to right at Offset.
type RiverOutline struct {
	Offset   int
	Width    int
	Vertical bool
}

// IsWater returns if x,y falls inside the river band
func (r *RiverOutline) IsWater(x, y int) bool {
	v := y
	if r.Vertical {
		v = x
	}
	return v >= r.Offset && v < r.Offset+r.Width
}
