package citygrid

import (
	"encoding/json"
	"image"
	"math"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citygrid/internal/canvas"
	"github.com/voidshard/citygrid/internal/line"
)

const (
	// both tables are drawn from the rng before anything else so that the
	// same seed gives the same jitter & special districts no matter how
	// many random draws the layout makes later
	jitterTableSize = 32
	spawnTableSize  = 12

	// without an inner city we still place a small star of gates
	// around the palace to grow outer districts from
	outpostGates      = 6
	outpostGateRadius = 2.5

	// inner rings are spaced by (r/rings)^ringExponent, front loading them
	ringExponent = 0.8

	// the first inner band starts here rather than at the palace
	innerBandStart = 8.0

	// every outerRingSpacing cells of reach adds a ring of outer roads
	outerRingSpacing = 18.0

	palaceInner   = 7
	palaceOutpost = 5

	// buildings are only placed in (buildingMinDist, size*buildingMaxDist)
	buildingMinDist = 2.0
	buildingMaxDist = 0.49

	// special districts
	marketChance   = 0.4
	marketDistance = 0.55
	marketSize     = 9
	plazaChance    = 0.3
	plazaAngleBias = 0.1
	plazaDistance  = 0.75
	plazaRadius    = 5.0
)

// terrainIDs are the registry ids of every well known terrain, looked up
// once so the pipeline only compares integers.
type terrainIDs struct {
	void, road, alley, building, palace, water, gate, plaza, forest, plains, wall uint16
}

// neighbourOrder is the order adjacent cells are checked when deciding
// which way a building faces.
var neighbourOrder = [4]struct {
	dx, dy int
	facing Orientation
}{
	{0, 1, South},
	{0, -1, North},
	{-1, 0, West},
	{1, 0, East},
}

// City holds our city information & handles the layout of it on a grid.
type City struct {
	Seed   uint32
	Config *CityConfig

	// Gates are the first layer of nodes; spokes end here & outer districts
	// grow outwards from them along the same bearings.
	Gates []CityNode

	// Rings are the radii of the inner city rings, the last is the wall.
	Rings []int `json:",omitempty"`

	// OuterRings are the node layers of each outer district ring.
	OuterRings [][]CityNode `json:",omitempty"`

	Palace image.Rectangle
	Market *Feature `json:",omitempty"`
	Plaza  *Feature `json:",omitempty"`

	Stats *CityStats
	Spawn *SpawnReport `json:",omitempty"`

	reg        *Registry
	ids        terrainIDs
	rng        *rand.Rand
	jitters    [jitterTableSize]float64
	spawnRands [spawnTableSize]float64
	canvas     *canvas.Canvas
	cmap       *gridMap
}

// New lays out a city described by cfg. Terrain names are registered with
// (and ids taken from) reg; if reg is nil a new Registry is used.
//
// Generation cannot fail; degenerate configs simply produce a mostly void grid.
func New(reg *Registry, cfg *CityConfig) *City {
	if reg == nil {
		reg = NewRegistry()
	}
	if cfg == nil {
		cfg = &CityConfig{}
	}
	conf := *cfg

	c := &City{
		Seed:   conf.Seed,
		Config: &conf,
		reg:    reg,
	}
	c.build()
	return c
}

// JSON returns the city (metadata, not the grid) as json.
func (c *City) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// SaveJSON writes a json file to the given path.
func (c *City) SaveJSON(fpath string) error {
	data, err := c.JSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode city")
	}
	return errors.Wrap(os.WriteFile(fpath, data, 0644), "failed to write city json")
}

// Map returns the underlying CityMap (the grid).
func (c *City) Map() CityMap {
	return c.cmap
}

// Registry returns the registry ids on the map belong to
func (c *City) Registry() *Registry {
	return c.reg
}

// build runs the main construction logic. Order of the functions
// is important; later steps rely on what earlier steps did (or did not)
// draw & on the number of random numbers drawn so far.
func (c *City) build() {
	c.init()

	c.clear()
	c.placeGates()

	if c.Config.ShowInner {
		c.addInnerCity()
	} else {
		c.addSpokes()
	}

	c.addOuterDistricts()

	if c.Config.ShowInner && c.Config.UseSpecial {
		c.addSpecialDistricts()
	}

	c.addPalace()
	c.addBuildings()
	c.collectStats()
}

// init seeds the rng, draws the fixed tables & registers terrain names.
func (c *City) init() {
	c.rng = rand.New(rand.NewSource(int64(c.Seed)))

	for i := range c.jitters {
		c.jitters[i] = (c.rng.Float64() - 0.5) * 2
	}
	for i := range c.spawnRands {
		c.spawnRands[i] = c.rng.Float64()
	}

	for _, t := range allTerrains {
		c.reg.Register(string(t))
	}
	c.ids = terrainIDs{
		void:     c.reg.Register(string(Void)),
		road:     c.reg.Register(string(Road)),
		alley:    c.reg.Register(string(Alley)),
		building: c.reg.Register(string(Building)),
		palace:   c.reg.Register(string(Palace)),
		water:    c.reg.Register(string(Water)),
		gate:     c.reg.Register(string(Gate)),
		plaza:    c.reg.Register(string(Plaza)),
		forest:   c.reg.Register(string(Forest)),
		plains:   c.reg.Register(string(Plains)),
		wall:     c.reg.Register(string(Wall)),
	}

	c.canvas = canvas.New(c.Config.GridSize)
	c.cmap = &gridMap{canvas: c.canvas, reg: c.reg}
	c.Stats = newCityStats()
	c.Gates = []CityNode{}
}

// clear wipes the grid & marks any water given by the Outline
func (c *City) clear() {
	c.canvas.Clear(c.ids.void, 0)

	if c.Config.Outline == nil {
		return
	}
	size := c.canvas.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c.Config.Outline.IsWater(x, y) {
				c.canvas.Set(x, y, c.ids.water, 0)
			}
		}
	}
}

// placeGates decides the bearing of every gate. These bearings are reused by
// every layer of the city built outwards from the gates.
func (c *City) placeGates() {
	count := outpostGates
	radius := outpostGateRadius
	if c.Config.ShowInner {
		count = c.Config.Spokes
		radius = float64(c.Config.Radius)
	}

	centre := c.centre()
	for i := 0; i < count; i++ {
		jitter := 0.0
		if c.Config.UseJitter {
			jitter = c.jitters[i%len(c.jitters)] * (math.Pi / (float64(count) * 1.5))
		}
		angle := float64(i)*2*math.Pi/float64(count) + jitter

		p := polar(centre, angle, radius)
		c.Gates = append(c.Gates, CityNode{X: round(p.X), Y: round(p.Y), Angle: angle})
	}
}

// addSpokes draws a road from the centre to every gate
func (c *City) addSpokes() {
	cx, cy := round(c.Config.CentreX), round(c.Config.CentreY)
	for _, g := range c.Gates {
		c.drawRoad(cx, cy, g.X, g.Y)
	}
}

// addInnerCity draws spokes, rings, the wall & gatehouses then carves alleys
// into every sector between two gates & two rings.
func (c *City) addInnerCity() {
	c.Rings = ringRadii(c.Config.Radius, c.Config.Rings)

	c.addSpokes()

	for i, r := range c.Rings {
		last := i == len(c.Rings)-1

		id := c.ids.road
		if last {
			id = c.ids.wall
		}
		line.Circle(c.guarded(id, 0), c.Config.CentreX, c.Config.CentreY, float64(r))

		if last {
			for _, g := range c.Gates {
				c.stamp(g.X-1, g.Y-1, 3, 3, c.ids.gate)
			}
		}
	}

	for i := range c.Gates {
		a1 := c.Gates[i].Angle
		a2 := c.Gates[(i+1)%len(c.Gates)].Angle

		for r := range c.Rings {
			rIn := innerBandStart
			if r > 0 {
				rIn = float64(c.Rings[r-1])
			}
			c.subdivideSector(sector{start: a1, end: a2, rIn: rIn, rOut: float64(c.Rings[r])}, c.Config.InnerDensity)
		}
	}
}

// addOuterDistricts grows rings of roads outwards from the gates. Each ring
// pushes every node further out along its bearing, joins neighbouring nodes
// with a slightly crooked road & fills the band between with alleys.
func (c *City) addOuterDistricts() {
	reach := float64(c.Config.OuterReach)
	numRings := essentials.MaxInt(1, int(math.Floor(reach/outerRingSpacing)))
	step := reach / float64(numRings)

	centre := c.centre()
	previous := c.Gates

	for r := 1; r <= numRings; r++ {
		if len(previous) == 0 {
			break
		}

		// node 0 sets the radius for the whole layer
		radius := c.distFromCentre(previous[0].X, previous[0].Y) + step

		layer := make([]CityNode, 0, len(c.Gates))
		for i, g := range c.Gates {
			p := polar(centre, g.Angle, radius)
			next := CityNode{X: round(p.X), Y: round(p.Y), Angle: g.Angle}

			c.drawRoad(previous[i].X, previous[i].Y, next.X, next.Y)
			layer = append(layer, next)
		}

		for i := range layer {
			p1 := layer[i]
			p2 := layer[(i+1)%len(layer)]

			// bend the road through a slightly wobbly midpoint
			mx := (p1.X + p2.X) / 2
			my := (p1.Y + p2.Y) / 2
			mx += c.rng.Intn(3) - 1
			my += c.rng.Intn(3) - 1

			c.drawRoad(p1.X, p1.Y, mx, my)
			c.drawRoad(mx, my, p2.X, p2.Y)

			rIn := c.distFromCentre(previous[i].X, previous[i].Y)
			c.subdivideSector(sector{start: p1.Angle, end: p2.Angle, rIn: rIn, rOut: radius}, c.Config.OuterDensity)
		}

		c.OuterRings = append(c.OuterRings, layer)
		previous = layer
	}
}

// addSpecialDistricts maybe places a market square and/or a grand plaza.
// Both decisions (& where) come from the spawn table, not the live rng.
func (c *City) addSpecialDistricts() {
	centre := c.centre()

	if c.spawnRands[0] > marketChance && len(c.Gates) > 0 {
		idx := int(math.Floor(c.spawnRands[1] * float64(len(c.Gates))))
		angle := c.Gates[idx].Angle
		c.Market = c.drawMarketSquare(
			polar(centre, angle, float64(c.Config.Radius)*marketDistance),
			angle, marketSize, marketSize,
		)
	}

	if c.spawnRands[2] > plazaChance {
		angle := (c.spawnRands[3] + plazaAngleBias) * math.Pi * 2
		c.Plaza = c.drawGrandPlaza(
			polar(centre, angle, float64(c.Config.Radius)*plazaDistance),
			angle, plazaRadius,
		)
	}
}

// drawMarketSquare fills a w*h rectangle rotated by angle with open ground
// & outlines it with road.
func (c *City) drawMarketSquare(at model2d.Coord, angle float64, w, h int) *Feature {
	halfW := float64(w) / 2
	halfH := float64(h) / 2
	diagonal := math.Hypot(halfW, halfH)

	area := image.Rect(
		int(math.Floor(at.X-diagonal)), int(math.Floor(at.Y-diagonal)),
		int(math.Ceil(at.X+diagonal))+1, int(math.Ceil(at.Y+diagonal))+1,
	)

	toLocal := model2d.Rotation(-angle)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			local := toLocal.Apply(model2d.Coord{X: float64(x), Y: float64(y)}.Sub(at))
			if math.Abs(local.X) <= halfW && math.Abs(local.Y) <= halfH {
				c.place(x, y, c.ids.plains, 0)
			}
		}
	}

	toWorld := model2d.Rotation(angle)
	corners := [4]model2d.Coord{
		{X: float64(-w / 2), Y: float64(-h / 2)},
		{X: float64(w / 2), Y: float64(-h / 2)},
		{X: float64(w / 2), Y: float64(h / 2)},
		{X: float64(-w / 2), Y: float64(h / 2)},
	}
	for i := range corners {
		a := at.Add(toWorld.Apply(corners[i]))
		b := at.Add(toWorld.Apply(corners[(i+1)%len(corners)]))
		c.drawRoad(round(a.X), round(a.Y), round(b.X), round(b.Y))
	}

	return &Feature{X: at.X, Y: at.Y, Angle: angle, Area: area}
}

// drawGrandPlaza fills a disc of radius r with plaza & rings it with road.
func (c *City) drawGrandPlaza(at model2d.Coord, angle, r float64) *Feature {
	area := image.Rect(
		int(math.Floor(at.X-r-1)), int(math.Floor(at.Y-r-1)),
		int(math.Ceil(at.X+r+1))+1, int(math.Ceil(at.Y+r+1))+1,
	)

	disc := &model2d.Circle{Center: at, Radius: r + 0.5}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if disc.Contains(model2d.Coord{X: float64(x), Y: float64(y)}) {
				c.place(x, y, c.ids.plaza, 0)
			}
		}
	}
	line.Circle(c.guarded(c.ids.road, 0), at.X, at.Y, r)

	return &Feature{X: at.X, Y: at.Y, Angle: angle, Area: area}
}

// addPalace stamps the palace over whatever roads & rings met at the centre.
func (c *City) addPalace() {
	size := palaceOutpost
	if c.Config.ShowInner {
		size = palaceInner
	}
	x := round(c.Config.CentreX) - size/2
	y := round(c.Config.CentreY) - size/2

	c.stamp(x, y, size, size, c.ids.palace)
	c.Palace = image.Rect(x, y, x+size, y+size)
}

// addBuildings places a building on every void cell beside a road, alley,
// wall or gate. The building faces the first such neighbour found in
// neighbourOrder.
func (c *City) addBuildings() {
	size := c.canvas.Size()
	roads := c.canvas.Mask(func(cell canvas.Cell) bool {
		return c.isRoadLike(cell.ID)
	})
	isRoad := func(x, y int) bool {
		return c.canvas.InBounds(x, y) && roads.Get(y*size+x)
	}

	maxDist := float64(size) * buildingMaxDist
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c.canvas.Get(x, y).ID != c.ids.void {
				continue
			}

			dist := c.distFromCentre(x, y)
			if dist <= buildingMinDist || dist >= maxDist {
				continue
			}

			for _, n := range neighbourOrder {
				if isRoad(x+n.dx, y+n.dy) {
					c.canvas.Set(x, y, c.ids.building, uint8(n.facing))
					break
				}
			}
		}
	}
}

// collectStats counts every cell on the finished grid
func (c *City) collectStats() {
	size := c.canvas.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := c.canvas.Get(x, y)
			c.Stats.increment(Terrain(c.reg.Name(cell.ID)))

			if cell.ID == c.ids.building {
				c.Stats.BuildingsByOrientation[orientationOf(cell.Meta).String()]++
			}
		}
	}
}

// isProtected returns if nothing may ever be written over this id
func (c *City) isProtected(id uint16) bool {
	return id == c.ids.water || id == c.ids.palace || id == c.ids.gate
}

// isRoadLike returns if a building may face this id
func (c *City) isRoadLike(id uint16) bool {
	return id == c.ids.road || id == c.ids.alley || id == c.ids.wall || id == c.ids.gate
}

// canPlacePixel returns if id may be written at x,y given what is there now.
//   - water, palace & gate are never overwritten
//   - alleys & buildings only go on void; they never replace a road, nor
//     does a building replace an alley
//   - anything else (roads, walls, fills) may replace anything unprotected
func (c *City) canPlacePixel(x, y int, id uint16) bool {
	current := c.canvas.Get(x, y).ID
	if c.isProtected(current) {
		return false
	}
	if id == c.ids.alley || id == c.ids.building {
		return current == c.ids.void
	}
	return true
}

// place writes id at x,y if canPlacePixel allows it
func (c *City) place(x, y int, id uint16, meta uint8) {
	if c.canPlacePixel(x, y, id) {
		c.canvas.Set(x, y, id, meta)
	}
}

// guarded returns a Plotter that places id (see place) on every cell
func (c *City) guarded(id uint16, meta uint8) line.Plotter {
	return line.PlotFunc(func(x, y int) {
		c.place(x, y, id, meta)
	})
}

// drawRoad draws a road from (x0,y0) to (x1,y1) around protected cells
func (c *City) drawRoad(x0, y0, x1, y1 int) {
	line.Walk(c.guarded(c.ids.road, 0), x0, y0, x1, y1)
}

// stamp fills a w*h rect with id around protected cells
func (c *City) stamp(x, y, w, h int, id uint16) {
	for iy := y; iy < y+h; iy++ {
		for ix := x; ix < x+w; ix++ {
			c.place(ix, iy, id, 0)
		}
	}
}

// centre of the city
func (c *City) centre() model2d.Coord {
	return model2d.Coord{X: c.Config.CentreX, Y: c.Config.CentreY}
}

// distFromCentre returns the distance of x,y from the city centre
func (c *City) distFromCentre(x, y int) float64 {
	return model2d.Coord{X: float64(x), Y: float64(y)}.Dist(c.centre())
}

// ringRadii returns the radius of each inner ring, innermost first.
func ringRadii(radius, rings int) []int {
	radii := []int{}
	for r := 1; r <= rings; r++ {
		radii = append(radii, round(float64(radius)*math.Pow(float64(r)/float64(rings), ringExponent)))
	}
	return radii
}
