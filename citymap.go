package citygrid

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/voidshard/citygrid/internal/canvas"
)

// Cell is a single square of the city grid; a terrain id (see Registry) &
// a meta byte whose lowest 2 bits are the Orientation of a building.
type Cell = canvas.Cell

// CityMap is a read only view of a finished city grid
type CityMap interface {
	// Size is the length of one side of the (square) grid
	Size() int

	// Cell at x,y, the void cell if x,y is out of bounds
	Cell(x, y int) Cell

	// Terrain name at x,y
	Terrain(x, y int) Terrain

	// Orientation of the building at x,y (South if there is no building)
	Orientation(x, y int) Orientation

	// Bytes encodes the grid; 3 bytes per cell, row-major
	Bytes() []byte

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) image.Image

	// Save as a PNG with the default color scheme
	Save(fpath string) error

	// SaveAdv saves as a PNG with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// WriteRaw writes one RGB triple per cell, row-major, no header
	WriteRaw(w io.Writer, scheme *ColourScheme) error
}

// ColourScheme defines how each terrain should be coloured.
type ColourScheme struct {
	Terrains map[Terrain]color.Color

	// Default is used for any terrain not in Terrains
	Default color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Default: colornames.Magenta,
		Terrains: map[Terrain]color.Color{
			Void:     colornames.White,
			Road:     colornames.Dimgray,
			Alley:    colornames.Darkgray,
			Building: colornames.Saddlebrown,
			Palace:   colornames.Gold,
			Water:    colornames.Steelblue,
			Gate:     colornames.Crimson,
			Plaza:    colornames.Wheat,
			Forest:   colornames.Forestgreen,
			Plains:   colornames.Lightgreen,
			Wall:     colornames.Black,
		},
	}
}

// colour returns the colour for t
func (s *ColourScheme) colour(t Terrain) color.Color {
	col, ok := s.Terrains[t]
	if ok && col != nil {
		return col
	}
	if s.Default != nil {
		return s.Default
	}
	return color.Black
}

// gridMap is the CityMap implementation over a canvas
type gridMap struct {
	canvas *canvas.Canvas
	reg    *Registry
}

// Size of the grid
func (m *gridMap) Size() int {
	return m.canvas.Size()
}

// Cell at x,y
func (m *gridMap) Cell(x, y int) Cell {
	return m.canvas.Get(x, y)
}

// Terrain at x,y
func (m *gridMap) Terrain(x, y int) Terrain {
	return Terrain(m.reg.Name(m.canvas.Get(x, y).ID))
}

// Orientation at x,y
func (m *gridMap) Orientation(x, y int) Orientation {
	return orientationOf(m.canvas.Get(x, y).Meta)
}

// Bytes of the whole grid
func (m *gridMap) Bytes() []byte {
	return m.canvas.Bytes()
}

// CustomImage returns the grid coloured with the given scheme
func (m *gridMap) CustomImage(scheme *ColourScheme) image.Image {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	size := m.canvas.Size()
	im := image.NewRGBA(image.Rect(0, 0, size, size))

	// cache per id, there are only a handful of terrains
	cache := map[uint16]color.Color{}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			id := m.canvas.Get(x, y).ID
			col, ok := cache[id]
			if !ok {
				col = scheme.colour(Terrain(m.reg.Name(id)))
				cache[id] = col
			}
			im.Set(x, y, col)
		}
	}

	return im
}

// Save the grid as a PNG using the default scheme
func (m *gridMap) Save(fpath string) error {
	return m.SaveAdv(fpath, DefaultScheme())
}

// SaveAdv essentially saves the grid using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (m *gridMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im := m.CustomImage(scheme)
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return errors.Wrapf(ctx.SavePNG(fpath), "failed to save city map %s", fpath)
}

// WriteRaw writes the grid as raw RGB triples
func (m *gridMap) WriteRaw(w io.Writer, scheme *ColourScheme) error {
	im := m.CustomImage(scheme).(*image.RGBA)
	buf := bufio.NewWriter(w)

	size := m.canvas.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := im.RGBAAt(x, y)
			if _, err := buf.Write([]byte{px.R, px.G, px.B}); err != nil {
				return errors.Wrap(err, "failed to write raw city map")
			}
		}
	}

	return errors.Wrap(buf.Flush(), "failed to flush raw city map")
}

// SaveRaw writes the raw RGB dump (see WriteRaw) of m to fpath.
func SaveRaw(m CityMap, fpath string, scheme *ColourScheme) error {
	f, err := os.Create(fpath)
	if err != nil {
		return errors.Wrap(err, "failed to create raw city map")
	}

	err = m.WriteRaw(f, scheme)
	if err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close raw city map")
}
