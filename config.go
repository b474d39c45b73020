package citygrid

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// CityConfig holds every shape parameter for a single city.
// Nothing here is hidden or global; the same config & seed always produce the
// same grid. Odd values (zero radius, no rings, tiny grids ..) are not errors,
// they just produce a city that is mostly void.
type CityConfig struct {
	// GridSize is the length of one side of the (square) grid, in cells.
	GridSize int `json:"grid_size"`

	// Centre of the city in grid co-ords. Usually the middle of the grid
	// but nothing requires it.
	CentreX float64 `json:"centre_x"`
	CentreY float64 `json:"centre_y"`

	// Radius of the inner city, the outermost ring (the wall) sits here.
	// Ignored (other than for special district placement) if ShowInner is false.
	Radius int `json:"radius"`

	// Spokes is the number of radial roads from the centre to the gates
	// of the inner city. Outposts (ShowInner false) always have 6.
	Spokes int `json:"spokes"`

	// Rings is the number of concentric roads in the inner city, including
	// the outer wall. Rings are spaced closer together towards the centre.
	Rings int `json:"rings"`

	// OuterReach is how far (in cells) outer districts extend past the gates.
	// Every 18 cells of reach adds another ring of outer roads.
	OuterReach int `json:"outer_reach"`

	// OuterDensity & InnerDensity are the recursion depth used when
	// subdividing sectors into alleys. Higher values make smaller blocks.
	OuterDensity int `json:"outer_density"`
	InnerDensity int `json:"inner_density"`

	// ShowInner enables the inner city (rings, wall, gates, special districts).
	ShowInner bool `json:"show_inner"`

	// UseJitter perturbs gate bearings so spokes are not perfectly even.
	UseJitter bool `json:"use_jitter"`

	// UseSpecial allows a market square and/or grand plaza to be placed.
	// Only applies if ShowInner is set.
	UseSpecial bool `json:"use_special"`

	// Seed for the city rng. Zero is a perfectly valid seed.
	Seed uint32 `json:"seed"`

	// Outline optionally marks water on the grid before anything is drawn.
	Outline Outline `json:"-"`
}

// SpawnConfig holds the bounds used to turn a world seed & city co-ords into
// a CityConfig. See DeriveConfig.
type SpawnConfig struct {
	// GridSize of each spawned city grid
	GridSize int `json:"grid_size"`

	// A city "size" is rolled in [MinSize, MaxSize]. Cities with a size of at
	// most TransitionSize are outposts (no inner city), bigger cities are
	// metropolises whose reach, radius, spokes & rings scale with how far
	// past TransitionSize they rolled.
	MinSize        int `json:"min_size"`
	MaxSize        int `json:"max_size"`
	TransitionSize int `json:"transition_size"`

	// Bounds of spoke & ring counts.
	MinSpokes int `json:"min_spokes"`
	MaxSpokes int `json:"max_spokes"`
	MinRings  int `json:"min_rings"`
	MaxRings  int `json:"max_rings"`

	// After scaling, radius is moved by up to +/- RadiusJitter and spokes by
	// up to +/- SpokeJitter, then both are clamped back into range.
	RadiusJitter int `json:"radius_jitter"`
	SpokeJitter  int `json:"spoke_jitter"`

	// Density is used for both inner & outer alley subdivision.
	Density int `json:"density"`

	UseJitter  bool `json:"use_jitter"`
	UseSpecial bool `json:"use_special"`
}

// DefaultSpawnConfig returns the standard spawn bounds.
func DefaultSpawnConfig() *SpawnConfig {
	return &SpawnConfig{
		GridSize:       256,
		MinSize:        24,
		MaxSize:        48,
		TransitionSize: 32,
		MinSpokes:      5, // boulevards from the palace to the outer city
		MaxSpokes:      8,
		MinRings:       1, // rings circling the palace
		MaxRings:       3,
		RadiusJitter:   2,
		SpokeJitter:    1,
		Density:        6,
		UseJitter:      true,
		UseSpecial:     true,
	}
}

// LoadSpawnConfig reads a SpawnConfig from a JSON file. Fields missing from
// the file keep their DefaultSpawnConfig values.
func LoadSpawnConfig(fpath string) (*SpawnConfig, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read spawn config")
	}

	cfg := DefaultSpawnConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse spawn config %s", fpath)
	}
	return cfg, nil
}
