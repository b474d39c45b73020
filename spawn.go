package citygrid

import (
	"math"
	"math/rand"

	"github.com/unixpickle/essentials"
)

// Phase is the rough class of a spawned city.
type Phase string

const (
	Outpost    Phase = "outpost"    // outer districts only
	Metropolis Phase = "metropolis" // inner city (rings, wall, gates) + outer districts
)

// SpawnReport records how a spawned city's config was derived.
type SpawnReport struct {
	WorldSeed int
	X         int
	Y         int

	// Size is the raw size roll, see SpawnConfig
	Size  int
	Phase Phase
}

// CitySeed mixes a world seed & city co-ords into the seed for one city.
// This is a fixed linear mix for reproducibility, it makes no attempt to
// avoid collisions.
func CitySeed(worldSeed, x, y int) uint32 {
	return uint32(worldSeed) + uint32(x*31) + uint32(y*7)
}

// Spawn derives a config for the city at (x, y) of the given world & builds it.
// If scfg is nil DefaultSpawnConfig is used.
func Spawn(reg *Registry, scfg *SpawnConfig, worldSeed, x, y int) *City {
	cfg, report := DeriveConfig(scfg, worldSeed, x, y)
	c := New(reg, cfg)
	c.Spawn = report
	return c
}

// DeriveConfig turns a world seed & city co-ords into a CityConfig.
// The city is centred on (x, y) of its grid.
func DeriveConfig(scfg *SpawnConfig, worldSeed, x, y int) (*CityConfig, *SpawnReport) {
	if scfg == nil {
		scfg = DefaultSpawnConfig()
	}

	seed := CitySeed(worldSeed, x, y)
	rng := rand.New(rand.NewSource(int64(seed)))

	size := scfg.MinSize + rng.Intn(essentials.MaxInt(0, scfg.MaxSize-scfg.MinSize)+1)

	cfg := configForSize(scfg, size, rng)
	cfg.Seed = seed
	cfg.CentreX = float64(x)
	cfg.CentreY = float64(y)

	report := &SpawnReport{WorldSeed: worldSeed, X: x, Y: y, Size: size, Phase: Outpost}
	if cfg.ShowInner {
		report.Phase = Metropolis
	}

	return cfg, report
}

// configForSize scales city shape parameters from a size roll. Jitter is
// drawn from rng after scaling.
func configForSize(scfg *SpawnConfig, size int, rng *rand.Rand) *CityConfig {
	cfg := &CityConfig{
		GridSize:     scfg.GridSize,
		OuterDensity: scfg.Density,
		InnerDensity: scfg.Density,
		UseJitter:    scfg.UseJitter,
		UseSpecial:   scfg.UseSpecial,
	}

	if size <= scfg.TransitionSize {
		cfg.ShowInner = false
		cfg.OuterReach = size
		cfg.Radius = scfg.MinSize
		cfg.Spokes = scfg.MinSpokes
		cfg.Rings = scfg.MinRings
	} else {
		cfg.ShowInner = true

		overflow := size - scfg.TransitionSize
		progress := 1.0
		if span := scfg.MaxSize - scfg.TransitionSize; span > 0 {
			progress = float64(overflow) / float64(span)
		}

		cfg.OuterReach = scfg.MinSize + overflow
		cfg.Radius = scfg.MinSize + scaled(progress, scfg.MaxSize-scfg.MinSize)
		cfg.Spokes = scfg.MinSpokes + scaled(progress, scfg.MaxSpokes-scfg.MinSpokes)
		cfg.Rings = scfg.MinRings + scaled(progress, scfg.MaxRings-scfg.MinRings)
	}

	cfg.Radius = clamp(cfg.Radius+jitter(rng, scfg.RadiusJitter), scfg.MinSize, scfg.MaxSize)
	cfg.Spokes = clamp(cfg.Spokes+jitter(rng, scfg.SpokeJitter), scfg.MinSpokes, scfg.MaxSpokes)
	cfg.Rings = clamp(cfg.Rings, scfg.MinRings, scfg.MaxRings)

	return cfg
}

// scaled returns progress of the way across span, rounded
func scaled(progress float64, span int) int {
	return int(math.Round(progress * float64(span)))
}

// jitter returns a uniform int in [-n, n]
func jitter(rng *rand.Rand, n int) int {
	n = essentials.MaxInt(0, n)
	return rng.Intn(2*n+1) - n
}
