package citygrid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noJitter() *SpawnConfig {
	scfg := DefaultSpawnConfig()
	scfg.RadiusJitter = 0
	scfg.SpokeJitter = 0
	return scfg
}

func TestCitySeed(t *testing.T) {
	assert.Equal(t, uint32(6201), CitySeed(1337, 128, 128))
	assert.Equal(t, uint32(0), CitySeed(0, 0, 0))
	assert.Equal(t, uint32(1<<32-31), CitySeed(0, -1, 0))
}

func TestConfigForSizeOutpost(t *testing.T) {
	scfg := noJitter()
	cfg := configForSize(scfg, 32, rand.New(rand.NewSource(1)))

	assert.False(t, cfg.ShowInner)
	assert.Equal(t, 32, cfg.OuterReach)
	assert.Equal(t, scfg.MinSize, cfg.Radius)
	assert.Equal(t, scfg.MinSpokes, cfg.Spokes)
	assert.Equal(t, scfg.MinRings, cfg.Rings)
	assert.Equal(t, scfg.Density, cfg.OuterDensity)
	assert.Equal(t, scfg.Density, cfg.InnerDensity)
}

func TestConfigForSizeJustPastTransition(t *testing.T) {
	scfg := noJitter()
	cfg := configForSize(scfg, 33, rand.New(rand.NewSource(1)))

	assert.True(t, cfg.ShowInner)
	assert.Equal(t, 25, cfg.OuterReach)

	// radius scales first; spokes & rings round back down to their minimum
	assert.Equal(t, 26, cfg.Radius)
	assert.Greater(t, cfg.Radius, scfg.MinSize)
	assert.Less(t, cfg.Radius, scfg.MaxSize)
	assert.Equal(t, scfg.MinSpokes, cfg.Spokes)
	assert.Equal(t, scfg.MinRings, cfg.Rings)
}

func TestConfigForSizeMax(t *testing.T) {
	scfg := noJitter()
	cfg := configForSize(scfg, 48, rand.New(rand.NewSource(1)))

	assert.True(t, cfg.ShowInner)
	assert.Equal(t, 40, cfg.OuterReach)
	assert.Equal(t, scfg.MaxSize, cfg.Radius)
	assert.Equal(t, scfg.MaxSpokes, cfg.Spokes)
	assert.Equal(t, scfg.MaxRings, cfg.Rings)
}

func TestConfigForSizeJitterStaysInBounds(t *testing.T) {
	scfg := DefaultSpawnConfig()
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 500; i++ {
		size := scfg.MinSize + i%(scfg.MaxSize-scfg.MinSize+1)
		cfg := configForSize(scfg, size, rng)

		assert.GreaterOrEqual(t, cfg.Radius, scfg.MinSize)
		assert.LessOrEqual(t, cfg.Radius, scfg.MaxSize)
		assert.GreaterOrEqual(t, cfg.Spokes, scfg.MinSpokes)
		assert.LessOrEqual(t, cfg.Spokes, scfg.MaxSpokes)
		assert.GreaterOrEqual(t, cfg.Rings, scfg.MinRings)
		assert.LessOrEqual(t, cfg.Rings, scfg.MaxRings)
	}
}

func TestJitterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		v := jitter(rng, 2)
		assert.GreaterOrEqual(t, v, -2)
		assert.LessOrEqual(t, v, 2)
		seen[v] = true
	}
	assert.Len(t, seen, 5)

	assert.Equal(t, 0, jitter(rng, 0))
	assert.Equal(t, 0, jitter(rng, -3))
}

func TestDeriveConfig(t *testing.T) {
	for x := 0; x < 40; x++ {
		cfg, report := DeriveConfig(nil, 1337, x*13, 200-x)

		require.NotNil(t, cfg)
		require.NotNil(t, report)
		assert.Equal(t, CitySeed(1337, x*13, 200-x), cfg.Seed)
		assert.Equal(t, float64(x*13), cfg.CentreX)
		assert.Equal(t, float64(200-x), cfg.CentreY)
		assert.Equal(t, 256, cfg.GridSize)

		assert.GreaterOrEqual(t, report.Size, 24)
		assert.LessOrEqual(t, report.Size, 48)
		if report.Size > 32 {
			assert.Equal(t, Metropolis, report.Phase)
			assert.True(t, cfg.ShowInner)
		} else {
			assert.Equal(t, Outpost, report.Phase)
			assert.False(t, cfg.ShowInner)
		}
	}
}

func TestDeriveConfigDeterministic(t *testing.T) {
	a, ra := DeriveConfig(nil, 42, 10, 20)
	b, rb := DeriveConfig(nil, 42, 10, 20)
	assert.Equal(t, a, b)
	assert.Equal(t, ra, rb)
}

func TestDeriveConfigFixedSize(t *testing.T) {
	scfg := DefaultSpawnConfig()
	scfg.MaxSize = scfg.MinSize

	_, report := DeriveConfig(scfg, 3, 4, 5)
	assert.Equal(t, scfg.MinSize, report.Size)
}

func TestSpawn(t *testing.T) {
	scfg := DefaultSpawnConfig()
	scfg.GridSize = 128

	a := Spawn(nil, scfg, 7, 64, 64)
	b := Spawn(nil, scfg, 7, 64, 64)

	require.NotNil(t, a.Spawn)
	assert.Equal(t, CitySeed(7, 64, 64), a.Seed)
	assert.Equal(t, a.Spawn, b.Spawn)
	assert.Equal(t, a.Map().Bytes(), b.Map().Bytes())
}
