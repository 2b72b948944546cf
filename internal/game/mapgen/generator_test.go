package mapgen

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(30, 20, 4)

	assert.Equal(t, 30, config.Width)
	assert.Equal(t, 20, config.Height)
	assert.Equal(t, 4, config.PlayerCount)
	assert.Equal(t, 4, config.LakeCount)
	assert.Equal(t, 5, config.CityCount)
	assert.Equal(t, 3, config.StationCount)

	tiny := DefaultMapConfig(3, 3, 2)
	assert.Equal(t, 1, tiny.LakeCount, "every map gets at least one of each feature")
	assert.Equal(t, 1, tiny.CityCount)
	assert.Equal(t, 1, tiny.StationCount)
}

func TestGenerateMap_Dimensions(t *testing.T) {
	grid := NewGenerator(DefaultMapConfig(30, 20, 4), newTestRNG()).GenerateMap()

	assert.Equal(t, 20, grid.Rows())
	assert.Equal(t, 30, grid.Cols())
	for _, c := range grid.Cells {
		assert.Equal(t, core.NoUnit, c.Occupant)
	}
}

func TestGenerateMap_Features(t *testing.T) {
	config := DefaultMapConfig(30, 20, 4)
	grid := NewGenerator(config, newTestRNG()).GenerateMap()

	assert.Positive(t, grid.Count(core.Road))
	assert.Positive(t, grid.Count(core.Water))
	assert.Positive(t, grid.Count(core.City))
	assert.Positive(t, grid.Count(core.Station))

	set, err := fields.Build(grid, config.PlayerCount)
	require.NoError(t, err)
	assert.LessOrEqual(t, set.NumCities(), config.CityCount)
	assert.Positive(t, set.NumCities())

	for idx, c := range grid.Cells {
		if c.Type != core.Station {
			continue
		}
		p := core.FromIndex(idx, grid.C)
		hasRoad := false
		for _, n := range p.ValidNeighbors(grid.R, grid.C) {
			if grid.Cell(n).Type == core.Road {
				hasRoad = true
			}
		}
		assert.True(t, hasRoad, "station at %s has no road access", p)
	}
}

func TestGenerateMap_RoadsAreStraight(t *testing.T) {
	config := DefaultMapConfig(12, 12, 2)
	config.LakeCount, config.CityCount, config.StationCount = 0, 0, 0
	grid := NewGenerator(config, newTestRNG()).GenerateMap()

	fullRows := 0
	for r := 0; r < grid.R; r++ {
		full := true
		for c := 0; c < grid.C; c++ {
			if grid.Cell(core.Position{Row: r, Col: c}).Type != core.Road {
				full = false
			}
		}
		if full {
			fullRows++
		}
	}
	assert.GreaterOrEqual(t, fullRows, 2, "a 12 row map with spacing 5 has at least two horizontal roads")
}

func TestGenerateMap_Deterministic(t *testing.T) {
	config := DefaultMapConfig(25, 15, 3)

	a := NewGenerator(config, rand.New(rand.NewSource(7))).GenerateMap()
	b := NewGenerator(config, rand.New(rand.NewSource(7))).GenerateMap()
	c := NewGenerator(config, rand.New(rand.NewSource(8))).GenerateMap()

	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), c.String())
}

func TestSpawnPoints(t *testing.T) {
	config := DefaultMapConfig(30, 20, 4)
	gen := NewGenerator(config, newTestRNG())
	grid := gen.GenerateMap()

	spawns := gen.SpawnPoints(grid, 8)
	require.Len(t, spawns, 8)

	seen := map[core.Position]bool{}
	for _, p := range spawns {
		assert.True(t, grid.Cell(p).IsOpen(), "spawn %s is not open terrain", p)
		assert.False(t, seen[p], "spawn %s used twice", p)
		seen[p] = true
	}
}

func TestSpawnPoints_CrowdedMap(t *testing.T) {
	config := DefaultMapConfig(3, 3, 2)
	config.MinSpawnGap = 10
	gen := NewGenerator(config, newTestRNG())
	grid := core.NewGrid(3, 3)
	grid.SetType(core.Position{Row: 1, Col: 1}, core.Water)

	spawns := gen.SpawnPoints(grid, 20)
	assert.Len(t, spawns, 8, "every open cell is used once the gap cannot be met")
}
