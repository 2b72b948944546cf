package mapgen

import (
	"math/rand"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width        int
	Height       int
	PlayerCount  int
	RoadSpacing  int // distance between parallel roads
	LakeCount    int
	LakeSize     int // random walk length of each lake
	CityCount    int
	CityMaxSize  int // side length bound of a city block
	StationCount int
	MinSpawnGap  int // Manhattan distance between spawn points
}

// DefaultMapConfig scales feature counts with the map area
func DefaultMapConfig(w, h, players int) MapConfig {
	area := w * h
	return MapConfig{
		Width:        w,
		Height:       h,
		PlayerCount:  players,
		RoadSpacing:  5,
		LakeCount:    max(1, area/150),
		LakeSize:     6,
		CityCount:    max(1, area/120),
		CityMaxSize:  3,
		StationCount: max(1, area/200),
		MinSpawnGap:  4,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap lays out roads first, then lakes, cities and stations on the
// desert between them.
func (g *Generator) GenerateMap() *core.Grid {
	grid := core.NewGrid(g.config.Height, g.config.Width)

	g.placeRoads(grid)
	g.placeLakes(grid)
	g.placeCities(grid)
	g.placeStations(grid)

	return grid
}

func (g *Generator) placeRoads(grid *core.Grid) {
	spacing := g.config.RoadSpacing
	if spacing <= 0 {
		return
	}

	for r := g.rng.Intn(spacing); r < grid.R; r += spacing {
		for c := 0; c < grid.C; c++ {
			grid.SetType(core.Position{Row: r, Col: c}, core.Road)
		}
	}
	for c := g.rng.Intn(spacing); c < grid.C; c += spacing {
		for r := 0; r < grid.R; r++ {
			grid.SetType(core.Position{Row: r, Col: c}, core.Road)
		}
	}
}

// placeLakes grows each lake as a random walk over desert
func (g *Generator) placeLakes(grid *core.Grid) {
	for i := 0; i < g.config.LakeCount; i++ {
		start, ok := g.randomCell(grid, core.Desert)
		if !ok {
			return
		}

		p := start
		for step := 0; step < g.config.LakeSize; step++ {
			if grid.Cell(p).Type == core.Desert {
				grid.SetType(p, core.Water)
			}
			next := p.Move(core.AxisDirections[g.rng.Intn(core.NumDirections)])
			if grid.InBounds(next) && grid.Cell(next).Type != core.Road {
				p = next
			}
		}
	}
}

// placeCities drops rectangular blocks onto pure desert so blocks never merge
// into water or roads
func (g *Generator) placeCities(grid *core.Grid) {
	maxAttempts := g.config.CityCount * 20
	placed := 0

	for attempts := 0; placed < g.config.CityCount && attempts < maxAttempts; attempts++ {
		h := 1 + g.rng.Intn(max(1, g.config.CityMaxSize))
		w := 1 + g.rng.Intn(max(1, g.config.CityMaxSize))
		if h > grid.R || w > grid.C {
			continue
		}
		top := core.Position{Row: g.rng.Intn(grid.R - h + 1), Col: g.rng.Intn(grid.C - w + 1)}

		if !g.blockIsFree(grid, top, h, w) {
			continue
		}
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				grid.SetType(top.Add(core.Position{Row: r, Col: c}), core.City)
			}
		}
		placed++
	}
}

// blockIsFree reports whether the block and its one-cell border hold no city or water
func (g *Generator) blockIsFree(grid *core.Grid, top core.Position, h, w int) bool {
	for r := top.Row - 1; r <= top.Row+h; r++ {
		for c := top.Col - 1; c <= top.Col+w; c++ {
			p := core.Position{Row: r, Col: c}
			if !grid.InBounds(p) {
				continue
			}
			inside := r >= top.Row && r < top.Row+h && c >= top.Col && c < top.Col+w
			switch t := grid.Cell(p).Type; {
			case t == core.City, t == core.Water:
				return false
			case inside && t != core.Desert:
				return false
			}
		}
	}
	return true
}

// placeStations puts fuel stations on desert cells next to a road
func (g *Generator) placeStations(grid *core.Grid) {
	maxAttempts := g.config.StationCount * 50
	placed := 0

	for attempts := 0; placed < g.config.StationCount && attempts < maxAttempts; attempts++ {
		p, ok := g.randomCell(grid, core.Desert)
		if !ok {
			return
		}
		if !nextTo(grid, p, core.Road) {
			continue
		}
		grid.SetType(p, core.Station)
		placed++
	}
}

// SpawnPoints picks n distinct open, empty cells at least MinSpawnGap apart,
// relaxing the gap when the map is too crowded.
func (g *Generator) SpawnPoints(grid *core.Grid, n int) []core.Position {
	spawns := make([]core.Position, 0, n)
	taken := make(map[core.Position]bool, n)

	for len(spawns) < n {
		p, ok := g.findSpawn(grid, spawns, taken)
		if !ok {
			break
		}
		spawns = append(spawns, p)
		taken[p] = true
	}
	return spawns
}

func (g *Generator) findSpawn(grid *core.Grid, existing []core.Position, taken map[core.Position]bool) (core.Position, bool) {
	maxAttempts := grid.R * grid.C

	for attempts := 0; attempts < maxAttempts; attempts++ {
		p := core.Position{Row: g.rng.Intn(grid.R), Col: g.rng.Intn(grid.C)}
		if c := grid.Cell(p); !c.IsOpen() || !c.IsEmpty() || taken[p] {
			continue
		}

		valid := true
		for _, other := range existing {
			if p.DistanceTo(other) < g.config.MinSpawnGap {
				valid = false
				break
			}
		}
		if valid {
			return p, true
		}
	}

	// Fallback: first free open cell in scan order
	for idx, c := range grid.Cells {
		p := core.FromIndex(idx, grid.C)
		if c.IsOpen() && c.IsEmpty() && !taken[p] {
			return p, true
		}
	}
	return core.Position{}, false
}

func (g *Generator) randomCell(grid *core.Grid, t core.CellType) (core.Position, bool) {
	if grid.Count(t) == 0 {
		return core.Position{}, false
	}
	for {
		p := core.Position{Row: g.rng.Intn(grid.R), Col: g.rng.Intn(grid.C)}
		if grid.Cell(p).Type == t {
			return p, true
		}
	}
}

func nextTo(grid *core.Grid, p core.Position, t core.CellType) bool {
	for _, n := range p.ValidNeighbors(grid.R, grid.C) {
		if grid.Cell(n).Type == t {
			return true
		}
	}
	return false
}
