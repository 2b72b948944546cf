package fields

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/rs/zerolog"
)

// sourceSeed is the cost recorded for source cells that can't be entered
// themselves. Seeds are expanded but never settled, so the ring around a
// source reads 0.
const sourceSeed = -1

type seed struct {
	pos  core.Position
	dist int
}

// Builder classifies a grid and computes every field in one pass.
type Builder struct {
	grid       core.GridView
	numPlayers int
	logger     zerolog.Logger
}

// NewBuilder creates a field builder. numPlayers is the weight of desert
// cells and of leaving a station in the weighted fuel field.
func NewBuilder(grid core.GridView, numPlayers int, logger zerolog.Logger) *Builder {
	return &Builder{
		grid:       grid,
		numPlayers: numPlayers,
		logger:     logger.With().Str("component", "FieldBuilder").Logger(),
	}
}

// Build computes the field set without logging
func Build(grid core.GridView, numPlayers int) (*Set, error) {
	return NewBuilder(grid, numPlayers, zerolog.Nop()).Build()
}

// Build scans the grid once, seeds every source queue and runs the propagations.
func (b *Builder) Build() (*Set, error) {
	rows, cols := b.grid.Rows(), b.grid.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("build fields: %w", ErrEmptyGrid)
	}
	start := time.Now()

	var waterQ, fuelQ []seed
	fuelPQ := &seedHeap{}

	cityOf := make([]int, rows*cols)
	for i := range cityOf {
		cityOf[i] = -1
	}
	var cities []CityGroup

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := core.Position{Row: r, Col: c}
			switch b.grid.Cell(p).Type {
			case core.Water:
				waterQ = append(waterQ, seed{p, sourceSeed})
			case core.Station:
				fuelQ = append(fuelQ, seed{p, sourceSeed})
				heap.Push(fuelPQ, seed{p, sourceSeed})
			case core.City:
				if cityOf[p.ToIndex(cols)] != -1 {
					continue
				}
				cities = append(cities, b.exploreCity(p, len(cities), cityOf))
			}
		}
	}

	set := &Set{
		Cities:       cities,
		CityInterior: make([]*DistanceField, len(cities)),
	}
	set.Fuel = b.weightedFuel(fuelPQ)
	set.Water = b.bfs(waterQ, true)
	set.FuelUnweighted = b.bfs(fuelQ, false)

	var nearestQ []seed
	for i, city := range cities {
		interiorQ := make([]seed, 0, len(city.Members))
		for _, p := range city.Members {
			nearestQ = append(nearestQ, seed{p, i})
			interiorQ = append(interiorQ, seed{p, 0})
		}
		set.CityInterior[i] = b.bfs(interiorQ, true)
	}
	set.NearestCity = b.nearestCity(nearestQ)

	b.logger.Debug().
		Int("rows", rows).
		Int("cols", cols).
		Int("cities", len(cities)).
		Int("water_sources", len(waterQ)).
		Int("stations", len(fuelQ)).
		Dur("elapsed", time.Since(start)).
		Msg("Distance fields built")

	return set, nil
}

// exploreCity flood fills the City region containing start
func (b *Builder) exploreCity(start core.Position, index int, cityOf []int) CityGroup {
	cols := b.grid.Cols()
	group := CityGroup{Index: index}

	queue := []core.Position{start}
	cityOf[start.ToIndex(cols)] = index
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		group.Members = append(group.Members, p)

		for _, n := range p.Neighbors() {
			if !b.grid.InBounds(n) || b.grid.Cell(n).Type != core.City {
				continue
			}
			if cityOf[n.ToIndex(cols)] != -1 {
				continue
			}
			cityOf[n.ToIndex(cols)] = index
			queue = append(queue, n)
		}
	}
	return group
}

// bfs runs a uniform-cost propagation over Road and Desert cells, and over
// City cells when crossCity is set. Non-negative seeds are settled, negative
// ones only expand.
func (b *Builder) bfs(queue []seed, crossCity bool) *DistanceField {
	m := NewDistanceField(b.grid.Rows(), b.grid.Cols())

	for head := 0; head < len(queue); head++ {
		s := queue[head]
		if s.dist >= 0 {
			if m.Reachable(s.pos) {
				continue
			}
			m.Put(s.pos, s.dist)
		}

		for _, n := range s.pos.Neighbors() {
			if !b.grid.InBounds(n) || m.Reachable(n) {
				continue
			}
			cell := b.grid.Cell(n)
			if cell.IsOpen() || (crossCity && cell.IsCity()) {
				queue = append(queue, seed{n, s.dist + 1})
			}
		}
	}
	return m
}

// weightedFuel runs a lazy-deletion Dijkstra from every station at once.
// Entering Desert costs numPlayers, entering Road costs 1, and the first step
// off a station costs numPlayers whatever the terrain. Cities and water are
// never entered.
func (b *Builder) weightedFuel(pq *seedHeap) *DistanceField {
	m := NewDistanceField(b.grid.Rows(), b.grid.Cols())

	for pq.Len() > 0 {
		s := heap.Pop(pq).(seed)
		if s.dist >= 0 {
			if m.Reachable(s.pos) {
				continue
			}
			m.Put(s.pos, s.dist)
		}

		for _, n := range s.pos.Neighbors() {
			if !b.grid.InBounds(n) || m.Reachable(n) {
				continue
			}
			cell := b.grid.Cell(n)
			if !cell.IsOpen() {
				continue
			}

			var cost int
			switch {
			case s.dist < 0:
				cost = b.numPlayers
			case cell.Type == core.Desert:
				cost = s.dist + b.numPlayers
			default:
				cost = s.dist + 1
			}
			heap.Push(pq, seed{n, cost})
		}
	}
	return m
}

// nearestCity labels every cell reachable over Road and Desert with the index
// of the first city to reach it. Ties go to the city queued first.
func (b *Builder) nearestCity(queue []seed) *DistanceField {
	m := NewDistanceField(b.grid.Rows(), b.grid.Cols())

	for head := 0; head < len(queue); head++ {
		s := queue[head]
		if m.Reachable(s.pos) {
			continue
		}
		m.Put(s.pos, s.dist)

		for _, n := range s.pos.Neighbors() {
			if !b.grid.InBounds(n) || m.Reachable(n) {
				continue
			}
			if b.grid.Cell(n).IsOpen() {
				queue = append(queue, seed{n, s.dist})
			}
		}
	}
	return m
}

// seedHeap is a min-heap on dist for container/heap
type seedHeap []seed

func (h seedHeap) Len() int           { return len(h) }
func (h seedHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h seedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *seedHeap) Push(x any) { *h = append(*h, x.(seed)) }

func (h *seedHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
