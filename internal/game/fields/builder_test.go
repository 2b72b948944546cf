package fields

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(rows)
	require.NoError(t, err)
	return g
}

func pos(r, c int) core.Position { return core.Position{Row: r, Col: c} }

func TestBuild_WaterFieldSingleSource(t *testing.T) {
	g := mustGrid(t,
		"=====",
		"=====",
		"==~==",
		"=====",
		"=====",
	)

	set, err := Build(g, 4)
	require.NoError(t, err)

	assert.Equal(t, Unreachable, set.Water.At(pos(2, 2)), "source cell is a seed, never a settled value")
	assert.Equal(t, 0, set.Water.At(pos(2, 1)))
	assert.Equal(t, 0, set.Water.At(pos(1, 2)))
	assert.Equal(t, 1, set.Water.At(pos(1, 1)))
	assert.Equal(t, 3, set.Water.At(pos(0, 0)))
	assert.Equal(t, 3, set.Water.At(pos(4, 4)))

	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			assert.GreaterOrEqual(t, set.Water.At(pos(r, c)), 0, "no negative settled values at (%d,%d)", r, c)
		}
	}
}

func TestBuild_WaterCrossesCitiesFuelDoesNot(t *testing.T) {
	g := mustGrid(t,
		"~CC=F",
	)

	set, err := Build(g, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, set.Water.At(pos(0, 1)))
	assert.Equal(t, 1, set.Water.At(pos(0, 2)))
	assert.Equal(t, 2, set.Water.At(pos(0, 3)))

	assert.Equal(t, 0, set.FuelUnweighted.At(pos(0, 3)))
	assert.Equal(t, Unreachable, set.FuelUnweighted.At(pos(0, 2)), "fuel fields treat cities as barriers")
	assert.Equal(t, Unreachable, set.Fuel.At(pos(0, 2)))
}

func TestBuild_WeightedFuel(t *testing.T) {
	g := mustGrid(t,
		"F=.=",
		"~...",
	)

	set, err := Build(g, 4)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    core.Position
		want int
	}{
		{"station itself", pos(0, 0), Unreachable},
		{"road next to station", pos(0, 1), 4},
		{"desert after road", pos(0, 2), 8},
		{"road after desert", pos(0, 3), 9},
		{"water", pos(1, 0), Unreachable},
		{"desert below road", pos(1, 1), 8},
		{"desert two steps", pos(1, 2), 12},
		{"desert below road end", pos(1, 3), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.Fuel.At(tt.p))
		})
	}

	assert.Equal(t, 0, set.FuelUnweighted.At(pos(0, 1)))
	assert.Equal(t, 2, set.FuelUnweighted.At(pos(0, 3)))
}

func TestBuild_CityGroups(t *testing.T) {
	g := mustGrid(t,
		"CC...",
		"C...C",
		"....=",
	)

	set, err := Build(g, 4)
	require.NoError(t, err)

	require.Equal(t, 2, set.NumCities())
	assert.Equal(t, 0, set.Cities[0].Index)
	assert.ElementsMatch(t, []core.Position{pos(0, 0), pos(0, 1), pos(1, 0)}, set.Cities[0].Members)
	assert.Equal(t, []core.Position{pos(1, 4)}, set.Cities[1].Members)

	single := set.CityInterior[1]
	assert.Equal(t, 0, single.At(pos(1, 4)), "single-cell cities are sources too")
	assert.Equal(t, 1, single.At(pos(2, 4)))
	assert.Equal(t, 5, single.At(pos(0, 0)), "interior fields cross other cities")

	for _, m := range set.Cities[0].Members {
		assert.Equal(t, 0, set.CityInterior[0].At(m))
		c, ok := set.NearestCityAt(m)
		require.True(t, ok)
		assert.Equal(t, 0, c, "city cells carry their own label")
	}
	c, ok := set.NearestCityAt(pos(2, 4))
	require.True(t, ok)
	assert.Equal(t, 1, c)
	c, ok = set.NearestCityAt(pos(0, 2))
	require.True(t, ok)
	assert.Equal(t, 0, c)
}

func TestBuild_NearestCityUnreachable(t *testing.T) {
	g := mustGrid(t,
		"C~.",
		"~~.",
	)

	set, err := Build(g, 2)
	require.NoError(t, err)

	_, ok := set.NearestCityAt(pos(0, 2))
	assert.False(t, ok, "cells cut off by water have no nearest city")
	_, ok = set.NearestCityAt(pos(0, 1))
	assert.False(t, ok, "water never gets a label")
	c, ok := set.NearestCityAt(pos(0, 0))
	require.True(t, ok)
	assert.Equal(t, 0, c)
}

func TestBuild_EmptyGrid(t *testing.T) {
	_, err := Build(core.NewGrid(0, 0), 4)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestSet_Lookup(t *testing.T) {
	g := mustGrid(t, "C=F~")
	set, err := Build(g, 2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     Ref
		want    *DistanceField
		wantErr bool
	}{
		{"water", WaterRef(), set.Water, false},
		{"fuel", FuelRef(), set.Fuel, false},
		{"fuel unweighted", Ref{Kind: KindFuelUnweighted}, set.FuelUnweighted, false},
		{"city 0", CityRef(0), set.CityInterior[0], false},
		{"city out of range", CityRef(1), nil, true},
		{"negative city", CityRef(-1), nil, true},
		{"unknown kind", Ref{Kind: Kind(42)}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := set.Lookup(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownField)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, f)
		})
	}
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "water", WaterRef().String())
	assert.Equal(t, "fuel", FuelRef().String())
	assert.Equal(t, "city[3]", CityRef(3).String())
	assert.Equal(t, "fuel_unweighted", Ref{Kind: KindFuelUnweighted}.String())
}

func TestRender(t *testing.T) {
	f := NewDistanceFieldFromRows([][]int{
		{0, 12, Unreachable},
		{sourceSeed, 3, 7},
	})
	assert.Equal(t, " 0 12 ++ \n[]  3  7 \n", Render(f))
	assert.True(t, strings.HasSuffix(Render(f), "\n"))
}

func TestDistanceField_Bounds(t *testing.T) {
	f := NewDistanceField(2, 2)
	f.Put(pos(1, 1), 5)
	f.Put(pos(5, 5), 9)

	assert.Equal(t, 5, f.At(pos(1, 1)))
	assert.Equal(t, Unreachable, f.At(pos(5, 5)))
	assert.Equal(t, Unreachable, f.At(pos(-1, 0)))
	assert.True(t, f.Reachable(pos(1, 1)))
	assert.False(t, f.Reachable(pos(0, 0)))
}

// --- reference implementation for property checks ---

type traversal struct {
	enterable func(core.Cell) bool
	source    func(core.Cell) bool
	// firstStep is the cost of entering a cell adjacent to a source
	firstStep func(core.Cell) int
	// step is the cost of entering a cell from a settled neighbour
	step func(core.Cell) int
}

// relax computes shortest costs by repeated relaxation until nothing changes.
func relax(g *core.Grid, tr traversal, settled map[core.Position]int) []int {
	dist := make([]int, len(g.Cells))
	for i := range dist {
		dist[i] = Unreachable
	}
	for p, v := range settled {
		dist[g.Idx(p)] = v
	}

	for changed := true; changed; {
		changed = false
		for i, cell := range g.Cells {
			p := core.FromIndex(i, g.C)
			if !tr.enterable(cell) {
				continue
			}
			if _, isSeed := settled[p]; isSeed {
				continue
			}
			best := dist[i]
			for _, n := range p.ValidNeighbors(g.R, g.C) {
				nc := g.Cell(n)
				if tr.source != nil && tr.source(nc) {
					if c := tr.firstStep(cell); c < best {
						best = c
					}
					continue
				}
				if d := dist[g.Idx(n)]; d != Unreachable {
					if c := d + tr.step(cell); c < best {
						best = c
					}
				}
			}
			if best < dist[i] {
				dist[i] = best
				changed = true
			}
		}
	}
	return dist
}

func randomGrid(rng *rand.Rand, rows, cols int) *core.Grid {
	g := core.NewGrid(rows, cols)
	for i := range g.Cells {
		switch x := rng.Intn(100); {
		case x < 40:
			g.Cells[i].Type = core.Road
		case x < 70:
			g.Cells[i].Type = core.Desert
		case x < 80:
			g.Cells[i].Type = core.Water
		case x < 93:
			g.Cells[i].Type = core.City
		default:
			g.Cells[i].Type = core.Station
		}
	}
	return g
}

func assertFieldEquals(t *testing.T, g *core.Grid, want []int, got *DistanceField, name string) {
	t.Helper()
	for i := range want {
		p := core.FromIndex(i, g.C)
		if !assert.Equal(t, want[i], got.At(p), "%s mismatch at %s\n%s", name, p, g) {
			return
		}
	}
}

func TestBuild_MatchesReference(t *testing.T) {
	isOpen := func(c core.Cell) bool { return c.IsOpen() }
	openOrCity := func(c core.Cell) bool { return c.IsOpen() || c.IsCity() }
	one := func(core.Cell) int { return 1 }
	zero := func(core.Cell) int { return 0 }

	for seedValue := int64(1); seedValue <= 25; seedValue++ {
		rng := rand.New(rand.NewSource(seedValue))
		rows, cols := 3+rng.Intn(6), 3+rng.Intn(6)
		players := 2 + rng.Intn(3)
		g := randomGrid(rng, rows, cols)

		set, err := Build(g, players)
		require.NoError(t, err)

		water := relax(g, traversal{
			enterable: openOrCity,
			source:    func(c core.Cell) bool { return c.IsWater() },
			firstStep: zero,
			step:      one,
		}, nil)
		assertFieldEquals(t, g, water, set.Water, "water")

		barrier := relax(g, traversal{
			enterable: isOpen,
			source:    func(c core.Cell) bool { return c.IsStation() },
			firstStep: zero,
			step:      one,
		}, nil)
		assertFieldEquals(t, g, barrier, set.FuelUnweighted, "fuel_unweighted")

		weighted := relax(g, traversal{
			enterable: isOpen,
			source:    func(c core.Cell) bool { return c.IsStation() },
			firstStep: func(core.Cell) int { return players },
			step: func(c core.Cell) int {
				if c.Type == core.Desert {
					return players
				}
				return 1
			},
		}, nil)
		assertFieldEquals(t, g, weighted, set.Fuel, "fuel")

		openOnly := make([][]int, set.NumCities())
		for i, city := range set.Cities {
			members := make(map[core.Position]int, len(city.Members))
			for _, m := range city.Members {
				members[m] = 0
				assert.Equal(t, core.City, g.Cell(m).Type)
			}
			interior := relax(g, traversal{enterable: openOrCity, step: one}, members)
			assertFieldEquals(t, g, interior, set.CityInterior[i], "city interior")

			openOnly[i] = relax(g, traversal{enterable: isOpen, step: one}, members)
		}

		// Nearest city labels point at a city with minimal open-terrain distance
		for idx := range g.Cells {
			p := core.FromIndex(idx, g.C)
			if g.Cells[idx].IsCity() {
				continue
			}
			best := Unreachable
			for i := range openOnly {
				if openOnly[i][idx] < best {
					best = openOnly[i][idx]
				}
			}
			label, ok := set.NearestCityAt(p)
			if best == Unreachable {
				assert.False(t, ok, "cell %s should have no nearest city\n%s", p, g)
				continue
			}
			require.True(t, ok, "cell %s should have a nearest city\n%s", p, g)
			require.GreaterOrEqual(t, label, 0)
			require.Less(t, label, set.NumCities())
			assert.Equal(t, best, openOnly[label][idx], "label at %s is not a closest city\n%s", p, g)
		}
	}
}
