package sim

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, players int, rows ...string) *Engine {
	t.Helper()
	e, err := NewEngine(testutil.MustGrid(t, rows...), Options{
		Players:  players,
		Me:       0,
		MaxFood:  20,
		MaxWater: 20,
	}, testutil.NewTestRNG(1), testutil.NopLogger())
	require.NoError(t, err)
	return e
}

func at(r, c int) core.Position { return core.Position{Row: r, Col: c} }

func warrior(id, player int, p core.Position) core.Unit {
	return core.Unit{ID: id, Kind: core.Warrior, Player: player, Pos: p}
}

func TestNewEngine_Options(t *testing.T) {
	grid := testutil.MustGrid(t, "C.C")
	e, err := NewEngine(grid, Options{Players: 2, Me: 1, MaxFood: 5, MaxWater: 5}, nil, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, e.NumCities())
	assert.Equal(t, 1, e.Me())
	assert.Equal(t, 2, e.NumPlayers())
	assert.Zero(t, e.Round())

	_, err = NewEngine(grid, Options{Players: 2, Me: 2, MaxFood: 5, MaxWater: 5}, nil, testutil.NopLogger())
	assert.ErrorIs(t, err, ErrInvalidOptions)
	_, err = NewEngine(grid, Options{Players: 2, Me: 0}, nil, testutil.NopLogger())
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestAddUnit(t *testing.T) {
	e := newEngine(t, 2, "=~C", "F==")

	require.NoError(t, e.AddUnit(warrior(1, 0, at(0, 0))))
	u, ok := e.Unit(1)
	require.True(t, ok)
	assert.Equal(t, 20, u.Food, "zero reserves start full")
	assert.Equal(t, 1, e.Cell(at(0, 0)).Occupant)

	tests := []struct {
		name string
		unit core.Unit
		want error
	}{
		{"duplicate id", warrior(1, 0, at(1, 1)), ErrDuplicateUnit},
		{"out of bounds", warrior(2, 0, at(5, 5)), core.ErrOutOfBounds},
		{"water", warrior(2, 0, at(0, 1)), core.ErrBlocked},
		{"station", warrior(2, 0, at(1, 0)), core.ErrBlocked},
		{"car into city", core.Unit{ID: 2, Kind: core.Car, Pos: at(0, 2)}, core.ErrBlocked},
		{"occupied", warrior(2, 1, at(0, 0)), core.ErrOccupied},
		{"unknown player", warrior(2, 5, at(1, 1)), ErrInvalidOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, e.AddUnit(tt.unit), tt.want)
		})
	}

	require.NoError(t, e.AddUnit(warrior(3, 0, at(0, 2))), "warriors may start in a city")
}

func TestCommand_Validation(t *testing.T) {
	e := newEngine(t, 2, "=~=", "===")
	require.NoError(t, e.AddUnit(warrior(1, 0, at(0, 0))))
	require.NoError(t, e.AddUnit(warrior(2, 1, at(1, 2))))

	assert.ErrorIs(t, e.Command(1, core.East), core.ErrBlocked)
	assert.ErrorIs(t, e.Command(1, core.North), core.ErrOutOfBounds)
	assert.ErrorIs(t, e.Command(2, core.North), core.ErrNotOwned)
	assert.ErrorIs(t, e.Command(9, core.North), core.ErrUnknownUnit)
	assert.ErrorIs(t, e.Command(1, core.Direction(7)), core.ErrInvalidDirection)

	require.NoError(t, e.Command(1, core.South))
	assert.ErrorIs(t, e.Command(1, core.South), core.ErrDuplicateCommand)
	require.NoError(t, e.CommandAs(1, 2, core.West))
}

func TestEndRound_AppliesMovesInOrder(t *testing.T) {
	e := newEngine(t, 2, "====", "====")
	require.NoError(t, e.AddUnit(warrior(1, 0, at(0, 0))))
	require.NoError(t, e.AddUnit(warrior(2, 0, at(0, 2))))

	require.NoError(t, e.Command(1, core.East))
	require.NoError(t, e.Command(2, core.West))

	report := e.EndRound()
	assert.Equal(t, 0, report.Round)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, report.Rejected, "second unit finds (0,1) taken")
	assert.Equal(t, 1, e.Round())

	u1, _ := e.Unit(1)
	u2, _ := e.Unit(2)
	assert.Equal(t, at(0, 1), u1.Pos)
	assert.Equal(t, at(0, 2), u2.Pos)
	assert.Equal(t, core.NoUnit, e.Cell(at(0, 0)).Occupant)
	assert.Equal(t, 1, e.Cell(at(0, 1)).Occupant)

	require.NoError(t, e.Command(1, core.South), "commands reset every round")
}

func TestEndRound_Fights(t *testing.T) {
	e := newEngine(t, 2, "===", "===")
	require.NoError(t, e.AddUnit(core.Unit{ID: 1, Kind: core.Warrior, Player: 0, Pos: at(0, 0), Food: 20, Water: 20}))
	require.NoError(t, e.AddUnit(core.Unit{ID: 2, Kind: core.Warrior, Player: 1, Pos: at(0, 1), Food: 5, Water: 20}))
	require.NoError(t, e.AddUnit(core.Unit{ID: 3, Kind: core.Warrior, Player: 1, Pos: at(0, 2), Food: 20, Water: 20}))

	require.NoError(t, e.Command(1, core.East))
	report := e.EndRound()

	assert.Equal(t, 1, report.Fights)
	assert.Equal(t, []int{2}, report.Deaths)
	u, ok := e.Unit(1)
	require.True(t, ok)
	assert.Equal(t, at(0, 1), u.Pos)
	_, ok = e.Unit(2)
	assert.False(t, ok, "dead units are invisible")
	assert.Empty(t, e.Warriors(1)[1:], "only unit 3 is left for player 1")

	require.NoError(t, e.CommandAs(1, 3, core.West))
	report = e.EndRound()
	assert.Equal(t, []int{3}, report.Deaths, "19/19 attacker loses to 19/19 defender")
}

func TestEndRound_Upkeep(t *testing.T) {
	e := newEngine(t, 2, "~=.C", "....")
	require.NoError(t, e.AddUnit(core.Unit{ID: 1, Player: 0, Pos: at(0, 1), Food: 10, Water: 10}))
	require.NoError(t, e.AddUnit(core.Unit{ID: 2, Player: 0, Pos: at(0, 3), Food: 10, Water: 10}))
	require.NoError(t, e.AddUnit(core.Unit{ID: 3, Player: 0, Pos: at(1, 1), Food: 10, Water: 10}))
	require.NoError(t, e.AddUnit(core.Unit{ID: 4, Kind: core.Car, Player: 0, Pos: at(1, 3), Food: 10, Water: 10}))

	e.EndRound()

	next, _ := e.Unit(1)
	assert.Equal(t, 9, next.Food)
	assert.Equal(t, 20, next.Water, "refilled next to water")

	city, _ := e.Unit(2)
	assert.Equal(t, 20, city.Food, "refilled inside a city")
	assert.Equal(t, 9, city.Water)

	open, _ := e.Unit(3)
	assert.Equal(t, 9, open.Food)
	assert.Equal(t, 9, open.Water)

	car, _ := e.Unit(4)
	assert.Equal(t, 10, car.Food, "cars need no supplies")
}

func TestEndRound_StarvationAndRespawn(t *testing.T) {
	const players = 2
	e := newEngine(t, players, "....", "....")
	require.NoError(t, e.AddUnit(core.Unit{ID: 1, Player: 0, Pos: at(0, 0), Food: 2, Water: 10}))

	require.NoError(t, e.Command(1, core.East))
	e.EndRound()
	report := e.EndRound()
	assert.Equal(t, []int{1}, report.Deaths)
	assert.Empty(t, e.Warriors(0))
	assert.Equal(t, core.NoUnit, e.Cell(at(0, 1)).Occupant)

	var respawnedAt int
	for i := 0; i < players+2; i++ {
		if r := e.EndRound(); len(r.Respawns) > 0 {
			respawnedAt = r.Round
			break
		}
	}
	assert.Equal(t, 1+players+1, respawnedAt, "dead for more than a full cycle")

	u, ok := e.Unit(1)
	require.True(t, ok)
	assert.Equal(t, at(0, 0), u.Pos, "respawns at its spawn point")
	assert.Equal(t, 20, u.Food)
	assert.Equal(t, 20, u.Water)
}

func TestRandom(t *testing.T) {
	e := newEngine(t, 2, "...")

	for i := 0; i < 50; i++ {
		v := e.Random(2, 4)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 4)
	}
	assert.Equal(t, 3, e.Random(3, 3))
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, e.RandomPermutation(4))
}

func TestWander(t *testing.T) {
	e := newEngine(t, 2, "===", "===", "===")
	require.NoError(t, e.AddUnit(warrior(1, 1, at(1, 1))))
	require.NoError(t, e.AddUnit(warrior(2, 1, at(0, 0))))

	e.Wander(1)
	report := e.EndRound()
	assert.Equal(t, 2, report.Applied+report.Rejected)
	assert.Positive(t, report.Applied)
}

func TestBoard(t *testing.T) {
	e := newEngine(t, 2, "=~", "CF")
	require.NoError(t, e.AddUnit(warrior(1, 1, at(0, 0))))

	board := e.Board()
	assert.Contains(t, board, "B", "player 1 warrior is drawn as B")
	assert.Contains(t, board, "~")
	assert.Contains(t, board, "C")
	assert.Contains(t, board, "F")
	assert.Equal(t, 2+2+1, strings.Count(board, "\n"), "header, two rows, blank line and legend")
}
