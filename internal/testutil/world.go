package testutil

import (
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// Move is one command received by a FakeWorld
type Move struct {
	UnitID int
	Dir    core.Direction
}

// FakeWorld is a scriptable core.World. Randomness comes from Perm and Rolls so
// tests can pin every choice the agent makes.
type FakeWorld struct {
	*core.Grid

	CurrentRound int
	Player       int
	PlayerCount  int
	CityCount    int

	// Perm is returned by RandomPermutation when its length matches; identity otherwise
	Perm []int
	// Rolls are consumed by Random in order; once exhausted Random returns lo
	Rolls []int

	Moves      []Move
	CommandErr error

	units map[int]core.Unit
	order []int
}

// NewFakeWorld wraps grid for player me of players
func NewFakeWorld(grid *core.Grid, me, players int) *FakeWorld {
	return &FakeWorld{
		Grid:        grid,
		Player:      me,
		PlayerCount: players,
		units:       make(map[int]core.Unit),
	}
}

// AddUnit places u on the grid
func (w *FakeWorld) AddUnit(u core.Unit) {
	if _, ok := w.units[u.ID]; !ok {
		w.order = append(w.order, u.ID)
	}
	w.units[u.ID] = u
	if c := w.At(u.Pos); c != nil {
		c.Occupant = u.ID
	}
}

// UpdateUnit replaces a unit snapshot, moving its occupancy if the position changed
func (w *FakeWorld) UpdateUnit(u core.Unit) {
	if old, ok := w.units[u.ID]; ok {
		if c := w.At(old.Pos); c != nil && c.Occupant == u.ID {
			c.Occupant = core.NoUnit
		}
	}
	w.AddUnit(u)
}

// RemoveUnit takes a unit off the board, as if it died
func (w *FakeWorld) RemoveUnit(id int) {
	u, ok := w.units[id]
	if !ok {
		return
	}
	if c := w.At(u.Pos); c != nil && c.Occupant == id {
		c.Occupant = core.NoUnit
	}
	delete(w.units, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// ApplyMoves executes and clears the recorded moves without any rule checks
func (w *FakeWorld) ApplyMoves() {
	for _, m := range w.Moves {
		u := w.units[m.UnitID]
		u.Pos = u.Pos.Move(m.Dir)
		w.UpdateUnit(u)
	}
	w.Moves = nil
}

func (w *FakeWorld) Unit(id int) (core.Unit, bool) {
	u, ok := w.units[id]
	return u, ok
}

func (w *FakeWorld) Warriors(player int) []int { return w.list(player, core.Warrior) }
func (w *FakeWorld) Cars(player int) []int     { return w.list(player, core.Car) }

func (w *FakeWorld) list(player int, kind core.UnitKind) []int {
	var ids []int
	for _, id := range w.order {
		if u := w.units[id]; u.Player == player && u.Kind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

func (w *FakeWorld) Round() int      { return w.CurrentRound }
func (w *FakeWorld) Me() int         { return w.Player }
func (w *FakeWorld) NumPlayers() int { return w.PlayerCount }
func (w *FakeWorld) NumCities() int  { return w.CityCount }

func (w *FakeWorld) Random(lo, hi int) int {
	if len(w.Rolls) == 0 {
		return lo
	}
	v := w.Rolls[0]
	w.Rolls = w.Rolls[1:]
	return v
}

func (w *FakeWorld) RandomPermutation(n int) []int {
	if len(w.Perm) == n {
		out := make([]int, n)
		copy(out, w.Perm)
		return out
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (w *FakeWorld) Command(unitID int, d core.Direction) error {
	if w.CommandErr != nil {
		return w.CommandErr
	}
	w.Moves = append(w.Moves, Move{UnitID: unitID, Dir: d})
	return nil
}

var _ core.World = (*FakeWorld)(nil)
