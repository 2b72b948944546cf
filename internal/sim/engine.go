// Package sim is a small in-process stand-in for the game engine. It follows
// the same rules the agent assumes and exists to drive the agent in tests and
// from the command line.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/combat"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/rs/zerolog"
)

// Options configures a match
type Options struct {
	Players  int
	Me       int
	MaxFood  int
	MaxWater int
}

type unitState struct {
	core.Unit
	alive     bool
	spawn     core.Position
	deadSince int
}

// RoundReport summarises what EndRound did
type RoundReport struct {
	Round    int
	Applied  int
	Rejected int
	Fights   int
	Deaths   []int
	Respawns []int
}

// Engine implements core.World for one player's point of view while keeping
// the state of every player.
type Engine struct {
	grid      *core.Grid
	units     map[int]*unitState
	order     []int
	opts      Options
	round     int
	numCities int
	rng       *rand.Rand
	predictor combat.Predictor

	queue     []core.MoveCommand
	commanded map[int]bool

	logger zerolog.Logger
}

// NewEngine creates an engine over grid. A nil rng is seeded from the clock.
func NewEngine(grid *core.Grid, opts Options, rng *rand.Rand, logger zerolog.Logger) (*Engine, error) {
	if opts.Players < 1 || opts.Me < 0 || opts.Me >= opts.Players {
		return nil, fmt.Errorf("player %d of %d: %w", opts.Me, opts.Players, ErrInvalidOptions)
	}
	if opts.MaxFood <= 0 || opts.MaxWater <= 0 {
		return nil, fmt.Errorf("reserves %d/%d: %w", opts.MaxFood, opts.MaxWater, ErrInvalidOptions)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	set, err := fields.Build(grid, opts.Players)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	return &Engine{
		grid:      grid,
		units:     make(map[int]*unitState),
		opts:      opts,
		numCities: set.NumCities(),
		rng:       rng,
		predictor: combat.NewPredictor(),
		commanded: make(map[int]bool),
		logger:    logger.With().Str("component", "SimEngine").Logger(),
	}, nil
}

// AddUnit places a unit at its spawn position. Zero reserves are filled up.
func (e *Engine) AddUnit(u core.Unit) error {
	if _, exists := e.units[u.ID]; exists {
		return fmt.Errorf("unit %d: %w", u.ID, ErrDuplicateUnit)
	}
	if u.Player < 0 || u.Player >= e.opts.Players {
		return fmt.Errorf("unit %d: player %d: %w", u.ID, u.Player, ErrInvalidOptions)
	}
	cell := e.grid.At(u.Pos)
	if cell == nil {
		return fmt.Errorf("unit %d at %s: %w", u.ID, u.Pos, core.ErrOutOfBounds)
	}
	if !e.enterable(u.Kind, cell.Type) {
		return fmt.Errorf("unit %d at %s: %w", u.ID, u.Pos, core.ErrBlocked)
	}
	if !cell.IsEmpty() {
		return fmt.Errorf("unit %d at %s: %w", u.ID, u.Pos, core.ErrOccupied)
	}

	if u.Food <= 0 {
		u.Food = e.opts.MaxFood
	}
	if u.Water <= 0 {
		u.Water = e.opts.MaxWater
	}
	e.units[u.ID] = &unitState{Unit: u, alive: true, spawn: u.Pos}
	e.order = append(e.order, u.ID)
	cell.Occupant = u.ID
	return nil
}

func (e *Engine) enterable(kind core.UnitKind, t core.CellType) bool {
	switch t {
	case core.Water, core.Station:
		return false
	case core.City:
		return kind != core.Car
	}
	return true
}

// Grid access

func (e *Engine) Rows() int                     { return e.grid.Rows() }
func (e *Engine) Cols() int                     { return e.grid.Cols() }
func (e *Engine) InBounds(p core.Position) bool { return e.grid.InBounds(p) }
func (e *Engine) Cell(p core.Position) core.Cell {
	return e.grid.Cell(p)
}

// Grid exposes the live grid for rendering and field dumps
func (e *Engine) Grid() *core.Grid { return e.grid }

// Units

func (e *Engine) Unit(id int) (core.Unit, bool) {
	s, ok := e.units[id]
	if !ok || !s.alive {
		return core.Unit{}, false
	}
	return s.Unit, true
}

func (e *Engine) Warriors(player int) []int { return e.list(player, core.Warrior) }
func (e *Engine) Cars(player int) []int     { return e.list(player, core.Car) }

func (e *Engine) list(player int, kind core.UnitKind) []int {
	var ids []int
	for _, id := range e.order {
		if s := e.units[id]; s.alive && s.Player == player && s.Kind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

// Round info

func (e *Engine) Round() int      { return e.round }
func (e *Engine) Me() int         { return e.opts.Me }
func (e *Engine) NumPlayers() int { return e.opts.Players }
func (e *Engine) NumCities() int  { return e.numCities }

// Randomness

func (e *Engine) Random(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Intn(hi-lo+1)
}

func (e *Engine) RandomPermutation(n int) []int { return e.rng.Perm(n) }

// Command queues a move for one of our own units
func (e *Engine) Command(unitID int, d core.Direction) error {
	return e.CommandAs(e.opts.Me, unitID, d)
}

// CommandAs queues a move on behalf of any player. Moves are checked against
// the board as it is now and applied in submission order by EndRound.
func (e *Engine) CommandAs(player, unitID int, d core.Direction) error {
	cmd := &core.MoveCommand{UnitID: unitID, Player: player, Dir: d}

	s, ok := e.units[unitID]
	if !ok || !s.alive {
		return core.WrapCommandError(cmd, core.ErrUnknownUnit)
	}
	if e.commanded[unitID] {
		return core.WrapCommandError(cmd, core.ErrDuplicateCommand)
	}
	if err := cmd.Validate(e.grid, s.Unit); err != nil {
		return core.WrapCommandError(cmd, err)
	}

	e.commanded[unitID] = true
	e.queue = append(e.queue, *cmd)
	return nil
}

// Wander queues a random legal move for every unit of player
func (e *Engine) Wander(player int) {
	for _, id := range append(e.Warriors(player), e.Cars(player)...) {
		for _, i := range e.rng.Perm(core.NumDirections) {
			if e.CommandAs(player, id, core.AxisDirections[i]) == nil {
				break
			}
		}
	}
}

// EndRound applies queued moves, pays upkeep, kills and respawns units and
// advances the round counter.
func (e *Engine) EndRound() RoundReport {
	report := RoundReport{Round: e.round}
	roundLogger := e.logger.With().Int("round", e.round).Logger()

	for i := range e.queue {
		e.applyMove(&e.queue[i], &report, roundLogger)
	}
	e.queue = e.queue[:0]
	clear(e.commanded)

	e.upkeep(&report)
	e.respawn(&report)

	roundLogger.Debug().
		Int("applied", report.Applied).
		Int("rejected", report.Rejected).
		Int("fights", report.Fights).
		Ints("deaths", report.Deaths).
		Ints("respawns", report.Respawns).
		Msg("Round finished")

	e.round++
	return report
}

func (e *Engine) applyMove(cmd *core.MoveCommand, report *RoundReport, logger zerolog.Logger) {
	s := e.units[cmd.UnitID]
	if !s.alive {
		report.Rejected++
		return
	}
	if err := cmd.Validate(e.grid, s.Unit); err != nil {
		logger.Debug().Err(core.WrapCommandError(cmd, err)).Msg("Move rejected")
		report.Rejected++
		return
	}

	to := s.Pos.Move(cmd.Dir)
	target := e.grid.At(to)
	if !target.IsEmpty() {
		other := e.units[target.Occupant]
		if other.Player == s.Player {
			logger.Debug().Err(core.WrapCommandError(cmd, core.ErrOccupied)).Msg("Move rejected")
			report.Rejected++
			return
		}

		report.Fights++
		if !e.predictor.Wins(s.Unit, other.Unit, target.Type) {
			e.kill(s, report)
			return
		}
		e.kill(other, report)
	}

	e.grid.At(s.Pos).Occupant = core.NoUnit
	s.Pos = to
	target.Occupant = s.ID
	report.Applied++
}

// upkeep drains one food and one water per warrior, then refills next to water
// and inside cities
func (e *Engine) upkeep(report *RoundReport) {
	for _, id := range e.order {
		s := e.units[id]
		if !s.alive || s.IsCar() {
			continue
		}

		s.Food--
		s.Water--
		if e.nextToWater(s.Pos) {
			s.Water = e.opts.MaxWater
		}
		if e.grid.Cell(s.Pos).IsCity() {
			s.Food = e.opts.MaxFood
		}
		if s.Food <= 0 || s.Water <= 0 {
			e.kill(s, report)
		}
	}
}

func (e *Engine) nextToWater(p core.Position) bool {
	for _, n := range p.ValidNeighbors(e.grid.R, e.grid.C) {
		if e.grid.Cell(n).IsWater() {
			return true
		}
	}
	return false
}

func (e *Engine) kill(s *unitState, report *RoundReport) {
	s.alive = false
	s.deadSince = e.round
	if c := e.grid.At(s.Pos); c != nil && c.Occupant == s.ID {
		c.Occupant = core.NoUnit
	}
	report.Deaths = append(report.Deaths, s.ID)
}

// respawn revives units that have been dead for more than a full player cycle.
// A blocked spawn point delays the respawn.
func (e *Engine) respawn(report *RoundReport) {
	for _, id := range e.order {
		s := e.units[id]
		if s.alive || e.round-s.deadSince < e.opts.Players+1 {
			continue
		}
		cell := e.grid.At(s.spawn)
		if !cell.IsEmpty() {
			continue
		}

		s.alive = true
		s.Pos = s.spawn
		s.Food = e.opts.MaxFood
		s.Water = e.opts.MaxWater
		cell.Occupant = s.ID
		report.Respawns = append(report.Respawns, s.ID)
	}
}

// Alive reports how many units of player are alive
func (e *Engine) Alive(player int) int {
	return len(e.Warriors(player)) + len(e.Cars(player))
}

var _ core.World = (*Engine)(nil)
