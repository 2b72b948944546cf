// Package navigation walks units down distance fields without stepping into
// fights they would lose.
package navigation

import (
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/rs/zerolog"
)

// CombatPredictor decides single encounters on a given terrain
type CombatPredictor interface {
	Wins(attacker, victim core.Unit, terrain core.CellType) bool
}

// Navigator picks one step per unit and round. It shares its claims table with
// every unit processed in the same round.
type Navigator struct {
	world     core.World
	predictor CombatPredictor
	claims    *Claims
	logger    zerolog.Logger
}

func NewNavigator(world core.World, predictor CombatPredictor, claims *Claims, logger zerolog.Logger) *Navigator {
	return &Navigator{
		world:     world,
		predictor: predictor,
		claims:    claims,
		logger:    logger.With().Str("component", "Navigator").Logger(),
	}
}

// Next selects a direction that lowers (or failing that, keeps) the unit's
// distance on field, visiting directions in a fresh random order. It reports
// false when every candidate is unsafe or the unit stands where field has no value.
func (n *Navigator) Next(unit core.Unit, field *fields.DistanceField) (core.Direction, bool) {
	d := field.At(unit.Pos)
	if d == fields.Unreachable {
		return 0, false
	}

	round := n.world.Round()
	var closer, level []core.Direction
	for _, i := range n.world.RandomPermutation(core.NumDirections) {
		dir := core.AxisDirections[i]
		p := unit.Pos.Move(dir)
		if !n.world.InBounds(p) {
			continue
		}
		v := field.At(p)
		if v > d || !n.safe(unit, p, round) {
			continue
		}
		if v < d {
			closer = append(closer, dir)
		} else {
			level = append(level, dir)
		}
	}

	switch {
	case len(closer) > 0:
		return closer[0], true
	case len(level) > 0:
		return level[0], true
	default:
		return 0, false
	}
}

// Step selects a direction with Next, submits the move and claims the
// destination once the move is accepted. A false result with a nil error means
// the unit stays put this round.
func (n *Navigator) Step(unit core.Unit, field *fields.DistanceField) (core.Direction, bool, error) {
	dir, ok := n.Next(unit, field)
	if !ok {
		n.logger.Debug().Int("unit_id", unit.ID).Str("pos", unit.Pos.String()).Msg("No safe move")
		return 0, false, nil
	}

	if err := n.world.Command(unit.ID, dir); err != nil {
		cmd := &core.MoveCommand{UnitID: unit.ID, Player: unit.Player, Dir: dir}
		return dir, false, core.WrapCommandError(cmd, err)
	}
	n.claims.Claim(unit.Pos.Move(dir), n.world.Round())
	return dir, true, nil
}

// safe reports whether unit may move to p this round
func (n *Navigator) safe(unit core.Unit, p core.Position, round int) bool {
	if n.claims.Claimed(p, round) {
		return false
	}

	cell := n.world.Cell(p)
	if !cell.IsEmpty() {
		occupant, ok := n.world.Unit(cell.Occupant)
		if !ok || occupant.Player == unit.Player {
			return false
		}
		if !n.predictor.Wins(unit, occupant, cell.Type) {
			return false
		}
	}

	// One ply of lookahead: nobody next to p may beat us once we stand there
	moved := unit
	moved.Pos = p
	for _, q := range p.Neighbors() {
		if !n.world.InBounds(q) {
			continue
		}
		id := n.world.Cell(q).Occupant
		if id == core.NoUnit || id == unit.ID {
			continue
		}
		enemy, ok := n.world.Unit(id)
		if !ok || enemy.Player == unit.Player {
			continue
		}
		if n.predictor.Wins(enemy, moved, cell.Type) {
			return false
		}
	}
	return true
}
