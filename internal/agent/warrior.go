package agent

import (
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/events"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/units"
	"github.com/rs/zerolog"
)

// Goal push reasons carried on GoalPushed events
const (
	reasonNearestCity = "nearest_city"
	reasonRandomCity  = "random_city"
	reasonThirst      = "thirst"
	reasonHunger      = "hunger"
)

// moveWarrior runs one warrior through respawn detection, job assignment,
// the supply check and navigation
func (a *Agent) moveWarrior(id, round int, stats *roundStats, logger zerolog.Logger) {
	unit, rec, ok := a.observe(id, round, logger)
	if !ok {
		return
	}
	stats.processed++
	unitLogger := logger.With().Int("unit_id", id).Logger()

	if rec.Status.IsIdle() {
		a.assignJob(unit, rec, round, unitLogger)
	}
	a.checkSupplies(unit, rec, round)

	if a.navigate(unit, rec, round, unitLogger) {
		stats.moves++
	}
}

// assignJob sends an idle warrior either to the city nearest to it or to a
// random city
func (a *Agent) assignJob(unit core.Unit, rec *units.Record, round int, logger zerolog.Logger) {
	numCities := a.fields.NumCities()
	if numCities == 0 {
		logger.Info().Msg("No city on the map, warrior stays idle")
		return
	}

	nearest, known := a.fields.NearestCityAt(unit.Pos)
	city, reason := nearest, reasonNearestCity
	if a.world.Random(0, 1) != 1 || !known {
		city, reason = a.world.Random(0, numCities-1), reasonRandomCity
	}

	a.pushGoal(rec, fields.CityRef(city), reason, round)
}

// checkSupplies detours to water or food when the reserve would not last the
// walk to the nearest source plus a margin. A resolved need only clears the
// status bit; the goal leaves the stack once it is reached.
func (a *Agent) checkSupplies(unit core.Unit, rec *units.Record, round int) {
	needWater := unit.Water-a.settings.WaterMargin < a.fields.Water.At(unit.Pos)
	switch {
	case needWater && !rec.Status.Has(units.Watering):
		a.pushGoal(rec, fields.WaterRef(), reasonThirst, round)
		rec.Status.Set(units.Watering)
	case !needWater && rec.Status.Has(units.Watering):
		rec.Status.Clear(units.Watering)
	}

	needFood := false
	city, known := a.fields.NearestCityAt(unit.Pos)
	if known {
		needFood = unit.Food-a.settings.FoodMargin < a.fields.CityInterior[city].At(unit.Pos)
	}
	switch {
	case needFood && !rec.Status.Has(units.Feeding):
		a.pushGoal(rec, fields.CityRef(city), reasonHunger, round)
		rec.Status.Set(units.Feeding)
	case !needFood && rec.Status.Has(units.Feeding):
		rec.Status.Clear(units.Feeding)
	}
}

// pushGoal makes ref the active goal. The stack is never empty while
// FollowingField is set.
func (a *Agent) pushGoal(rec *units.Record, ref fields.Ref, reason string, round int) {
	rec.Goals.Push(ref)
	rec.Status.Set(units.FollowingField)
	a.bus.Publish(events.NewGoalPushedEvent(a.gameID, round, rec.ID, ref.String(), reason, rec.Goals.Len()))
}

// navigate pops reached goals, keeping the last one, and steps down the active
// goal's field. It reports whether a move was issued.
func (a *Agent) navigate(unit core.Unit, rec *units.Record, round int, logger zerolog.Logger) bool {
	if !rec.Status.Has(units.FollowingField) {
		return false
	}
	if rec.Goals.Empty() {
		a.inconsistent(rec, round, "following a field with an empty goal stack", logger)
		return false
	}

	goal, _ := rec.Goals.Top()
	field, err := a.fields.Lookup(goal)
	if err != nil {
		a.inconsistent(rec, round, err.Error(), logger)
		return false
	}
	for rec.Goals.Len() > 1 && field.At(unit.Pos) == 0 {
		rec.Goals.Pop()
		a.bus.Publish(events.NewGoalReachedEvent(a.gameID, round, rec.ID, goal.String(), unit.Pos))

		goal, _ = rec.Goals.Top()
		if field, err = a.fields.Lookup(goal); err != nil {
			a.inconsistent(rec, round, err.Error(), logger)
			return false
		}
	}

	dir, moved, err := a.navigator.Step(unit, field)
	if err != nil {
		logger.Warn().Err(err).Str("goal", goal.String()).Msg("Move command rejected")
		return false
	}
	if !moved {
		a.bus.Publish(events.NewNoSafeMoveEvent(a.gameID, round, rec.ID, unit.Pos, goal.String()))
		return false
	}

	logger.Debug().
		Str("goal", goal.String()).
		Str("from", unit.Pos.String()).
		Str("dir", dir.String()).
		Msg("Move issued")
	a.bus.Publish(events.NewMoveIssuedEvent(a.gameID, round, rec.ID, unit.Pos, dir, goal.String()))
	return true
}

func (a *Agent) inconsistent(rec *units.Record, round int, detail string, logger zerolog.Logger) {
	logger.Warn().
		Str("status", rec.Status.String()).
		Int("goals", rec.Goals.Len()).
		Str("detail", detail).
		Msg("Inconsistent unit state, skipping unit")
	a.bus.Publish(events.NewInconsistentStateEvent(a.gameID, round, rec.ID, rec.Status.String(), detail))
}
