// Package agent drives one player's units through a round: it builds the
// distance fields, keeps a record per unit and decides every warrior's move.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/combat"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/events"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/navigation"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/units"
	"github.com/rs/zerolog"
)

// Agent is the round driver. It is not safe for concurrent use; the engine
// calls Play once per round.
type Agent struct {
	world    core.World
	settings Settings
	gameID   string
	bus      events.Publisher
	logger   zerolog.Logger

	registry  *units.Registry
	predictor *combat.Predictor
	fields    *fields.Set
	claims    *navigation.Claims
	navigator *navigation.Navigator
}

type roundStats struct {
	processed int
	moves     int
}

// New creates an agent for world. With a nil bus events go to a private bus
// without subscribers.
func New(world core.World, settings Settings, bus events.Publisher, logger zerolog.Logger) *Agent {
	gameID := uuid.New().String()
	logger = logger.With().Str("component", "Agent").Str("game_id", gameID).Logger()
	if bus == nil {
		bus = events.NewEventBus(logger)
	}
	predictor := settings.predictor()

	return &Agent{
		world:     world,
		settings:  settings,
		gameID:    gameID,
		bus:       bus,
		logger:    logger,
		registry:  units.NewRegistry(),
		predictor: &predictor,
	}
}

// GameID identifies this agent session on every event it publishes
func (a *Agent) GameID() string { return a.gameID }

// Settings returns the tunables in effect
func (a *Agent) Settings() Settings { return a.settings }

// Fields returns the field set, or nil before the first round was played
func (a *Agent) Fields() *fields.Set { return a.fields }

// Reload replaces the tunables. It must not be called while Play runs.
func (a *Agent) Reload(s Settings) {
	a.settings = s
	*a.predictor = s.predictor()
	a.logger.Info().
		Int("water_margin", s.WaterMargin).
		Int("food_margin", s.FoodMargin).
		Int("city_fight_ratio", s.CityFightRatio).
		Int("warrior_cadence", s.WarriorCadence).
		Int("warrior_offset", s.WarriorOffset).
		Msg("Agent settings reloaded")
}

// Play decides the current round. Only context cancellation and a failed field
// build abort it; problems with single units are logged and the unit is skipped.
func (a *Agent) Play(ctx context.Context) error {
	round := a.world.Round()
	start := time.Now()
	roundLogger := a.logger.With().Int("round", round).Logger()

	if err := a.checkContext(ctx, round, "before fields"); err != nil {
		return core.WrapRoundError(round, "fields", fmt.Errorf("context cancelled: %w", err))
	}
	if round == 0 || a.fields == nil {
		if err := a.buildFields(round, roundLogger); err != nil {
			return core.WrapRoundError(round, "fields", err)
		}
	}

	warriorTurn := a.warriorTurn(round)
	a.bus.Publish(events.NewRoundStartedEvent(a.gameID, round, warriorTurn))

	var stats roundStats
	me := a.world.Me()

	if err := a.checkContext(ctx, round, "before cars"); err != nil {
		return core.WrapRoundError(round, "cars", fmt.Errorf("context cancelled: %w", err))
	}
	for _, id := range a.world.Cars(me) {
		a.moveCar(id, round, &stats, roundLogger)
	}

	if warriorTurn {
		if err := a.checkContext(ctx, round, "before warriors"); err != nil {
			return core.WrapRoundError(round, "warriors", fmt.Errorf("context cancelled: %w", err))
		}
		for _, id := range a.world.Warriors(me) {
			a.moveWarrior(id, round, &stats, roundLogger)
		}
	}

	a.sweep(round, roundLogger)

	elapsed := time.Since(start)
	roundLogger.Debug().
		Bool("warrior_turn", warriorTurn).
		Int("processed", stats.processed).
		Int("moves", stats.moves).
		Dur("elapsed", elapsed).
		Msg("Round decided")
	a.bus.Publish(events.NewRoundEndedEvent(a.gameID, round, stats.processed, stats.moves, elapsed))
	return nil
}

// checkContext checks if the context is cancelled
func (a *Agent) checkContext(ctx context.Context, round int, phase string) error {
	select {
	case <-ctx.Done():
		a.logger.Warn().
			Err(ctx.Err()).
			Int("round", round).
			Str("phase", phase).
			Msg("Round cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

func (a *Agent) buildFields(round int, logger zerolog.Logger) error {
	start := time.Now()
	set, err := fields.NewBuilder(a.world, a.world.NumPlayers(), logger).Build()
	if err != nil {
		return err
	}

	if reported := a.world.NumCities(); reported != set.NumCities() {
		logger.Warn().
			Int("reported", reported).
			Int("found", set.NumCities()).
			Msg("City count differs from engine, using flood fill result")
	}
	if a.settings.DumpFields {
		set.Dump(logger)
	}

	a.fields = set
	a.claims = navigation.NewClaims(a.world.Rows(), a.world.Cols())
	a.navigator = navigation.NewNavigator(a.world, a.predictor, a.claims, a.logger)

	a.bus.Publish(events.NewFieldsBuiltEvent(a.gameID, round, a.world.Rows(), a.world.Cols(), set.NumCities(), time.Since(start)))
	return nil
}

// warriorTurn reports whether warriors move this round
func (a *Agent) warriorTurn(round int) bool {
	cadence := a.settings.WarriorCadence
	if cadence <= 0 {
		cadence = a.world.NumPlayers()
	}
	offset := a.settings.WarriorOffset
	if offset < 0 {
		offset = a.world.Me()
	}
	return round%cadence == offset%cadence
}

// observe fetches the unit's snapshot and record, publishing a respawn if the
// record had to be reset
func (a *Agent) observe(id, round int, logger zerolog.Logger) (core.Unit, *units.Record, bool) {
	unit, ok := a.world.Unit(id)
	if !ok {
		logger.Warn().Int("unit_id", id).Msg("Listed unit is not visible")
		return core.Unit{}, nil, false
	}

	lastSeen := -1
	if prev, ok := a.registry.Get(id); ok {
		lastSeen = prev.LastSeen
	}
	rec, respawned := a.registry.Observe(id, unit.Kind, round, a.world.NumPlayers())
	if respawned {
		logger.Debug().Int("unit_id", id).Int("last_seen", lastSeen).Msg("Unit record reset after respawn")
		a.bus.Publish(events.NewUnitRespawnedEvent(a.gameID, round, id, lastSeen))
	}
	return unit, rec, true
}

// moveCar keeps the car's record current. Cars issue no commands.
func (a *Agent) moveCar(id, round int, stats *roundStats, logger zerolog.Logger) {
	if _, _, ok := a.observe(id, round, logger); !ok {
		return
	}
	stats.processed++
}

func (a *Agent) sweep(round int, logger zerolog.Logger) {
	interval := a.settings.SweepInterval
	if interval <= 0 || round == 0 || round%interval != 0 {
		return
	}

	evicted := a.registry.Sweep(round, a.settings.SweepAgeCycles*a.world.NumPlayers())
	if len(evicted) == 0 {
		return
	}
	logger.Debug().Ints("unit_ids", evicted).Int("remaining", a.registry.Len()).Msg("Stale unit records evicted")
	a.bus.Publish(events.NewRecordsEvictedEvent(a.gameID, round, evicted, a.registry.Len()))
}
