package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber writes agent events to a structured log
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, attach the full event as JSON
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs event at the subscriber's level. Warnings always go out at
// warn level so inconsistent units stand out in a quiet log.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	level := ls.logLevel
	if event.Type() == events.TypeInconsistentState && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	logEvent := ls.logger.WithLevel(level).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("round", event.Round())

	switch e := event.(type) {
	case *events.FieldsBuiltEvent:
		logEvent.
			Int("rows", e.Rows).
			Int("cols", e.Cols).
			Int("cities", e.Cities).
			Dur("duration", e.Duration)

	case *events.RoundStartedEvent:
		logEvent.Bool("warrior_turn", e.WarriorTurn)

	case *events.RoundEndedEvent:
		logEvent.
			Int("processed", e.Processed).
			Int("moves", e.Moves).
			Dur("duration", e.Duration)

	case *events.GoalPushedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Str("goal", e.Goal).
			Str("reason", e.Reason).
			Int("depth", e.Depth)

	case *events.GoalReachedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Str("goal", e.Goal).
			Stringer("pos", e.Pos)

	case *events.MoveIssuedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Stringer("from", e.From).
			Stringer("dir", e.Dir).
			Str("goal", e.Goal)

	case *events.NoSafeMoveEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Stringer("pos", e.Pos).
			Str("goal", e.Goal)

	case *events.UnitRespawnedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Int("last_seen", e.LastSeen)

	case *events.InconsistentStateEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Str("status", e.Status).
			Str("detail", e.Detail)

	case *events.RecordsEvictedEvent:
		logEvent.
			Ints("unit_ids", e.UnitIDs).
			Int("remaining", e.Remaining)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Agent event")
}
