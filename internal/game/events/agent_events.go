package events

import (
	"time"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// Event type constants
const (
	TypeFieldsBuilt       = "fields.built"
	TypeRoundStarted      = "round.started"
	TypeRoundEnded        = "round.ended"
	TypeGoalPushed        = "goal.pushed"
	TypeGoalReached       = "goal.reached"
	TypeMoveIssued        = "move.issued"
	TypeNoSafeMove        = "move.blocked"
	TypeUnitRespawned     = "unit.respawned"
	TypeInconsistentState = "unit.inconsistent"
	TypeRecordsEvicted    = "registry.swept"
)

// FieldsBuiltEvent is published once the distance fields exist for a game
type FieldsBuiltEvent struct {
	BaseEvent
	Rows     int           `json:"rows"`
	Cols     int           `json:"cols"`
	Cities   int           `json:"cities"`
	Duration time.Duration `json:"duration"`
}

func NewFieldsBuiltEvent(gameID string, round, rows, cols, cities int, d time.Duration) *FieldsBuiltEvent {
	return &FieldsBuiltEvent{
		BaseEvent: newBase(TypeFieldsBuilt, gameID, round),
		Rows:      rows,
		Cols:      cols,
		Cities:    cities,
		Duration:  d,
	}
}

// RoundStartedEvent is published before the agent looks at any unit
type RoundStartedEvent struct {
	BaseEvent
	WarriorTurn bool `json:"warrior_turn"`
}

func NewRoundStartedEvent(gameID string, round int, warriorTurn bool) *RoundStartedEvent {
	return &RoundStartedEvent{
		BaseEvent:   newBase(TypeRoundStarted, gameID, round),
		WarriorTurn: warriorTurn,
	}
}

// RoundEndedEvent summarises one decision pass
type RoundEndedEvent struct {
	BaseEvent
	Processed int           `json:"processed"`
	Moves     int           `json:"moves"`
	Duration  time.Duration `json:"duration"`
}

func NewRoundEndedEvent(gameID string, round, processed, moves int, d time.Duration) *RoundEndedEvent {
	return &RoundEndedEvent{
		BaseEvent: newBase(TypeRoundEnded, gameID, round),
		Processed: processed,
		Moves:     moves,
		Duration:  d,
	}
}

// GoalPushedEvent is published when a unit takes on a new goal
type GoalPushedEvent struct {
	BaseEvent
	UnitID int    `json:"unit_id"`
	Goal   string `json:"goal"`
	Reason string `json:"reason"`
	Depth  int    `json:"depth"`
}

func NewGoalPushedEvent(gameID string, round, unitID int, goal, reason string, depth int) *GoalPushedEvent {
	return &GoalPushedEvent{
		BaseEvent: newBase(TypeGoalPushed, gameID, round),
		UnitID:    unitID,
		Goal:      goal,
		Reason:    reason,
		Depth:     depth,
	}
}

// GoalReachedEvent is published when a completed goal is popped
type GoalReachedEvent struct {
	BaseEvent
	UnitID int           `json:"unit_id"`
	Goal   string        `json:"goal"`
	Pos    core.Position `json:"pos"`
}

func NewGoalReachedEvent(gameID string, round, unitID int, goal string, pos core.Position) *GoalReachedEvent {
	return &GoalReachedEvent{
		BaseEvent: newBase(TypeGoalReached, gameID, round),
		UnitID:    unitID,
		Goal:      goal,
		Pos:       pos,
	}
}

// MoveIssuedEvent is published for every command sent to the engine
type MoveIssuedEvent struct {
	BaseEvent
	UnitID int            `json:"unit_id"`
	From   core.Position  `json:"from"`
	Dir    core.Direction `json:"dir"`
	Goal   string         `json:"goal"`
}

func NewMoveIssuedEvent(gameID string, round, unitID int, from core.Position, dir core.Direction, goal string) *MoveIssuedEvent {
	return &MoveIssuedEvent{
		BaseEvent: newBase(TypeMoveIssued, gameID, round),
		UnitID:    unitID,
		From:      from,
		Dir:       dir,
		Goal:      goal,
	}
}

// NoSafeMoveEvent is published when a unit following a goal stays put
type NoSafeMoveEvent struct {
	BaseEvent
	UnitID int           `json:"unit_id"`
	Pos    core.Position `json:"pos"`
	Goal   string        `json:"goal"`
}

func NewNoSafeMoveEvent(gameID string, round, unitID int, pos core.Position, goal string) *NoSafeMoveEvent {
	return &NoSafeMoveEvent{
		BaseEvent: newBase(TypeNoSafeMove, gameID, round),
		UnitID:    unitID,
		Pos:       pos,
		Goal:      goal,
	}
}

// UnitRespawnedEvent is published when a record is reset because its id went
// unseen for more than a full cycle
type UnitRespawnedEvent struct {
	BaseEvent
	UnitID   int `json:"unit_id"`
	LastSeen int `json:"last_seen"`
}

func NewUnitRespawnedEvent(gameID string, round, unitID, lastSeen int) *UnitRespawnedEvent {
	return &UnitRespawnedEvent{
		BaseEvent: newBase(TypeUnitRespawned, gameID, round),
		UnitID:    unitID,
		LastSeen:  lastSeen,
	}
}

// InconsistentStateEvent flags a unit whose record cannot be acted on
type InconsistentStateEvent struct {
	BaseEvent
	UnitID int    `json:"unit_id"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

func NewInconsistentStateEvent(gameID string, round, unitID int, status, detail string) *InconsistentStateEvent {
	return &InconsistentStateEvent{
		BaseEvent: newBase(TypeInconsistentState, gameID, round),
		UnitID:    unitID,
		Status:    status,
		Detail:    detail,
	}
}

// RecordsEvictedEvent reports a registry sweep that removed records
type RecordsEvictedEvent struct {
	BaseEvent
	UnitIDs   []int `json:"unit_ids"`
	Remaining int   `json:"remaining"`
}

func NewRecordsEvictedEvent(gameID string, round int, ids []int, remaining int) *RecordsEvictedEvent {
	return &RecordsEvictedEvent{
		BaseEvent: newBase(TypeRecordsEvicted, gameID, round),
		UnitIDs:   ids,
		Remaining: remaining,
	}
}
