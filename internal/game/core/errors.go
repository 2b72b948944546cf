package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrNotOwned         = errors.New("unit not owned by player")
	ErrBlocked          = errors.New("destination is not enterable")
	ErrOccupied         = errors.New("destination is occupied")
	ErrDuplicateCommand = errors.New("unit already commanded this round")
)

// WrapCommandError adds unit and direction context to a command error
func WrapCommandError(cmd *MoveCommand, err error) error {
	if err == nil {
		return nil
	}
	if cmd == nil {
		return fmt.Errorf("move command: %w", err)
	}
	return fmt.Errorf("unit %d: move %s: %w", cmd.UnitID, cmd.Dir, err)
}

// WrapRoundError adds round and phase context to an error
func WrapRoundError(round int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("round %d, %s: %w", round, phase, err)
}
