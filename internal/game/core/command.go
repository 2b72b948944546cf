package core

// MoveCommand moves one unit a single step along an axis direction
type MoveCommand struct {
	UnitID int
	Player int
	Dir    Direction
}

// Validate checks the command against the grid and the unit's current snapshot.
// Occupancy is not checked here: the engine resolves it when commands are applied.
func (m *MoveCommand) Validate(g GridView, u Unit) error {
	if !m.Dir.Valid() {
		return ErrInvalidDirection
	}
	if u.Player != m.Player {
		return ErrNotOwned
	}

	to := u.Pos.Move(m.Dir)
	if !g.InBounds(to) {
		return ErrOutOfBounds
	}

	switch g.Cell(to).Type {
	case Water, Station:
		return ErrBlocked
	case City:
		// Cars stay on open terrain
		if u.IsCar() {
			return ErrBlocked
		}
	}
	return nil
}
