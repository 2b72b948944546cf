package core

import "fmt"

// Position represents a cell on the grid. Row grows downwards, Col grows to the right.
type Position struct {
	Row, Col int
}

// NewPosition creates a new position with the given row and column
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// FromIndex creates a position from a grid array index using row-major ordering
func FromIndex(idx, cols int) Position {
	return Position{
		Row: idx / cols,
		Col: idx % cols,
	}
}

// IsValid checks if the position is within the given bounds
func (p Position) IsValid(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// ToIndex converts the position to a grid array index using row-major ordering
func (p Position) ToIndex(cols int) int {
	return p.Row*cols + p.Col
}

// DistanceTo calculates the Manhattan distance to another position
func (p Position) DistanceTo(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacentTo checks if this position is orthogonally adjacent to another
func (p Position) IsAdjacentTo(other Position) bool {
	return p.DistanceTo(other) == 1
}

// Neighbors returns the four orthogonal neighbors in Direction order
func (p Position) Neighbors() []Position {
	out := make([]Position, 0, len(AxisDirections))
	for _, d := range AxisDirections {
		out = append(out, p.Move(d))
	}
	return out
}

// ValidNeighbors returns only the neighbors that are within the given bounds
func (p Position) ValidNeighbors(rows, cols int) []Position {
	valid := make([]Position, 0, 4)
	for _, n := range p.Neighbors() {
		if n.IsValid(rows, cols) {
			valid = append(valid, n)
		}
	}
	return valid
}

// Add returns the component-wise sum of two positions
func (p Position) Add(other Position) Position {
	return Position{Row: p.Row + other.Row, Col: p.Col + other.Col}
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction represents one of the four axis moves. Units never move diagonally
// and "stay" is expressed by not issuing a command at all.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the size of the axis direction set
const NumDirections = 4

// AxisDirections lists every direction in index order
var AxisDirections = [NumDirections]Direction{North, East, South, West}

var directionOffsets = [NumDirections]Position{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

// Valid reports whether d is one of the four axis directions
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Move returns a new position moved one step in the given direction.
// Invalid directions leave the position unchanged.
func (p Position) Move(d Direction) Position {
	if !d.Valid() {
		return p
	}
	return p.Add(directionOffsets[d])
}

// DirectionTo returns the direction from this position to an adjacent one.
// Returns -1 if the positions are not adjacent.
func (p Position) DirectionTo(other Position) Direction {
	for _, d := range AxisDirections {
		if p.Move(d) == other {
			return d
		}
	}
	return -1
}
