package core

// CellType is the static terrain kind of a cell.
type CellType int

const (
	Road CellType = iota
	Desert
	Water
	City
	Station
)

func (t CellType) String() string {
	switch t {
	case Road:
		return "road"
	case Desert:
		return "desert"
	case Water:
		return "water"
	case City:
		return "city"
	case Station:
		return "station"
	default:
		return "unknown"
	}
}

// NoUnit marks an empty cell
const NoUnit = -1

// Cell holds the terrain of a grid position and the id of the unit standing on it.
// Occupant is NoUnit when the cell is empty.
type Cell struct {
	Type     CellType
	Occupant int
}

func (c Cell) IsEmpty() bool   { return c.Occupant == NoUnit }
func (c Cell) IsCity() bool    { return c.Type == City }
func (c Cell) IsWater() bool   { return c.Type == Water }
func (c Cell) IsStation() bool { return c.Type == Station }

// IsOpen reports whether the cell is Road or Desert, the only terrain every field may cross.
func (c Cell) IsOpen() bool { return c.Type == Road || c.Type == Desert }

// Grid is a dense row-major grid of cells.
type Grid struct {
	R, C  int
	Cells []Cell // length = R*C (row-major)
}

// NewGrid returns a rows x cols grid of empty Desert cells.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{R: rows, C: cols, Cells: make([]Cell, rows*cols)}
	for i := range g.Cells {
		g.Cells[i] = Cell{Type: Desert, Occupant: NoUnit}
	}
	return g
}

func (g *Grid) Rows() int { return g.R }
func (g *Grid) Cols() int { return g.C }

func (g *Grid) Idx(p Position) int { return p.ToIndex(g.C) }

// InBounds checks if p is within grid boundaries
func (g *Grid) InBounds(p Position) bool {
	return p.IsValid(g.R, g.C)
}

// Cell returns a copy of the cell at p. Callers must check bounds first.
func (g *Grid) Cell(p Position) Cell {
	return g.Cells[g.Idx(p)]
}

// At safely returns a cell pointer if p is valid, nil otherwise
func (g *Grid) At(p Position) *Cell {
	if !g.InBounds(p) {
		return nil
	}
	return &g.Cells[g.Idx(p)]
}

// SetType changes the terrain of p. Out of bounds positions are ignored.
func (g *Grid) SetType(p Position, t CellType) {
	if c := g.At(p); c != nil {
		c.Type = t
	}
}

// Count returns how many cells have terrain t
func (g *Grid) Count(t CellType) int {
	n := 0
	for _, c := range g.Cells {
		if c.Type == t {
			n++
		}
	}
	return n
}

// UnitKind distinguishes the two unit families.
type UnitKind int

const (
	Warrior UnitKind = iota
	Car
)

func (k UnitKind) String() string {
	if k == Car {
		return "car"
	}
	return "warrior"
}

// Unit is a read-only snapshot of a unit as reported by the engine.
type Unit struct {
	ID     int
	Kind   UnitKind
	Player int
	Pos    Position
	Food   int
	Water  int
}

func (u Unit) IsCar() bool { return u.Kind == Car }
