package core

// GridView is the read access the agent needs to the static grid and its occupants.
type GridView interface {
	Rows() int
	Cols() int
	InBounds(p Position) bool
	Cell(p Position) Cell
}

// UnitView looks up unit snapshots and lists owned units.
type UnitView interface {
	Unit(id int) (Unit, bool)
	Warriors(player int) []int
	Cars(player int) []int
}

// RoundInfo describes the current round and the match.
type RoundInfo interface {
	Round() int
	Me() int
	NumPlayers() int
	NumCities() int
}

// RandomSource is the engine's random generator. The agent never seeds its own.
type RandomSource interface {
	// Random returns a uniform integer in [lo, hi].
	Random(lo, hi int) int
	// RandomPermutation returns a uniform permutation of 0..n-1.
	RandomPermutation(n int) []int
}

// CommandSink accepts one move per unit and round.
type CommandSink interface {
	Command(unitID int, d Direction) error
}

// World is everything the agent consumes from the game engine.
type World interface {
	GridView
	UnitView
	RoundInfo
	RandomSource
	CommandSink
}
