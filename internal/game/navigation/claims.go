package navigation

import "github.com/mitchelldurbincs/WastelandAgent/internal/game/core"

const unclaimed = -1

// Claims records, per cell, the last round an owned unit committed to moving
// there. Entries from earlier rounds are stale, so the table never needs clearing.
type Claims struct {
	rows, cols int
	rounds     []int
}

func NewClaims(rows, cols int) *Claims {
	c := &Claims{rows: rows, cols: cols, rounds: make([]int, rows*cols)}
	for i := range c.rounds {
		c.rounds[i] = unclaimed
	}
	return c
}

// Claim marks p as taken for round
func (c *Claims) Claim(p core.Position, round int) {
	if p.IsValid(c.rows, c.cols) {
		c.rounds[p.ToIndex(c.cols)] = round
	}
}

// Claimed reports whether p was claimed in round
func (c *Claims) Claimed(p core.Position, round int) bool {
	if !p.IsValid(c.rows, c.cols) {
		return false
	}
	return c.rounds[p.ToIndex(c.cols)] == round
}
