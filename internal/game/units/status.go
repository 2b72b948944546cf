// Package units holds the per-unit memory the agent keeps across rounds.
package units

import "strings"

// Status is a set of independent flags describing what a unit is doing.
// The zero value is Idle.
type Status uint8

const (
	FollowingField Status = 1 << iota
	Watering
	Feeding

	// car-only tactical bits
	Patrolling
	Hunting
	Attacking
)

const Idle Status = 0

var statusNames = []struct {
	flag Status
	name string
}{
	{FollowingField, "following"},
	{Watering, "watering"},
	{Feeding, "feeding"},
	{Patrolling, "patrolling"},
	{Hunting, "hunting"},
	{Attacking, "attacking"},
}

func (s Status) Has(flag Status) bool { return s&flag == flag }
func (s Status) IsIdle() bool         { return s == Idle }

// Set turns flag on
func (s *Status) Set(flag Status) { *s |= flag }

// Clear turns flag off
func (s *Status) Clear(flag Status) { *s &^= flag }

func (s Status) String() string {
	if s.IsIdle() {
		return "idle"
	}
	var parts []string
	for _, n := range statusNames {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
