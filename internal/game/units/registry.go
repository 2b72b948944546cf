package units

import (
	"sort"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// neverSeen is the LastSeen of a record that has not been stamped yet
const neverSeen = -1

// Record is the agent's memory of one unit id
type Record struct {
	ID       int
	Kind     core.UnitKind
	Status   Status
	LastSeen int
	Goals    GoalStack
}

// defaultStatus is the status a fresh record starts with
func defaultStatus(kind core.UnitKind) Status {
	if kind == core.Car {
		return Hunting | Attacking
	}
	return Idle
}

func (r *Record) reset(kind core.UnitKind) {
	r.Kind = kind
	r.Status = defaultStatus(kind)
	r.Goals.Reset()
}

// Registry owns every unit record. It is not safe for concurrent use.
type Registry struct {
	records map[int]*Record
}

func NewRegistry() *Registry {
	return &Registry{records: make(map[int]*Record)}
}

// Observe returns the record for id as it should look when the unit is
// processed in round. A record is created on first sighting and reset when the
// unit went unseen for more than a full cycle of numPlayers rounds, since the id
// then most likely belongs to a respawned unit. The returned bool reports a reset
// of an existing record.
func (r *Registry) Observe(id int, kind core.UnitKind, round, numPlayers int) (*Record, bool) {
	rec, ok := r.records[id]
	if !ok {
		rec = &Record{ID: id, LastSeen: neverSeen}
		rec.reset(kind)
		r.records[id] = rec
	}

	respawned := false
	if ok && rec.LastSeen+numPlayers < round {
		rec.reset(kind)
		respawned = true
	}
	rec.LastSeen = round
	return rec, respawned
}

// Get returns the record for id without touching it
func (r *Registry) Get(id int) (*Record, bool) {
	rec, ok := r.records[id]
	return rec, ok
}

// Sweep evicts records not seen for more than maxAge rounds and returns the
// evicted ids in ascending order.
func (r *Registry) Sweep(round, maxAge int) []int {
	var evicted []int
	for id, rec := range r.records {
		if rec.LastSeen+maxAge < round {
			evicted = append(evicted, id)
			delete(r.records, id)
		}
	}
	sort.Ints(evicted)
	return evicted
}

func (r *Registry) Len() int { return len(r.records) }
