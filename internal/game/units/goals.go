package units

import "github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"

// GoalStack is a LIFO of field references. The top entry is the active goal.
type GoalStack struct {
	goals []fields.Ref
}

func (g *GoalStack) Push(ref fields.Ref) { g.goals = append(g.goals, ref) }
func (g *GoalStack) Len() int            { return len(g.goals) }
func (g *GoalStack) Empty() bool         { return len(g.goals) == 0 }

// Top returns the active goal without removing it
func (g *GoalStack) Top() (fields.Ref, bool) {
	if g.Empty() {
		return fields.Ref{}, false
	}
	return g.goals[len(g.goals)-1], true
}

// Pop removes and returns the active goal
func (g *GoalStack) Pop() (fields.Ref, bool) {
	top, ok := g.Top()
	if ok {
		g.goals = g.goals[:len(g.goals)-1]
	}
	return top, ok
}

// Reset drops every goal
func (g *GoalStack) Reset() { g.goals = g.goals[:0] }

// Goals returns a copy of the stack, bottom first
func (g *GoalStack) Goals() []fields.Ref {
	out := make([]fields.Ref, len(g.goals))
	copy(out, g.goals)
	return out
}
