package living

import (
	"slices"

	"github.com/df-mc/dragonfly/server/world"
)

// Control is a set of flags naming what a Goal takes control of while it runs. Two running goals never share a
// control.
type Control uint8

const (
	ControlMove Control = 1 << iota
	ControlLook
	ControlJump
	ControlTarget
)

// Goal is a single behaviour of an entity of type T, run by a GoalSelector.
type Goal[T any] interface {
	// Controls returns the controls the goal needs while running.
	Controls() Control
	// CanStart reports if the goal should start running.
	CanStart(e T, tx *world.Tx) bool
	// ShouldContinue reports if a running goal should keep running.
	ShouldContinue(e T, tx *world.Tx) bool
	Start(e T, tx *world.Tx)
	Stop(e T, tx *world.Tx)
	Tick(e T, tx *world.Tx)
}

type prioritisedGoal[T any] struct {
	priority int
	goal     Goal[T]
	running  bool
}

// GoalSelector runs the goals of an entity. Goals with a lower priority value are preferred: a goal may only
// start if every control it needs is free or held by goals with a higher priority value, which are stopped.
type GoalSelector[T any] struct {
	goals []*prioritisedGoal[T]
}

// Add adds a goal with the priority passed. Goals added with the same priority keep the order they were added
// in.
func (s *GoalSelector[T]) Add(priority int, g Goal[T]) {
	s.goals = append(s.goals, &prioritisedGoal[T]{priority: priority, goal: g})
	slices.SortStableFunc(s.goals, func(a, b *prioritisedGoal[T]) int {
		return a.priority - b.priority
	})
}

// Running returns the goals currently running, ordered by priority.
func (s *GoalSelector[T]) Running() []Goal[T] {
	var running []Goal[T]
	for _, g := range s.goals {
		if g.running {
			running = append(running, g.goal)
		}
	}
	return running
}

// Tick stops goals that should no longer run, starts goals that can, and ticks every running goal.
func (s *GoalSelector[T]) Tick(e T, tx *world.Tx) {
	for _, g := range s.goals {
		if g.running && !g.goal.ShouldContinue(e, tx) {
			g.running = false
			g.goal.Stop(e, tx)
		}
	}
	for _, g := range s.goals {
		if g.running || !s.available(g) || !g.goal.CanStart(e, tx) {
			continue
		}
		for _, other := range s.goals {
			if other.running && other.goal.Controls()&g.goal.Controls() != 0 {
				other.running = false
				other.goal.Stop(e, tx)
			}
		}
		g.running = true
		g.goal.Start(e, tx)
	}
	for _, g := range s.goals {
		if g.running {
			g.goal.Tick(e, tx)
		}
	}
}

// StopAll stops every running goal.
func (s *GoalSelector[T]) StopAll(e T, tx *world.Tx) {
	for _, g := range s.goals {
		if g.running {
			g.running = false
			g.goal.Stop(e, tx)
		}
	}
}

// available checks if the controls of g are free or only held by goals that g may preempt.
func (s *GoalSelector[T]) available(g *prioritisedGoal[T]) bool {
	for _, other := range s.goals {
		if other == g || !other.running || other.goal.Controls()&g.goal.Controls() == 0 {
			continue
		}
		if other.priority <= g.priority {
			return false
		}
	}
	return true
}
