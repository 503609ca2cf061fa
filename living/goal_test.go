package living_test

import (
	"testing"

	"github.com/bedrock-gophers/friendsandfoes/living"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/stretchr/testify/assert"
)

type owner struct {
	log []string
}

type testGoal struct {
	name     string
	controls living.Control
	start    bool
	cont     bool
	ticks    int
}

func (g *testGoal) Controls() living.Control              { return g.controls }
func (g *testGoal) CanStart(*owner, *world.Tx) bool       { return g.start }
func (g *testGoal) ShouldContinue(*owner, *world.Tx) bool { return g.cont }
func (g *testGoal) Start(o *owner, _ *world.Tx)           { o.log = append(o.log, "start "+g.name) }
func (g *testGoal) Stop(o *owner, _ *world.Tx)            { o.log = append(o.log, "stop "+g.name) }
func (g *testGoal) Tick(*owner, *world.Tx)                { g.ticks++ }

func TestGoalSelectorPriority(t *testing.T) {
	o := &owner{}
	low := &testGoal{name: "wander", controls: living.ControlMove, start: true, cont: true}
	high := &testGoal{name: "attack", controls: living.ControlMove | living.ControlLook, start: true, cont: true}

	var s living.GoalSelector[*owner]
	s.Add(6, low)
	s.Add(4, high)
	s.Tick(o, nil)

	assert.Equal(t, []string{"start attack"}, o.log)
	assert.Equal(t, 1, high.ticks)
	assert.Equal(t, 0, low.ticks)
	assert.Len(t, s.Running(), 1)
}

func TestGoalSelectorPreemption(t *testing.T) {
	o := &owner{}
	wander := &testGoal{name: "wander", controls: living.ControlMove, start: true, cont: true}
	attack := &testGoal{name: "attack", controls: living.ControlMove, cont: true}

	var s living.GoalSelector[*owner]
	s.Add(4, attack)
	s.Add(6, wander)
	s.Tick(o, nil)
	assert.Equal(t, []string{"start wander"}, o.log)

	attack.start = true
	s.Tick(o, nil)
	assert.Equal(t, []string{"start wander", "stop wander", "start attack"}, o.log)
	assert.Equal(t, []living.Goal[*owner]{attack}, s.Running())
}

func TestGoalSelectorIndependentControls(t *testing.T) {
	o := &owner{}
	swim := &testGoal{name: "swim", controls: living.ControlJump, start: true, cont: true}
	look := &testGoal{name: "look", controls: living.ControlLook, start: true, cont: true}

	var s living.GoalSelector[*owner]
	s.Add(1, swim)
	s.Add(11, look)
	s.Tick(o, nil)
	s.Tick(o, nil)

	assert.Equal(t, 2, swim.ticks)
	assert.Equal(t, 2, look.ticks)
	assert.Len(t, s.Running(), 2)
}

func TestGoalSelectorStopsFinishedGoals(t *testing.T) {
	o := &owner{}
	g := &testGoal{name: "look", controls: living.ControlLook, start: true, cont: true}

	var s living.GoalSelector[*owner]
	s.Add(11, g)
	s.Tick(o, nil)

	g.cont, g.start = false, false
	s.Tick(o, nil)
	assert.Equal(t, []string{"start look", "stop look"}, o.log)
	assert.Empty(t, s.Running())

	g.start, g.cont = true, true
	s.Tick(o, nil)
	s.StopAll(o, nil)
	assert.Equal(t, []string{"start look", "stop look", "start look", "stop look"}, o.log)
}
