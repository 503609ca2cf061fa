package mauler

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWanderColumnFloorsNegativePositions(t *testing.T) {
	x, z := wanderColumn(mgl64.Vec3{-0.5, 64, -2.3}, 0, 0)
	assert.Equal(t, -1, x)
	assert.Equal(t, -3, z)

	x, z = wanderColumn(mgl64.Vec3{3.9, 64, 0.1}, -10, 10)
	assert.Equal(t, -7, x)
	assert.Equal(t, 10, z)
}

func TestRevengeCallsNearbyMaulers(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		p := newTestPlayer(tx, mgl64.Vec3{2, 0, 0})
		hurt := mt.Spawn(tx, mgl64.Vec3{}, SpawnCommand)
		near := mt.Spawn(tx, mgl64.Vec3{0, 0, 4}, SpawnCommand)
		far := mt.Spawn(tx, mgl64.Vec3{40, 0, 0}, SpawnCommand)
		busy := mt.Spawn(tx, mgl64.Vec3{0, 0, -4}, SpawnCommand)
		chicken := newTestChicken(tx, mgl64.Vec3{0, 0, -6})
		busy.SetTarget(chicken)

		hurt.s.attacker = p.H()
		require.True(t, revengeGoal{}.CanStart(hurt, tx))
		revengeGoal{}.Start(hurt, tx)

		for _, m := range []*Mauler{hurt, near} {
			target, ok := m.Target(tx)
			require.True(t, ok)
			assert.Equal(t, p.H(), target.H())
		}
		_, ok := far.Target(tx)
		assert.False(t, ok)
		target, ok := busy.Target(tx)
		require.True(t, ok)
		assert.Equal(t, chicken.H(), target.H())

		revengeGoal{}.Stop(hurt, tx)
		_, ok = hurt.Target(tx)
		assert.False(t, ok)
		_, ok = hurt.Attacker(tx)
		assert.False(t, ok)
	})
}

func TestRevengeIgnoresAttackerOutOfRange(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		p := newTestPlayer(tx, mgl64.Vec3{30, 0, 0})
		m := mt.Spawn(tx, mgl64.Vec3{}, SpawnCommand)
		m.s.attacker = p.H()
		assert.False(t, revengeGoal{}.CanStart(m, tx))
	})
}

func TestActiveTargetGoalPicksNearestMatch(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		m := mt.Spawn(tx, mgl64.Vec3{}, SpawnCommand)
		farChicken := newTestChicken(tx, mgl64.Vec3{6, 0, 0})
		nearChicken := newTestChicken(tx, mgl64.Vec3{0, 0, 3})
		newTestPlayer(tx, mgl64.Vec3{1, 0, 0})
		mt.Spawn(tx, mgl64.Vec3{-1, 0, 0}, SpawnCommand)

		g := &activeTargetGoal{match: identified("minecraft:chicken")}
		require.True(t, g.CanStart(m, tx))
		g.Start(m, tx)
		target, ok := m.Target(tx)
		require.True(t, ok)
		assert.Equal(t, nearChicken.H(), target.H())

		nearChicken.Kill(nil)
		require.True(t, g.CanStart(m, tx))
		g.Start(m, tx)
		target, ok = m.Target(tx)
		require.True(t, ok)
		assert.Equal(t, farChicken.H(), target.H())
	})
}

func TestActiveTargetGoalNeedsLineOfSight(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		m := mt.Spawn(tx, mgl64.Vec3{0.5, 0, 0.5}, SpawnCommand)
		newTestChicken(tx, mgl64.Vec3{4.5, 0, 0.5})
		for y := -1; y <= 2; y++ {
			tx.SetBlock(cube.Pos{2, y, 0}, block.Stone{}, nil)
		}

		g := &activeTargetGoal{match: identified("minecraft:chicken")}
		assert.False(t, g.CanStart(m, tx))
		_, ok := m.Target(tx)
		assert.False(t, ok)
	})
}

func TestIdentifiedNeverMatchesMaulers(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		m := mt.Spawn(tx, mgl64.Vec3{}, SpawnCommand)
		assert.False(t, identified(mt.EncodeEntity())(m))
		assert.True(t, identified("minecraft:chicken")(newTestChicken(tx, mgl64.Vec3{1, 0, 0})))
	})
}
