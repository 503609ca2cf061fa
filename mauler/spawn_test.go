package mauler

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSpawnableOn(t *testing.T) {
	assert.True(t, spawnableOn(block.Sand{}))
	assert.True(t, spawnableOn(block.Sand{Red: true}))
	assert.True(t, spawnableOn(block.Grass{}))

	assert.False(t, spawnableOn(block.Stone{}))
	assert.False(t, spawnableOn(block.Air{}))
	assert.False(t, spawnableOn(nil))
}

func TestPopulationFollowsLoadedMaulers(t *testing.T) {
	w, mt := newTestWorld(t)
	<-w.Exec(func(tx *world.Tx) {
		assert.Zero(t, Population(tx))

		a := mt.Spawn(tx, mgl64.Vec3{}, SpawnNatural)
		b := mt.Spawn(tx, mgl64.Vec3{3, 0, 0}, SpawnCommand)
		c := mt.Spawn(tx, mgl64.Vec3{6, 0, 0}, SpawnNatural)
		newTestChicken(tx, mgl64.Vec3{1, 0, 0})
		assert.Equal(t, 3, Population(tx))

		tx.RemoveEntity(a)
		assert.Equal(t, 2, Population(tx))

		b.Kill(entity.VoidDamageSource{})
		assert.Equal(t, 1, Population(tx))

		_ = c.Close()
		assert.Zero(t, Population(tx))
	})
}

func TestSpawnCycleRespectsMaxPopulation(t *testing.T) {
	w, mt := newTestWorld(t)
	mt.settings.Spawn.MaxPopulation = 1
	mt.settings.Spawn.Chance = 1
	s := NewSpawner(mt, mt.log)

	<-w.Exec(func(tx *world.Tx) {
		for x := -64; x < 64; x++ {
			for z := -64; z < 64; z++ {
				tx.SetBlock(cube.Pos{x, 0, z}, block.Grass{}, nil)
			}
		}
		newTestPlayer(tx, mgl64.Vec3{0.5, 1, 0.5})
		newTestPlayer(tx, mgl64.Vec3{0.5, 1, 0.5})

		s.spawnCycle(tx)
		assert.Equal(t, 1, Population(tx))
		assert.EqualValues(t, 1, s.Spawned())

		s.spawnCycle(tx)
		assert.Equal(t, 1, Population(tx))
		assert.EqualValues(t, 1, s.Spawned())
	})
}
