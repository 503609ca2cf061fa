package mauler

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/df-mc/atomic"
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
)

// CanSpawn checks if a mauler may spawn at the position passed: it must stand on sand, red sand or grass.
func CanSpawn(tx *world.Tx, pos cube.Pos) bool {
	return spawnableOn(tx.Block(pos.Side(cube.FaceDown)))
}

func spawnableOn(b world.Block) bool {
	switch b.(type) {
	case block.Sand, block.Grass:
		return true
	}
	return false
}

// Spawner spawns maulers around the players of a world at a fixed interval.
type Spawner struct {
	t    EntityType
	conf SpawnSettings
	log  *slog.Logger

	running atomic.Bool
	spawned atomic.Int64
}

// NewSpawner returns a Spawner of maulers of the entity type passed.
func NewSpawner(t EntityType, log *slog.Logger) *Spawner {
	return &Spawner{t: t, conf: t.settings.Spawn, log: log}
}

// Population returns the number of living maulers loaded in the world of the transaction passed. Maulers loaded
// from disk or spawned by command count too.
func Population(tx *world.Tx) int {
	n := 0
	for e := range tx.Entities() {
		if m, ok := e.(*Mauler); ok && !m.Dead() {
			n++
		}
	}
	return n
}

// Spawned returns the number of maulers spawned by the Spawner since it was created.
func (s *Spawner) Spawned() int64 {
	return s.spawned.Load()
}

// Run spawns maulers in the world passed until the context is cancelled. Run returns immediately if spawning is
// disabled or the Spawner is already running.
func (s *Spawner) Run(ctx context.Context, w *world.World) {
	if !s.conf.Enabled || !s.running.CAS(false, true) {
		return
	}
	defer s.running.Store(false)

	t := time.NewTicker(s.conf.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			<-w.Exec(s.spawnCycle)
		}
	}
}

// spawnCycle attempts to spawn a mauler near every player in the world.
func (s *Spawner) spawnCycle(tx *world.Tx) {
	population := Population(tx)
	for p := range tx.Players() {
		if population >= s.conf.MaxPopulation {
			return
		}
		if rand.Float64() >= s.conf.Chance {
			continue
		}
		pos, ok := s.spawnPosition(tx, p.Position())
		if !ok {
			continue
		}
		m := s.t.Spawn(tx, pos.Vec3Middle(), SpawnNatural)
		population++
		s.spawned.Inc()

		s.log.Debug("mauler spawned naturally", "type", m.Type(), "population", population)
	}
}

// spawnPosition picks a position at a random distance from the centre passed, on top of the highest block.
func (s *Spawner) spawnPosition(tx *world.Tx, centre mgl64.Vec3) (cube.Pos, bool) {
	angle := rand.Float64() * 2 * math.Pi
	dist := s.conf.MinDistance + rand.Float64()*(s.conf.MaxDistance-s.conf.MinDistance)
	x := int(math.Floor(centre[0] + math.Cos(angle)*dist))
	z := int(math.Floor(centre[2] + math.Sin(angle)*dist))

	pos := cube.Pos{x, tx.HighestBlock(x, z) + 1, z}
	if pos.OutOfBounds(tx.Range()) {
		return pos, false
	}
	if _, air := tx.Block(pos).(block.Air); !air || !CanSpawn(tx, pos) {
		return pos, false
	}
	return pos, true
}
