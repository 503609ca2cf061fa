package mauler

import (
	"math"
	"math/rand/v2"

	"github.com/bedrock-gophers/friendsandfoes/living"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/sound"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	attackCooldown = 20
	stepHeight     = 1.0
)

// swimGoal keeps the mauler afloat in liquids.
type swimGoal struct{}

func (swimGoal) Controls() living.Control { return living.ControlJump }
func (swimGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	return m.InLiquid(tx)
}
func (swimGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	return m.InLiquid(tx)
}
func (swimGoal) Start(*Mauler, *world.Tx) {}
func (swimGoal) Stop(*Mauler, *world.Tx)  {}
func (swimGoal) Tick(m *Mauler, _ *world.Tx) {
	if rand.Float64() < 0.8 {
		m.SetVelocity(m.Velocity().Add(mgl64.Vec3{0, 0.04}))
	}
}

// meleeAttackGoal chases the target of the mauler and bites it once in reach.
type meleeAttackGoal struct {
	speed    float64
	cooldown int
}

func (*meleeAttackGoal) Controls() living.Control { return living.ControlMove | living.ControlLook }
func (*meleeAttackGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	_, ok := m.Target(tx)
	return ok
}
func (*meleeAttackGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	return keepTarget(m, tx)
}
func (g *meleeAttackGoal) Start(*Mauler, *world.Tx) {
	g.cooldown = 0
}
func (*meleeAttackGoal) Stop(*Mauler, *world.Tx) {}
func (g *meleeAttackGoal) Tick(m *Mauler, tx *world.Tx) {
	target, ok := m.Target(tx)
	if !ok {
		return
	}
	g.cooldown = max(g.cooldown-1, 0)
	m.LookAt(entity.EyePosition(target), tx)

	reach := m.H().Type().BBox(m).Width()*2 + target.H().Type().BBox(target).Width()/2
	if m.Position().Sub(target.Position()).LenSqr() > reach*reach {
		m.MoveToTarget(target.Position(), g.speed, stepHeight, tx)
		return
	}
	if g.cooldown == 0 {
		g.cooldown = attackCooldown
		m.attack(target, tx)
	}
}

// attack bites the entity passed.
func (m *Mauler) attack(target entity.Living, tx *world.Tx) {
	tx.PlaySound(m.Position(), sound.Attack{Damage: true})
	if _, vulnerable := target.Hurt(m.t.settings.AttackDamage, entity.AttackDamageSource{Attacker: m}); vulnerable {
		target.KnockBack(m.Position(), 0.4, 0.4)
	}
}

// wanderGoal occasionally walks the mauler to a random spot nearby.
type wanderGoal struct {
	speed float64
	dest  mgl64.Vec3
	ticks int
}

func (*wanderGoal) Controls() living.Control { return living.ControlMove }
func (g *wanderGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	if _, ok := m.Target(tx); ok || rand.IntN(120) != 0 {
		return false
	}
	x, z := wanderColumn(m.Position(), rand.IntN(21)-10, rand.IntN(21)-10)
	g.dest = cube.Pos{x, tx.HighestBlock(x, z) + 1, z}.Vec3Middle()
	return true
}
func (g *wanderGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	if _, ok := m.Target(tx); ok || g.ticks >= 200 {
		return false
	}
	d := g.dest.Sub(m.Position())
	d[1] = 0
	return d.Len() > 0.5
}
func (g *wanderGoal) Start(*Mauler, *world.Tx) {
	g.ticks = 0
}
func (*wanderGoal) Stop(*Mauler, *world.Tx) {}
func (g *wanderGoal) Tick(m *Mauler, tx *world.Tx) {
	g.ticks++
	m.MoveToTarget(g.dest, g.speed, stepHeight, tx)
}

// wanderColumn returns the block column dx and dz blocks away from the column pos is in.
func wanderColumn(pos mgl64.Vec3, dx, dz int) (x, z int) {
	return int(math.Floor(pos[0])) + dx, int(math.Floor(pos[2])) + dz
}

// lookAtPlayerGoal makes the mauler look at a nearby player for a short while.
type lookAtPlayerGoal struct {
	distance float64
	target   *world.EntityHandle
	ticks    int
}

func (*lookAtPlayerGoal) Controls() living.Control { return living.ControlLook }
func (g *lookAtPlayerGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	if rand.Float64() >= 0.02 {
		return false
	}
	e, ok := nearest(m, tx, g.distance, func(e world.Entity) bool {
		_, ok := e.(*player.Player)
		return ok
	})
	if ok {
		g.target = e.H()
	}
	return ok
}
func (g *lookAtPlayerGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	p, ok := alive(g.target, tx)
	return ok && g.ticks > 0 && p.Position().Sub(m.Position()).Len() <= g.distance
}
func (g *lookAtPlayerGoal) Start(*Mauler, *world.Tx) {
	g.ticks = 40 + rand.IntN(40)
}
func (g *lookAtPlayerGoal) Stop(*Mauler, *world.Tx) {
	g.target = nil
}
func (g *lookAtPlayerGoal) Tick(m *Mauler, tx *world.Tx) {
	g.ticks--
	if p, ok := alive(g.target, tx); ok {
		m.LookAt(entity.EyePosition(p), tx)
	}
}

// revengeGoal targets the last entity that hurt the mauler, and calls nearby maulers without a target to
// join in.
type revengeGoal struct{}

func (revengeGoal) Controls() living.Control { return living.ControlTarget }
func (revengeGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	a, ok := m.Attacker(tx)
	if !ok || a.Position().Sub(m.Position()).Len() > m.t.settings.FollowRange {
		return false
	}
	t, ok := m.Target(tx)
	return !ok || t.H() != a.H()
}
func (revengeGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	return keepTarget(m, tx)
}
func (revengeGoal) Start(m *Mauler, tx *world.Tx) {
	a, ok := m.Attacker(tx)
	if !ok {
		return
	}
	m.SetTarget(a)

	r := m.t.settings.FollowRange
	pos := m.Position()
	for e := range tx.EntitiesWithin(cube.Box(pos[0]-r, pos[1]-10, pos[2]-r, pos[0]+r, pos[1]+10, pos[2]+r)) {
		other, ok := e.(*Mauler)
		if !ok || other.H() == m.H() || other.H() == a.H() {
			continue
		}
		if _, busy := other.Target(tx); !busy {
			other.SetTarget(a)
		}
	}
}
func (revengeGoal) Stop(m *Mauler, _ *world.Tx) {
	m.SetTarget(nil)
	m.s.attacker = nil
}
func (revengeGoal) Tick(*Mauler, *world.Tx) {}

// activeTargetGoal targets the nearest visible entity accepted by match. If chance is above zero, the goal
// only looks for a target once every chance ticks on average.
type activeTargetGoal struct {
	chance int
	match  func(e world.Entity) bool

	found *world.EntityHandle
}

func (*activeTargetGoal) Controls() living.Control { return living.ControlTarget }
func (g *activeTargetGoal) CanStart(m *Mauler, tx *world.Tx) bool {
	if g.chance > 0 && rand.IntN(g.chance) != 0 {
		return false
	}
	eye := entity.EyePosition(m)
	e, ok := nearest(m, tx, m.t.settings.FollowRange, func(e world.Entity) bool {
		if !g.match(e) {
			return false
		}
		l, ok := e.(entity.Living)
		return ok && !l.Dead() && canSee(tx, eye, entity.EyePosition(e))
	})
	if ok {
		g.found = e.H()
	}
	return ok
}
func (*activeTargetGoal) ShouldContinue(m *Mauler, tx *world.Tx) bool {
	return keepTarget(m, tx)
}
func (g *activeTargetGoal) Start(m *Mauler, tx *world.Tx) {
	if e, ok := alive(g.found, tx); ok {
		m.SetTarget(e)
	}
	g.found = nil
}
func (*activeTargetGoal) Stop(m *Mauler, _ *world.Tx) {
	m.SetTarget(nil)
}
func (*activeTargetGoal) Tick(*Mauler, *world.Tx) {}

// keepTarget reports if the mauler has a living target within its follow range.
func keepTarget(m *Mauler, tx *world.Tx) bool {
	t, ok := m.Target(tx)
	return ok && t.Position().Sub(m.Position()).Len() <= m.t.settings.FollowRange
}

// nearest returns the entity closest to the mauler, within the horizontal radius passed, that is accepted by
// match.
func nearest(m *Mauler, tx *world.Tx, radius float64, match func(e world.Entity) bool) (world.Entity, bool) {
	pos := m.Position()
	box := cube.Box(pos[0]-radius, pos[1]-4, pos[2]-radius, pos[0]+radius, pos[1]+4, pos[2]+radius)

	var found world.Entity
	best := radius * radius
	for e := range tx.EntitiesWithin(box) {
		if e.H() == m.H() || !match(e) {
			continue
		}
		if d := e.Position().Sub(pos).LenSqr(); d <= best {
			found, best = e, d
		}
	}
	return found, found != nil
}

// canSee checks if no solid block is in the way between two points.
func canSee(tx *world.Tx, from, to mgl64.Vec3) bool {
	const step = 0.25
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 {
		return true
	}
	dir := d.Mul(step / dist)
	for p, travelled := from, 0.0; travelled < dist; p, travelled = p.Add(dir), travelled+step {
		if _, solid := tx.Block(cube.PosFromVec3(p)).Model().(model.Solid); solid {
			return false
		}
	}
	return true
}

// identified returns a matcher for entities with the identifier passed. Maulers are never matched, even if
// they share the identifier.
func identified(id string) func(e world.Entity) bool {
	return func(e world.Entity) bool {
		if _, ok := e.(*Mauler); ok {
			return false
		}
		return e.H().Type().EncodeEntity() == id
	}
}

// baby returns a matcher for baby entities with the identifier passed.
func baby(id string) func(e world.Entity) bool {
	match := identified(id)
	return func(e world.Entity) bool {
		b, ok := e.(interface{ Baby() bool })
		return ok && match(e) && b.Baby()
	}
}

// smallestSlime matches slimes of the smallest size.
func smallestSlime(e world.Entity) bool {
	s, ok := e.(interface{ Size() int })
	return ok && identified("minecraft:slime")(e) && s.Size() == 1
}
