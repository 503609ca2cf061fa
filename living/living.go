package living

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/df-mc/dragonfly/server/event"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/sound"
	"github.com/go-gl/mathgl/mgl64"
)

var _ = world.Entity(&Living{})
var _ = world.TickerEntity(&Living{})
var _ = entity.Living(&Living{})

// Living is a non-player entity with health, physics and a Handler. It is opened for every transaction the
// entity is used in, its state lives in the world.EntityData it was opened with.
type Living struct {
	handle *world.EntityHandle
	tx     *world.Tx
	data   *world.EntityData

	*livingData
}

// Extra returns the value passed as Config.Extra when the entity was created.
func (l *Living) Extra() any {
	return l.extra
}

// Handler returns the Handler of the entity.
func (l *Living) Handler() Handler {
	return l.handler
}

// Health ...
func (l *Living) Health() float64 {
	return l.health.Health()
}

// MaxHealth ...
func (l *Living) MaxHealth() float64 {
	return l.health.MaxHealth()
}

// SetMaxHealth ...
func (l *Living) SetMaxHealth(v float64) {
	l.health.SetMaxHealth(v)
}

// AddHealth adds health to the entity, or removes it if negative. The result is clamped between 0 and the
// maximum health.
func (l *Living) AddHealth(health float64) {
	l.health.AddHealth(health)
}

func (l *Living) Heal(health float64, _ world.HealingSource) {
	if l.Dead() || health <= 0 {
		return
	}
	l.AddHealth(health)
}

func (l *Living) Hurt(dmg float64, src world.DamageSource) (float64, bool) {
	if l.Dead() || dmg <= 0 {
		return 0, false
	}
	totalDamage := dmg
	damageLeft := totalDamage

	immune := time.Now().Before(l.immuneUntil)
	if immune {
		if damageLeft = damageLeft - l.lastDamage; damageLeft <= 0 {
			return 0, false
		}
	}

	immunity := l.immuneDuration
	ctx := event.C(l)
	if l.handler.HandleHurt(ctx, totalDamage, immune, &immunity, src); ctx.Cancelled() {
		return 0, false
	}
	l.setAttackImmunity(immunity, totalDamage)
	l.AddHealth(-damageLeft)

	pos := l.Position()
	for _, viewer := range l.Viewers(l.tx) {
		viewer.ViewEntityAction(l, entity.HurtAction{})
	}
	if src.Fire() {
		l.tx.PlaySound(pos, sound.Burning{})
	} else if _, ok := src.(entity.DrowningDamageSource); ok {
		l.tx.PlaySound(pos, sound.Drowning{})
	}

	if l.Dead() {
		l.Kill(src)
	}
	return totalDamage, true
}

func (l *Living) Kill(src world.DamageSource) {
	if l.dying {
		return
	}
	l.dying = true
	for _, viewer := range l.Viewers(l.tx) {
		viewer.ViewEntityAction(l, entity.DeathAction{})
	}

	l.AddHealth(-l.MaxHealth())
	l.handler.HandleDeath(l, src, l.tx)

	// Wait a little before removing the entity. The client displays a death
	// animation while the entity is dying.
	time.AfterFunc(time.Millisecond*1100, func() {
		l.H().ExecWorld(finishDying)
	})
}

// finishDying completes the death of an entity, removing it from the world.
func finishDying(_ *world.Tx, e world.Entity) {
	if l, ok := e.(interface{ Close() error }); ok {
		_ = l.Close()
	}
}

// setAttackImmunity sets the duration the entity is immune to entity attacks.
func (l *Living) setAttackImmunity(d time.Duration, dmg float64) {
	l.immuneUntil = time.Now().Add(d)
	l.lastDamage = dmg
}

// KnockBack knocks the entity back with a given force and height. A source is passed which indicates the
// source of the velocity, typically the position of an attacking entity. The source is used to calculate the
// direction which the entity should be knocked back in.
func (l *Living) KnockBack(src mgl64.Vec3, force, height float64) {
	if l.Dead() {
		return
	}
	l.knockBack(src, force, height)
}

// knockBack is an unexported function that is used to knock the entity back. This function does not check if
// the entity can take damage or not.
func (l *Living) knockBack(src mgl64.Vec3, force, height float64) {
	velocity := l.Position().Sub(src)
	velocity[1] = 0

	if velocity.Len() != 0 {
		velocity = velocity.Normalize().Mul(force)
	}
	velocity[1] = height

	l.SetVelocity(velocity)
}

// Tx returns the transaction the entity was opened in.
func (l *Living) Tx() *world.Tx {
	return l.tx
}

// Age returns the age of the entity.
func (l *Living) Age() time.Duration {
	return l.age
}

// Speed returns the speed.
func (l *Living) Speed() float64 {
	return l.speed
}

// SetSpeed sets the speed.
func (l *Living) SetSpeed(f float64) {
	l.speed = f
}

// Velocity returns the velocity.
func (l *Living) Velocity() mgl64.Vec3 {
	return l.data.Vel
}

// SetVelocity sets the velocity.
func (l *Living) SetVelocity(velocity mgl64.Vec3) {
	l.data.Vel = velocity
	for _, v := range l.Viewers(l.tx) {
		v.ViewEntityVelocity(l, velocity)
	}
}

// AddEffect adds an effect to the entity.
func (l *Living) AddEffect(e effect.Effect) {
	l.effects[e.Type()] = e
}

// RemoveEffect removes the effect of an entity.
func (l *Living) RemoveEffect(e effect.Type) {
	delete(l.effects, e)
}

// Effects returns the effects of an entity.
func (l *Living) Effects() []effect.Effect {
	return slices.Collect(maps.Values(l.effects))
}

// Close closes the entity.
func (l *Living) Close() error {
	l.tx.RemoveEntity(l)
	return nil
}

// H returns the EntityHandle.
func (l *Living) H() *world.EntityHandle {
	return l.handle
}

// Position returns the position.
func (l *Living) Position() mgl64.Vec3 {
	return l.data.Pos
}

// Rotation returns the rotation.
func (l *Living) Rotation() cube.Rotation {
	return l.data.Rot
}

// SetRotation sets the rotation.
func (l *Living) SetRotation(yaw, pitch float64, tx *world.Tx) {
	current := l.Rotation()
	l.Move(mgl64.Vec3{}, yaw-current.Yaw(), pitch-current.Pitch(), tx)
}

// Dead returns if the entity is dead or not.
func (l *Living) Dead() bool {
	return l.Health() <= mgl64.Epsilon
}

// OnGround returns if the entity is on the ground.
func (l *Living) OnGround() bool {
	return l.onGround
}

// CollidedHorizontally returns if the entity ran into a block during its last movement.
func (l *Living) CollidedHorizontally() bool {
	return l.collidedHorizontally
}

// Immobile returns if the entity is Immobile.
func (l *Living) Immobile() bool {
	return l.immobile
}

// SetImmobile sets if the entity is immobile or not.
func (l *Living) SetImmobile(immobile bool, tx *world.Tx) {
	l.immobile = immobile
	l.updateState(tx)
}

// Invisible ...
func (l *Living) Invisible() bool {
	return l.invisible
}

// SetInvisible ...
func (l *Living) SetInvisible(invisible bool, tx *world.Tx) {
	l.invisible = invisible
	l.updateState(tx)
}

// Scale ...
func (l *Living) Scale() float64 {
	return l.scale
}

// SetScale ...
func (l *Living) SetScale(scale float64, tx *world.Tx) {
	l.scale = scale
	l.updateState(tx)
}

// EyeHeight ...
func (l *Living) EyeHeight() float64 {
	return l.eyeHeight * l.scale
}

// NameTag ...
func (l *Living) NameTag() string {
	return l.data.Name
}

// SetNameTag ...
func (l *Living) SetNameTag(s string, tx *world.Tx) {
	l.data.Name = s
	l.updateState(tx)
}

// InLiquid returns if the entity's feet are in a liquid.
func (l *Living) InLiquid(tx *world.Tx) bool {
	_, ok := tx.Liquid(cube.PosFromVec3(l.Position()))
	return ok
}

// Move moves the entity from one position to another in the world, by adding the delta passed to the current
// position of the entity.
// Move also rotates the entity, adding deltaYaw and deltaPitch to the respective values.
func (l *Living) Move(deltaPos mgl64.Vec3, deltaYaw, deltaPitch float64, tx *world.Tx) {
	if l.Dead() || (deltaPos.ApproxEqual(mgl64.Vec3{}) && mgl64.FloatEqual(deltaYaw, 0) && mgl64.FloatEqual(deltaPitch, 0)) {
		return
	}
	if l.immobile {
		if mgl64.FloatEqual(deltaYaw, 0) && mgl64.FloatEqual(deltaPitch, 0) {
			// If only the position was changed, don't continue with the movement when Immobile.
			return
		}
		// Still update rotation if it was changed.
		deltaPos = mgl64.Vec3{}
	}
	var (
		pos        = l.Position()
		yaw, pitch = l.Rotation().Elem()
		resRot     = cube.Rotation{yaw + deltaYaw, pitch + deltaPitch}
	)

	if deltaPos.Len() <= 3 {
		deltaPos = l.calculateCollisionAdjustedMovement(deltaPos, tx)
	}
	res := pos.Add(deltaPos)

	for _, v := range l.Viewers(tx) {
		v.ViewEntityMovement(l, res, resRot, l.OnGround())
	}

	l.data.Pos = res
	l.data.Rot = resRot

	l.onGround = l.checkOnGround(tx)
	l.updateFallState(deltaPos[1], tx)
}

// MoveToTarget walks the entity towards the target position at the speed multiplied by the multiplier passed.
// The entity steps up single blocks in its way, jumping with the velocity passed.
func (l *Living) MoveToTarget(target mgl64.Vec3, multiplier, jumpVelocity float64, tx *world.Tx) {
	if l.Dead() {
		return
	}

	delta := target.Sub(l.Position())
	delta[1] = 0
	if delta.Len() == 0 {
		return
	}
	dir := delta.Normalize()
	baseMove := dir.Mul(min(l.Speed()*multiplier, delta.Len()))

	checkOffset := dir.Mul(l.entityType.BBox(l).Width())
	checkPos := cube.PosFromVec3(l.Position().Add(checkOffset))
	low := tx.Block(checkPos)
	high := tx.Block(checkPos.Add(cube.Pos{0, 1, 0}))

	_, solidLow := low.Model().(model.Solid)
	_, solidHigh := high.Model().(model.Solid)

	move := baseMove
	if solidLow {
		maxY := 0.0
		for _, box := range low.Model().BBox(cube.Pos{}, tx) {
			if h := box.Max()[1]; h > maxY {
				maxY = h
			}
		}

		if !solidHigh {
			move[1] = min(maxY, jumpVelocity)
			if l.OnGround() {
				move[0] *= 0.50
				move[2] *= 0.50
			}
		} else {
			move[0], move[2] = 0, 0
		}
	}

	if !l.OnGround() && move[1] == 0 {
		move[0] *= 0.25
		move[2] *= 0.25
	}

	yaw, _ := LookAtExtended(l.Position(), target)
	l.Move(move, yaw-l.Rotation().Yaw(), 0, tx)
}

// LookAt ...
func (l *Living) LookAt(v mgl64.Vec3, tx *world.Tx) {
	yaw, pitch := LookAtExtended(l.Position().Add(mgl64.Vec3{0, l.EyeHeight(), 0}), v)
	dy := yaw - l.Rotation().Yaw()
	dp := pitch - l.Rotation().Pitch()

	l.Move(mgl64.Vec3{}, dy, dp, tx)
}

// LookAtExtended returns the yaw and pitch needed to look from pos at v.
func LookAtExtended(pos mgl64.Vec3, v mgl64.Vec3) (yaw float64, pitch float64) {
	vt := v.Y() - pos.Y()
	hz := math.Sqrt(math.Pow(v.X()-pos.X(), 2) + math.Pow(v.Z()-pos.Z(), 2))
	pitch = (-math.Atan2(vt, hz) / math.Pi) * 180

	dz := v.Z() - pos.Z()
	dx := v.X() - pos.X()
	yaw = (math.Atan2(dz, dx)/math.Pi)*180 - 90
	if yaw < 0 {
		yaw += 360.0
	}

	return yaw, pitch
}

// ResetFallDistance resets the entity's fall distance.
func (l *Living) ResetFallDistance() {
	l.fallDistance = 0
}

// FallDistance returns the entity's fall distance.
func (l *Living) FallDistance() float64 {
	return l.fallDistance
}

// OnFireDuration ...
func (l *Living) OnFireDuration() time.Duration {
	return time.Duration(l.fireTicks) * time.Second / 20
}

// SetOnFire ...
func (l *Living) SetOnFire(duration time.Duration) {
	l.fireTicks = int64(duration.Seconds() * 20)
	l.updateState(l.tx)
}

// Extinguish ...
func (l *Living) Extinguish() {
	l.SetOnFire(0)
}

// ImmuneUntil ...
func (l *Living) ImmuneUntil() time.Time {
	return l.immuneUntil
}

// SetImmuneDuration ...
func (l *Living) SetImmuneDuration(duration time.Duration) {
	l.immuneDuration = duration
}

// ImmuneDuration ...
func (l *Living) ImmuneDuration() time.Duration {
	return l.immuneDuration
}

// AttackImmune ...
func (l *Living) AttackImmune() bool {
	return l.ImmuneUntil().After(time.Now())
}

// LastDamage ...
func (l *Living) LastDamage() float64 {
	return l.lastDamage
}

// Tick ticks the entity: it runs the handler, applies environmental damage and moves the entity using its
// movement computer.
func (l *Living) Tick(tx *world.Tx, current int64) {
	l.tx = tx
	l.age += 50 * time.Millisecond
	ctx := event.C(l)
	l.handler.HandleTick(ctx, tx)

	if ctx.Cancelled() || l.Dead() {
		return
	}

	if l.Position()[1] < float64(tx.Range()[0]) && current%10 == 0 {
		l.Hurt(4, entity.VoidDamageSource{})
	}
	if current%10 == 0 && l.insideOfSolid(tx) {
		l.Hurt(1, entity.SuffocationDamageSource{})
	}

	if l.fireTicks > 0 {
		l.fireTicks--
		if l.fireTicks <= 0 || tx.RainingAt(cube.PosFromVec3(l.Position())) {
			l.Extinguish()
		} else if l.fireTicks%20 == 0 {
			l.Hurt(1, block.FireDamageSource{})
		}
	}

	l.onGround = l.checkOnGround(tx)

	m := l.mc.TickMovement(l, l.Position(), l.Velocity(), l.Rotation(), tx)
	m.Send()

	l.data.Vel = m.Velocity()
	l.Move(m.Position().Sub(l.Position()), 0, 0, tx)
}

// updateFallState is called to update the entities falling state.
func (l *Living) updateFallState(distanceThisTick float64, tx *world.Tx) {
	if l.OnGround() {
		if l.fallDistance > 0 {
			l.fall(l.fallDistance, tx)
			l.ResetFallDistance()
		}
	} else if distanceThisTick < 0 {
		l.fallDistance += -distanceThisTick
	} else if l.fallDistance > 0 {
		l.ResetFallDistance()
	}
}

// fall is called when a falling entity hits the ground.
func (l *Living) fall(distance float64, tx *world.Tx) {
	pos := cube.PosFromVec3(l.Position())
	b := tx.Block(pos)

	if len(b.Model().BBox(pos, tx)) == 0 {
		pos = pos.Sub(cube.Pos{0, 1})
		b = tx.Block(pos)
	}
	if h, ok := b.(block.EntityLander); ok {
		h.EntityLand(pos, tx, l, &distance)
	}
	dmg := distance - 3
	if dmg < 0.5 {
		return
	}
	l.Hurt(math.Ceil(dmg), entity.FallDamageSource{})
}

// calculateCollisionAdjustedMovement calculates movement with collision adjustments and returns the adjusted
// delta.
func (l *Living) calculateCollisionAdjustedMovement(vel mgl64.Vec3, tx *world.Tx) mgl64.Vec3 {
	entityBBox := l.entityType.BBox(l).Translate(l.Position())
	deltaX, deltaY, deltaZ := vel[0], vel[1], vel[2]

	l.checkEntityInsiders(entityBBox, tx)

	grown := entityBBox.Extend(vel).Grow(0.001)
	low, high := grown.Min(), grown.Max()
	minX, minY, minZ := int(math.Floor(low[0])), int(math.Floor(low[1])), int(math.Floor(low[2]))
	maxX, maxY, maxZ := int(math.Ceil(high[0])), int(math.Ceil(high[1])), int(math.Ceil(high[2]))

	blocks := make([]cube.BBox, 0, (maxX-minX+1)*(maxY-minY+1)*(maxZ-minZ+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				pos := cube.Pos{x, y, z}
				for _, box := range tx.Block(pos).Model().BBox(pos, tx) {
					blocks = append(blocks, box.Translate(pos.Vec3()))
				}
			}
		}
	}

	// Y first, then X, then Z.
	const epsilon = 0.001

	if !mgl64.FloatEqualThreshold(deltaY, 0, epsilon) {
		for _, blockBBox := range blocks {
			deltaY = entityBBox.YOffset(blockBBox, deltaY)
		}
		entityBBox = entityBBox.Translate(mgl64.Vec3{0, deltaY, 0})
	}
	if !mgl64.FloatEqualThreshold(deltaX, 0, epsilon) {
		for _, blockBBox := range blocks {
			deltaX = entityBBox.XOffset(blockBBox, deltaX)
		}
		entityBBox = entityBBox.Translate(mgl64.Vec3{deltaX, 0, 0})
	}
	if !mgl64.FloatEqualThreshold(deltaZ, 0, epsilon) {
		for _, blockBBox := range blocks {
			deltaZ = entityBBox.ZOffset(blockBBox, deltaZ)
		}
	}

	l.collidedHorizontally = !mgl64.FloatEqualThreshold(deltaX, vel[0], epsilon) ||
		!mgl64.FloatEqualThreshold(deltaZ, vel[2], epsilon)
	l.collidedVertically = !mgl64.FloatEqualThreshold(deltaY, vel[1], epsilon)

	return mgl64.Vec3{deltaX, deltaY, deltaZ}
}

// checkEntityInsiders checks if the entity is colliding with any EntityInsider blocks.
func (l *Living) checkEntityInsiders(entityBBox cube.BBox, tx *world.Tx) {
	box := entityBBox.Grow(-0.0001)
	low, high := cube.PosFromVec3(box.Min()), cube.PosFromVec3(box.Max())

	for y := low[1]; y <= high[1]; y++ {
		for x := low[0]; x <= high[0]; x++ {
			for z := low[2]; z <= high[2]; z++ {
				blockPos := cube.Pos{x, y, z}
				b := tx.Block(blockPos)
				if collide, ok := b.(block.EntityInsider); ok {
					collide.EntityInside(blockPos, tx, l)
					if _, liquid := b.(world.Liquid); liquid {
						continue
					}
				}

				if lq, ok := tx.Liquid(blockPos); ok {
					if collide, ok := lq.(block.EntityInsider); ok {
						collide.EntityInside(blockPos, tx, l)
					}
				}
			}
		}
	}
}

// checkOnGround checks if the entity is currently considered to be on the ground.
func (l *Living) checkOnGround(tx *world.Tx) bool {
	box := l.entityType.BBox(l).Translate(l.Position())

	groundCheck := cube.Box(
		box.Min()[0]-0.001, box.Min()[1]-0.001, box.Min()[2]-0.001,
		box.Max()[0]+0.001, box.Min()[1]+0.001, box.Max()[2]+0.001,
	)

	low, high := cube.PosFromVec3(groundCheck.Min()), cube.PosFromVec3(groundCheck.Max())
	for x := low[0]; x <= high[0]; x++ {
		for z := low[2]; z <= high[2]; z++ {
			for y := low[1]; y <= high[1]; y++ {
				pos := cube.Pos{x, y, z}
				for _, bb := range tx.Block(pos).Model().BBox(pos, tx) {
					blockBox := bb.Translate(pos.Vec3())
					if !blockBox.IntersectsWith(groundCheck) {
						continue
					}
					if top := blockBox.Max()[1]; top >= box.Min()[1]-0.001 && top <= box.Min()[1]+0.001 {
						return true
					}
				}
			}
		}
	}
	return false
}

// Viewers returns the viewers.
func (l *Living) Viewers(tx *world.Tx) []world.Viewer {
	return tx.Viewers(l.data.Pos)
}

// insideOfSolid returns true if the entity's eyes are inside a solid block.
func (l *Living) insideOfSolid(tx *world.Tx) bool {
	pos := cube.PosFromVec3(entity.EyePosition(l))
	b, box := tx.Block(pos), l.handle.Type().BBox(l).Translate(l.Position())

	_, solid := b.Model().(model.Solid)
	if !solid {
		return false
	}
	d, diffuses := b.(block.LightDiffuser)
	if diffuses && d.LightDiffusionLevel() == 0 {
		// Transparent.
		return false
	}
	for _, blockBox := range b.Model().BBox(pos, tx) {
		if blockBox.Translate(pos.Vec3()).IntersectsWith(box) {
			return true
		}
	}
	return false
}

// updateState updates the state of the entity to all Viewers of the entity.
func (l *Living) updateState(tx *world.Tx) {
	for _, v := range l.Viewers(tx) {
		v.ViewEntityState(l)
	}
}
