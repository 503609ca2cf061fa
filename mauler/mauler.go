package mauler

import (
	"log/slog"
	"time"

	"github.com/bedrock-gophers/friendsandfoes/living"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	width     = 0.6
	height    = 0.5
	eyeHeight = 0.4
)

// state is the mauler specific state of a mauler entity, stored as the extra value of its living data.
type state struct {
	typ   Type
	anger Anger
	xp    ExperienceStore

	target   *world.EntityHandle
	attacker *world.EntityHandle

	goals   living.GoalSelector[*Mauler]
	targets living.GoalSelector[*Mauler]
}

// Mauler is a small desert predator. It hunts rabbits, chickens and the young of other mobs, and stores the
// experience of enchanted items fed to it, growing as it does. Players can take the experience back out in
// bottles.
type Mauler struct {
	*living.Living
	s *state
	t EntityType
}

// EntityType is the world.EntityType of maulers.
type EntityType struct {
	settings Settings
	log      *slog.Logger
}

// NewEntityType returns the entity type of maulers with the settings passed.
func NewEntityType(settings Settings, log *slog.Logger) EntityType {
	return EntityType{settings: settings, log: log}
}

// Settings returns the settings maulers of this type are created with.
func (t EntityType) Settings() Settings {
	return t.settings
}

// Spawn adds a new mauler to the world at the position passed. Its type is picked based on the reason and the
// biome at the position.
func (t EntityType) Spawn(tx *world.Tx, pos mgl64.Vec3, reason SpawnReason) *Mauler {
	s := t.newState(chooseType(reason, tx.Biome(cube.PosFromVec3(pos))))
	opts := world.EntitySpawnOpts{Position: pos}
	m := tx.AddEntity(opts.New(t, t.config(s, 0))).(*Mauler)

	t.log.Debug("mauler spawned", "type", s.typ, "reason", reason, "pos", pos)
	return m
}

func (t EntityType) newState(typ Type) *state {
	s := &state{typ: typ}
	s.goals.Add(1, swimGoal{})
	s.goals.Add(4, &meleeAttackGoal{speed: 0.5})
	s.goals.Add(6, &wanderGoal{speed: 0.6})
	s.goals.Add(11, &lookAtPlayerGoal{distance: 10})

	s.targets.Add(1, revengeGoal{})
	s.targets.Add(2, &activeTargetGoal{match: identified("minecraft:rabbit")})
	s.targets.Add(2, &activeTargetGoal{match: identified("minecraft:chicken")})
	s.targets.Add(4, &activeTargetGoal{chance: 10, match: baby("minecraft:villager_v2")})
	s.targets.Add(4, &activeTargetGoal{chance: 10, match: baby("minecraft:zombie")})
	s.targets.Add(4, &activeTargetGoal{chance: 10, match: smallestSlime})
	return s
}

func (t EntityType) config(s *state, health float64) living.Config {
	return living.Config{
		EntityType: t,
		Handler:    handler{t: t},
		MaxHealth:  t.settings.MaxHealth,
		Health:     health,
		Speed:      t.settings.MovementSpeed,
		EyeHeight:  eyeHeight,
		Scale:      s.xp.Size(),
		Extra:      s,
	}
}

func (t EntityType) Open(tx *world.Tx, handle *world.EntityHandle, data *world.EntityData) world.Entity {
	l := living.Open(tx, handle, data)
	return &Mauler{Living: l, s: l.Extra().(*state), t: t}
}

func (t EntityType) EncodeEntity() string {
	return t.settings.Identifier
}

func (EntityType) BBox(e world.Entity) cube.BBox {
	size := 1.0
	if l, ok := e.(interface{ Extra() any }); ok {
		if s, ok := l.Extra().(*state); ok {
			size = s.xp.Size()
		}
	}
	w := width * size / 2
	return cube.Box(-w, 0, -w, w, height*size, w)
}

// wrap returns the Mauler of the living entity passed.
func (t EntityType) wrap(l *living.Living) *Mauler {
	return &Mauler{Living: l, s: l.Extra().(*state), t: t}
}

// Type returns the type of the mauler.
func (m *Mauler) Type() Type {
	return m.s.typ
}

// StoredExperience returns the experience stored by the mauler.
func (m *Mauler) StoredExperience() int {
	return m.s.xp.Points()
}

// SetStoredExperience sets the experience stored by the mauler and resizes it accordingly.
func (m *Mauler) SetStoredExperience(points int, tx *world.Tx) {
	m.s.xp.SetPoints(points)
	m.SetScale(m.s.xp.Size(), tx)
}

// Size returns the scale of the mauler, which depends on the experience it holds.
func (m *Mauler) Size() float64 {
	return m.s.xp.Size()
}

// AngerTime returns the ticks of anger left.
func (m *Mauler) AngerTime() int {
	return m.s.anger.Time
}

// SetAngerTime ...
func (m *Mauler) SetAngerTime(ticks int) {
	m.s.anger.Time = max(ticks, 0)
}

// ChooseRandomAngerTime makes the mauler angry for a random duration.
func (m *Mauler) ChooseRandomAngerTime() {
	m.s.anger.ChooseRandomTime()
}

// AngryAt returns the UUID of the entity the mauler is angry at, or uuid.Nil.
func (m *Mauler) AngryAt() uuid.UUID {
	return m.s.anger.At
}

// SetAngryAt ...
func (m *Mauler) SetAngryAt(id uuid.UUID) {
	m.s.anger.At = id
}

// Angry reports if the mauler has any anger time left.
func (m *Mauler) Angry() bool {
	return m.s.anger.Angry()
}

// StopAnger calms the mauler down, making it forget its target and attacker.
func (m *Mauler) StopAnger() {
	m.s.anger.Stop()
	m.s.target, m.s.attacker = nil, nil
}

// Target returns the entity the mauler is attacking, if it is alive and in the same world.
func (m *Mauler) Target(tx *world.Tx) (entity.Living, bool) {
	return alive(m.s.target, tx)
}

// SetTarget sets the entity the mauler attacks. Passing nil clears the target.
func (m *Mauler) SetTarget(e world.Entity) {
	if e == nil {
		m.s.target = nil
		return
	}
	m.s.target = e.H()
}

// Attacker returns the last entity that hurt the mauler, if it is alive and in the same world.
func (m *Mauler) Attacker(tx *world.Tx) (entity.Living, bool) {
	return alive(m.s.attacker, tx)
}

// tickAI runs the anger logic and both goal selectors of the mauler. Dead maulers do nothing.
func (m *Mauler) tickAI(tx *world.Tx) {
	if m.Dead() {
		return
	}
	m.tickAnger(tx)
	m.s.targets.Tick(m, tx)
	m.s.goals.Tick(m, tx)
}

func (m *Mauler) tickAnger(tx *world.Tx) {
	var target *AngerTarget
	if e, ok := m.Target(tx); ok {
		_, isPlayer := e.(*player.Player)
		target = &AngerTarget{ID: e.H().UUID(), Player: isPlayer}
	}
	stopped := m.s.anger.Tick(target, func(id uuid.UUID) bool {
		e, ok := entityByUUID(tx, id)
		if !ok {
			return false
		}
		_, isPlayer := e.(*player.Player)
		return !isPlayer
	})
	if stopped {
		m.s.target, m.s.attacker = nil, nil
	}
}

// alive opens the entity behind h in tx and returns it if it is a living entity that has not died.
func alive(h *world.EntityHandle, tx *world.Tx) (entity.Living, bool) {
	if h == nil {
		return nil, false
	}
	e, ok := h.Entity(tx)
	if !ok {
		return nil, false
	}
	l, ok := e.(entity.Living)
	if !ok || l.Dead() {
		return nil, false
	}
	return l, true
}

func entityByUUID(tx *world.Tx, id uuid.UUID) (world.Entity, bool) {
	for e := range tx.Entities() {
		if e.H().UUID() == id {
			return e, true
		}
	}
	return nil, false
}

// handler is the living.Handler of maulers.
type handler struct {
	living.NopHandler
	t EntityType
}

func (h handler) HandleTick(ctx *living.Context, tx *world.Tx) {
	h.t.wrap(ctx.Val()).tickAI(tx)
}

func (h handler) HandleHurt(ctx *living.Context, _ float64, _ bool, _ *time.Duration, src world.DamageSource) {
	var attacker world.Entity
	switch src := src.(type) {
	case entity.AttackDamageSource:
		attacker = src.Attacker
	case entity.ProjectileDamageSource:
		attacker = src.Owner
	}
	if attacker == nil {
		return
	}
	h.t.wrap(ctx.Val()).s.attacker = attacker.H()
}

func (h handler) HandleDeath(l *living.Living, _ world.DamageSource, tx *world.Tx) {
	m := h.t.wrap(l)
	if xp := m.StoredExperience(); xp > 0 {
		for _, orb := range entity.NewExperienceOrbs(m.Position(), xp) {
			tx.AddEntity(orb)
		}
	}
}
