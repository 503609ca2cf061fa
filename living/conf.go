package living

import (
	"time"

	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/df-mc/dragonfly/server/world"
)

// Config holds the settings a Living entity is created with. It implements world.EntityConfig, so it may be
// passed to world.EntitySpawnOpts.New directly.
type Config struct {
	EntityType world.EntityType
	Handler    Handler

	// MaxHealth is the maximum health of the entity. Health is set to MaxHealth unless Health is non-zero.
	MaxHealth float64
	Health    float64

	// MovementComputer computes gravity and drag. A default one is used if nil.
	MovementComputer *entity.MovementComputer
	// Speed is the distance in blocks the entity walks per tick.
	Speed     float64
	EyeHeight float64
	// Scale is the render scale of the entity. Zero means 1.
	Scale float64
	// ImmuneDuration is the duration the entity is immune to damage after being hurt. Zero means half a second.
	ImmuneDuration time.Duration

	// Extra is stored with the entity and can be retrieved through Living.Extra. Entities built on top of
	// Living use it to keep their own state.
	Extra any
}

// Apply ...
func (c Config) Apply(data *world.EntityData) {
	if c.EntityType == nil {
		panic("entity type can't be nil")
	}
	data.Data = c.newData()
}

func (c Config) newData() *livingData {
	d := &livingData{
		entityType:     c.EntityType,
		handler:        c.Handler,
		mc:             c.MovementComputer,
		effects:        map[effect.Type]effect.Effect{},
		speed:          c.Speed,
		eyeHeight:      c.EyeHeight,
		scale:          c.Scale,
		immuneDuration: c.ImmuneDuration,
		extra:          c.Extra,
	}
	if d.handler == nil {
		d.handler = NopHandler{}
	}
	if d.mc == nil {
		d.mc = &entity.MovementComputer{Gravity: 0.08, Drag: 0.02, DragBeforeGravity: true}
	}
	if d.speed == 0 {
		d.speed = 0.1
	}
	if d.scale == 0 {
		d.scale = 1
	}
	if d.immuneDuration == 0 {
		d.immuneDuration = time.Second / 2
	}
	maxHealth := c.MaxHealth
	if maxHealth <= 0 {
		maxHealth = 20
	}
	health := c.Health
	if health <= 0 || health > maxHealth {
		health = maxHealth
	}
	d.health = entity.NewHealthManager(health, maxHealth)
	return d
}
