package living

import (
	"time"

	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/df-mc/dragonfly/server/world"
)

type livingData struct {
	entityType world.EntityType
	handler    Handler
	mc         *entity.MovementComputer
	health     *entity.HealthManager
	effects    map[effect.Type]effect.Effect

	collidedHorizontally bool
	collidedVertically   bool

	onGround  bool
	immobile  bool
	invisible bool

	fallDistance float64
	fireTicks    int64

	age            time.Duration
	immuneUntil    time.Time
	immuneDuration time.Duration
	lastDamage     float64
	speed          float64
	eyeHeight      float64
	scale          float64

	dying bool
	extra any
}
