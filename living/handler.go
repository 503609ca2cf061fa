package living

import (
	"time"

	"github.com/df-mc/dragonfly/server/event"
	"github.com/df-mc/dragonfly/server/world"
)

// Context is the event context passed to the handler of a Living entity.
type Context = event.Context[*Living]

type Handler interface {
	// HandleTick handles the entity's tick. Cancelling the context stops the entity from moving this tick.
	HandleTick(ctx *Context, tx *world.Tx)
	// HandleHurt handles the entity being hurt. The immunity passed may be changed to alter the time the entity
	// is immune to further damage.
	HandleHurt(ctx *Context, damage float64, immune bool, immunity *time.Duration, src world.DamageSource)
	// HandleDeath handles the entity dying, before it is removed from the world.
	HandleDeath(l *Living, src world.DamageSource, tx *world.Tx)
}

type NopHandler struct{}

var _ Handler = NopHandler{}

func (NopHandler) HandleTick(*Context, *world.Tx) {}
func (NopHandler) HandleHurt(*Context, float64, bool, *time.Duration, world.DamageSource) {
}
func (NopHandler) HandleDeath(*Living, world.DamageSource, *world.Tx) {}
