package main

import (
	"github.com/bedrock-gophers/friendsandfoes/mauler"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
)

// handler routes the interactions of a player with maulers. The player is taken from the context, as the one
// passed by Accept is only valid in the transaction it was accepted in.
type handler struct {
	player.NopHandler
}

func (handler) HandleItemUseOnEntity(ctx *player.Context, e world.Entity) {
	m, ok := e.(*mauler.Mauler)
	if !ok {
		return
	}
	p := ctx.Val()
	if m.Interact(p, p.Tx()) {
		ctx.Cancel()
	}
}
