package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bedrock-gophers/friendsandfoes/mauler"
	"github.com/bedrock-gophers/friendsandfoes/version"
	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/player/chat"
	"github.com/df-mc/dragonfly/server/world"
)

func main() {
	log := slog.Default()
	chat.Global.Subscribe(chat.StdoutSubscriber{})

	settings, err := mauler.LoadSettings("mauler.yaml")
	if err != nil {
		log.Error("load mauler settings", "err", err)
		os.Exit(1)
	}
	log.Info("friends and foes loaded", "version", version.Mod())

	conf, err := server.DefaultConfig().Config(log)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
	maulerType := mauler.NewEntityType(settings, log)
	conf.Entities = registerEntity(conf.Entities, maulerType)

	cmd.Register(cmd.New("mauler", "Spawns a mauler at your position.", nil, spawnCommand{t: maulerType}))

	srv := conf.New()
	srv.CloseOnProgramEnd()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if settings.Spawn.Enabled {
		go mauler.NewSpawner(maulerType, log).Run(ctx, srv.World())
	}

	srv.Listen()
	for p := range srv.Accept() {
		p.Handle(handler{})
	}
}

// registerEntity returns a registry holding the entity types of reg and t.
func registerEntity(reg world.EntityRegistry, t world.EntityType) world.EntityRegistry {
	if len(reg.Types()) == 0 {
		reg = entity.DefaultRegistry
	}
	return reg.Config().New(append(reg.Types(), t))
}

// spawnCommand spawns a mauler at the position of the player running it.
type spawnCommand struct {
	t mauler.EntityType
}

func (c spawnCommand) Run(src cmd.Source, o *cmd.Output, tx *world.Tx) {
	p, ok := src.(*player.Player)
	if !ok {
		o.Error("This command can only be run by a player.")
		return
	}
	m := c.t.Spawn(tx, p.Position(), mauler.SpawnCommand)
	o.Printf("Spawned a %v mauler.", m.Type())
}
