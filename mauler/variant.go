package mauler

import (
	"math/rand/v2"

	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/biome"
)

// Type is the variant of a mauler. It is picked when the mauler spawns and never changes afterwards.
type Type uint8

const (
	Desert Type = iota
	Badlands
	Swamp
)

// Types returns all mauler types.
func Types() []Type {
	return []Type{Desert, Badlands, Swamp}
}

// String returns the name of the type, as it is saved to disk.
func (t Type) String() string {
	switch t {
	case Badlands:
		return "badlands"
	case Swamp:
		return "swamp"
	}
	return "desert"
}

// TypeByName returns the type with the name passed. Desert is returned for unknown names.
func TypeByName(name string) Type {
	for _, t := range Types() {
		if t.String() == name {
			return t
		}
	}
	return Desert
}

// TypeByBiome returns the type of mauler that lives in the biome passed. Maulers spawning outside of the
// badlands and swamps are desert maulers.
func TypeByBiome(b world.Biome) Type {
	switch b.(type) {
	case biome.Badlands:
		return Badlands
	case biome.Swamp:
		return Swamp
	}
	return Desert
}

// SpawnReason is the reason a mauler was spawned.
type SpawnReason uint8

const (
	SpawnNatural SpawnReason = iota
	SpawnChunkGeneration
	SpawnCommand
	SpawnEgg
	SpawnSpawner
	SpawnDispenser
)

// chooseType picks the type of a mauler spawned for the reason passed in biome b. Maulers placed by players or
// spawners get a random type, others get the type of their biome.
func chooseType(reason SpawnReason, b world.Biome) Type {
	switch reason {
	case SpawnCommand, SpawnEgg, SpawnSpawner, SpawnDispenser:
		types := Types()
		return types[rand.IntN(len(types))]
	}
	return TypeByBiome(b)
}

func (r SpawnReason) String() string {
	switch r {
	case SpawnChunkGeneration:
		return "chunk_generation"
	case SpawnCommand:
		return "command"
	case SpawnEgg:
		return "spawn_egg"
	case SpawnSpawner:
		return "spawner"
	case SpawnDispenser:
		return "dispenser"
	}
	return "natural"
}
