package living

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
)

// NopLivingType may be embedded by entity types whose entities are plain Living entities. It opens the entity,
// but encoding an identifier and the bounding box is left to the embedding type.
type NopLivingType struct{}

func (NopLivingType) Open(tx *world.Tx, handle *world.EntityHandle, data *world.EntityData) world.Entity {
	return Open(tx, handle, data)
}

func (NopLivingType) EncodeEntity() string {
	panic("implement me")
}

func (NopLivingType) BBox(world.Entity) cube.BBox {
	return cube.BBox{}
}

func (NopLivingType) DecodeNBT(map[string]any, *world.EntityData) {}

func (NopLivingType) EncodeNBT(*world.EntityData) map[string]any {
	return map[string]any{}
}

// Open opens a Living entity from the data passed. The data must have been created by applying a Config.
func Open(tx *world.Tx, handle *world.EntityHandle, data *world.EntityData) *Living {
	return &Living{
		livingData: data.Data.(*livingData),
		tx:         tx,
		handle:     handle,
		data:       data,
	}
}
