package mauler

import (
	"io"
	"log/slog"
	"testing"

	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNBTRoundTrip(t *testing.T) {
	et := NewEntityType(DefaultSettings(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	id := uuid.New()

	data := &world.EntityData{}
	et.DecodeNBT(map[string]any{
		tagType:             "swamp",
		tagAngerTime:        int32(640),
		tagAngryAt:          id.String(),
		tagStoredExperience: int32(700),
		tagHealth:           float32(2),
	}, data)

	require.NotNil(t, data.Data)

	m := et.EncodeNBT(data)
	assert.Equal(t, "swamp", m[tagType])
	assert.Equal(t, int32(640), m[tagAngerTime])
	assert.Equal(t, id.String(), m[tagAngryAt])
	assert.Equal(t, int32(700), m[tagStoredExperience])
	assert.Equal(t, float32(2), m[tagHealth])
}

func TestNBTDefaults(t *testing.T) {
	et := NewEntityType(DefaultSettings(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	data := &world.EntityData{}
	et.DecodeNBT(map[string]any{tagType: "unknown", tagStoredExperience: int32(99999)}, data)
	require.NotNil(t, data.Data)

	m := et.EncodeNBT(data)
	assert.Equal(t, "desert", m[tagType])
	assert.Equal(t, int32(0), m[tagAngerTime])
	assert.NotContains(t, m, tagAngryAt)
	assert.Equal(t, int32(MaxStoredExperience), m[tagStoredExperience])
	assert.Equal(t, float32(DefaultSettings().MaxHealth), m[tagHealth])
}
