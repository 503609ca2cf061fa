package mauler

import (
	"github.com/bedrock-gophers/friendsandfoes/living"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
)

const (
	tagType             = "Type"
	tagAngerTime        = "AngerTime"
	tagAngryAt          = "AngryAt"
	tagStoredExperience = "StoredExperiencePoints"
	tagHealth           = "Health"
)

// DecodeNBT rebuilds the state of a mauler saved with EncodeNBT. Missing or malformed values are left at
// their defaults.
func (t EntityType) DecodeNBT(m map[string]any, data *world.EntityData) {
	name, _ := m[tagType].(string)
	s := t.newState(TypeByName(name))
	s.anger.Time = max(int(readInt32(m, tagAngerTime)), 0)
	if raw, ok := m[tagAngryAt].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			s.anger.At = id
		}
	}
	s.xp.SetPoints(int(readInt32(m, tagStoredExperience)))

	health, _ := m[tagHealth].(float32)
	t.config(s, float64(health)).Apply(data)
}

// EncodeNBT ...
func (EntityType) EncodeNBT(data *world.EntityData) map[string]any {
	l := living.Open(nil, nil, data)
	s := l.Extra().(*state)
	m := map[string]any{
		tagType:             s.typ.String(),
		tagAngerTime:        int32(s.anger.Time),
		tagStoredExperience: int32(s.xp.Points()),
		tagHealth:           float32(l.Health()),
	}
	if s.anger.At != uuid.Nil {
		m[tagAngryAt] = s.anger.At.String()
	}
	return m
}

// readInt32 reads an integer tag, accepting any integer width it may have been decoded with.
func readInt32(m map[string]any, key string) int32 {
	switch v := m[key].(type) {
	case int32:
		return v
	case int16:
		return int32(v)
	case uint8:
		return int32(v)
	case int64:
		return int32(v)
	}
	return 0
}
