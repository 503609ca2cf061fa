package mauler_test

import (
	"testing"

	"github.com/bedrock-gophers/friendsandfoes/mauler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func noMobs(uuid.UUID) bool { return false }

func TestAngerRandomTimeWithinBounds(t *testing.T) {
	var a mauler.Anger
	for range 100 {
		a.ChooseRandomTime()
		assert.GreaterOrEqual(t, a.Time, 400)
		assert.LessOrEqual(t, a.Time, 1000)
	}
}

func TestAngerNewTargetAngers(t *testing.T) {
	var a mauler.Anger
	target := &mauler.AngerTarget{ID: uuid.New()}

	assert.False(t, a.Tick(target, noMobs))
	assert.True(t, a.Angry())
	assert.Equal(t, target.ID, a.At)
}

func TestAngerCountsDownForMobs(t *testing.T) {
	a := mauler.Anger{Time: 2, At: uuid.New()}
	target := &mauler.AngerTarget{ID: a.At}

	assert.False(t, a.Tick(target, noMobs))
	assert.Equal(t, 1, a.Time)
	assert.True(t, a.Tick(target, noMobs))
	assert.False(t, a.Angry())
	assert.Equal(t, uuid.Nil, a.At)
}

func TestAngerPersistsForPlayers(t *testing.T) {
	a := mauler.Anger{Time: 1, At: uuid.New()}
	target := &mauler.AngerTarget{ID: a.At, Player: true}

	for range 10 {
		assert.False(t, a.Tick(target, noMobs))
	}
	assert.Equal(t, 1, a.Time)

	assert.True(t, a.Tick(nil, noMobs))
	assert.False(t, a.Angry())
}

func TestAngerStopsWhenMobTargetIsLost(t *testing.T) {
	a := mauler.Anger{Time: 500, At: uuid.New()}
	assert.True(t, a.Tick(nil, func(uuid.UUID) bool { return true }))
	assert.Zero(t, a.Time)
	assert.Equal(t, uuid.Nil, a.At)
}
