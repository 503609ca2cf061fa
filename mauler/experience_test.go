package mauler_test

import (
	"testing"

	"github.com/bedrock-gophers/friendsandfoes/mauler"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/enchantment"
	"github.com/stretchr/testify/assert"
)

func TestExperienceStoreFeedCapsAtMaximum(t *testing.T) {
	var s mauler.ExperienceStore
	assert.True(t, s.Feed(1000))
	assert.Equal(t, 1000, s.Points())

	assert.True(t, s.Feed(1000))
	assert.Equal(t, mauler.MaxStoredExperience, s.Points())
	assert.True(t, s.Full())

	assert.False(t, s.Feed(1))
	assert.Equal(t, mauler.MaxStoredExperience, s.Points())
}

func TestExperienceStoreSetPointsClamps(t *testing.T) {
	var s mauler.ExperienceStore
	s.SetPoints(-5)
	assert.Equal(t, 0, s.Points())
	s.SetPoints(5000)
	assert.Equal(t, mauler.MaxStoredExperience, s.Points())
}

func TestExperienceStoreRedeem(t *testing.T) {
	var s mauler.ExperienceStore
	s.SetPoints(50)

	assert.Equal(t, 3, s.Redeem(3))
	assert.Equal(t, 29, s.Points())

	assert.Equal(t, 4, s.Redeem(64))
	assert.Equal(t, 1, s.Points())

	assert.Zero(t, s.Redeem(64))
	assert.Equal(t, 1, s.Points())
}

func TestExperienceStoreRedeemBelowOneBottle(t *testing.T) {
	var s mauler.ExperienceStore
	s.SetPoints(mauler.ExperiencePerBottle - 1)
	assert.Zero(t, s.Redeem(10))
	assert.Equal(t, mauler.ExperiencePerBottle-1, s.Points())
}

func TestExperienceStoreSize(t *testing.T) {
	var s mauler.ExperienceStore
	assert.Equal(t, 1.0, s.Size())

	s.SetPoints(mauler.MaxStoredExperience)
	assert.Equal(t, 2.0, s.Size())

	s.SetPoints(279)
	assert.InDelta(t, 1.2, s.Size(), 1e-9)
}

func TestEnchantmentPointsSkipsCurses(t *testing.T) {
	sharpness, _ := enchantment.Sharpness.Cost(3)
	unbreaking, _ := enchantment.Unbreaking.Cost(2)

	points := mauler.EnchantmentPoints([]item.Enchantment{
		item.NewEnchantment(enchantment.Sharpness, 3),
		item.NewEnchantment(enchantment.Unbreaking, 2),
		item.NewEnchantment(enchantment.CurseOfVanishing, 1),
	})
	assert.Equal(t, sharpness+unbreaking, points)
	assert.Zero(t, mauler.EnchantmentPoints(nil))
}
