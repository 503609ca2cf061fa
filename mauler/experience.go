package mauler

import (
	"strings"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/enchantment"
)

const (
	// MaxStoredExperience is the most experience a mauler can hold.
	MaxStoredExperience = 1395
	// ExperiencePerBottle is the experience a mauler puts in a single bottle o' enchanting.
	ExperiencePerBottle = 7
)

// ExperienceStore holds the experience a mauler was fed.
type ExperienceStore struct {
	points int
}

// Points returns the stored experience.
func (s *ExperienceStore) Points() int {
	return s.points
}

// SetPoints sets the stored experience, clamped between 0 and MaxStoredExperience.
func (s *ExperienceStore) SetPoints(points int) {
	s.points = max(0, min(points, MaxStoredExperience))
}

// Full reports if no more experience can be stored.
func (s *ExperienceStore) Full() bool {
	return s.points >= MaxStoredExperience
}

// Feed adds points to the store. It returns false without changing anything if the store is already full.
// Points exceeding the maximum are lost.
func (s *ExperienceStore) Feed(points int) bool {
	if s.Full() {
		return false
	}
	s.SetPoints(s.points + points)
	return true
}

// Redeem takes experience out of the store for at most the number of bottles passed, and returns the number of
// bottles that were filled.
func (s *ExperienceStore) Redeem(bottles int) int {
	if s.points < ExperiencePerBottle || bottles <= 0 {
		return 0
	}
	n := min(s.points/ExperiencePerBottle, bottles)
	s.points -= n * ExperiencePerBottle
	return n
}

// Size returns the scale of a mauler holding this experience. It grows linearly from 1 when empty to 2 when
// full.
func (s *ExperienceStore) Size() float64 {
	return 1 + float64(s.points)/MaxStoredExperience
}

// EnchantmentPoints returns the experience a mauler gains by eating an item with the enchantments passed: the
// sum of the minimum enchanting cost of every enchantment that is not a curse.
func EnchantmentPoints(enchants []item.Enchantment) int {
	var points int
	for _, e := range enchants {
		if cursed(e.Type()) {
			continue
		}
		minCost, _ := e.Type().Cost(e.Level())
		points += minCost
	}
	return points
}

func cursed(t item.EnchantmentType) bool {
	return t == enchantment.CurseOfVanishing || strings.HasPrefix(t.Name(), "Curse of")
}
