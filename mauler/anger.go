package mauler

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	minAngerTime = 400
	maxAngerTime = 1000
)

// Anger is the anger state of a mauler. A mauler with anger time left is angry and refuses to be fed.
type Anger struct {
	// Time is the number of ticks the mauler stays angry.
	Time int
	// At is the UUID of the entity the mauler is angry at, or uuid.Nil.
	At uuid.UUID
}

// AngerTarget describes the entity an angry mauler is currently attacking.
type AngerTarget struct {
	ID     uuid.UUID
	Player bool
}

// Angry reports if any anger time is left.
func (a *Anger) Angry() bool {
	return a.Time > 0
}

// ChooseRandomTime sets the anger time to a random duration.
func (a *Anger) ChooseRandomTime() {
	a.Time = minAngerTime + rand.IntN(maxAngerTime-minAngerTime+1)
}

// Stop clears the anger.
func (a *Anger) Stop() {
	a.Time, a.At = 0, uuid.Nil
}

// Tick advances the anger by one tick. target is the current attack target, or nil if there is none. mob
// reports if the entity with the UUID passed is loaded and is not a player. Tick returns true if the anger was
// stopped, in which case the caller should forget its target and attacker.
//
// Anger at players never expires while the player is the target.
func (a *Anger) Tick(target *AngerTarget, mob func(id uuid.UUID) bool) bool {
	if target == nil && a.At != uuid.Nil && mob(a.At) {
		a.Stop()
		return true
	}
	if target != nil && a.At != target.ID {
		a.At = target.ID
		a.ChooseRandomTime()
	}
	if a.Time > 0 && (target == nil || !target.Player) {
		if a.Time--; a.Time == 0 {
			a.Stop()
			return true
		}
	}
	return false
}
