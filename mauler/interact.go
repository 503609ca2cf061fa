package mauler

import (
	"image/color"
	"math/rand/v2"

	"github.com/df-mc/dragonfly/server/entity"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/inventory"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/particle"
	"github.com/df-mc/dragonfly/server/world/sound"
	"github.com/go-gl/mathgl/mgl64"
)

// Interactor is an entity, usually a player, that can use its held item on a mauler.
type Interactor interface {
	HeldItems() (mainHand, offHand item.Stack)
	SetHeldItems(mainHand, offHand item.Stack)
	Inventory() *inventory.Inventory
}

// interaction is the result of using an item on a mauler.
type interaction struct {
	// held is what remains of the item used.
	held item.Stack
	// reward is given to the interactor, if not empty.
	reward item.Stack
	sound  world.Sound
}

var enchantParticle = particle.Dust{Colour: color.RGBA{R: 0x9b, G: 0x4d, B: 0xff, A: 0xff}}

// Interact uses the item held by the interactor on the mauler. Enchanted items are eaten, and their experience
// is stored. Glass bottles are filled with stored experience. Angry maulers do neither. Interact returns false if
// the item was not used.
func (m *Mauler) Interact(i Interactor, tx *world.Tx) bool {
	held, off := i.HeldItems()
	res, ok := m.s.interact(held)
	if !ok {
		return false
	}
	i.SetHeldItems(res.held, off)
	if !res.reward.Empty() {
		m.give(i, res.reward, tx)
	}
	m.SetScale(m.Size(), tx)
	tx.PlaySound(m.Position(), res.sound)
	m.spawnParticles(tx, 7)

	m.t.log.Debug("mauler stored experience changed", "points", m.StoredExperience())
	return true
}

// give adds the stack passed to the inventory of the interactor. Whatever does not fit is dropped at the
// mauler.
func (m *Mauler) give(i Interactor, s item.Stack, tx *world.Tx) {
	n, _ := i.Inventory().AddItem(s)
	if n >= s.Count() {
		return
	}
	opts := world.EntitySpawnOpts{Position: m.Position().Add(mgl64.Vec3{0, height * m.Size(), 0})}
	tx.AddEntity(entity.NewItem(opts, s.Grow(-n)))
}

func (m *Mauler) spawnParticles(tx *world.Tx, amount int) {
	box := m.H().Type().BBox(m)
	w, h := box.Width(), box.Height()
	pos := m.Position()
	for range amount {
		offset := mgl64.Vec3{
			(rand.Float64()*2 - 1) * w,
			rand.Float64()*h + 0.5,
			(rand.Float64()*2 - 1) * w,
		}
		tx.AddParticle(pos.Add(offset), enchantParticle)
	}
}

// interact applies the use of the stack passed to the state and returns the result.
func (s *state) interact(held item.Stack) (interaction, bool) {
	if s.anger.Angry() || held.Empty() {
		return interaction{}, false
	}
	_, book := held.Item().(item.EnchantedBook)
	if len(held.Enchantments()) > 0 || book {
		return s.feed(held)
	}
	if _, bottle := held.Item().(item.GlassBottle); bottle {
		return s.redeem(held)
	}
	return interaction{}, false
}

// feed stores the experience of an enchanted item, consuming it.
func (s *state) feed(held item.Stack) (interaction, bool) {
	if !s.xp.Feed(EnchantmentPoints(held.Enchantments())) {
		return interaction{}, false
	}
	return interaction{held: held.Grow(-1), sound: sound.Experience{}}, true
}

// redeem fills as many of the glass bottles held as the stored experience allows.
func (s *state) redeem(held item.Stack) (interaction, bool) {
	n := s.xp.Redeem(held.Count())
	if n == 0 {
		return interaction{}, false
	}
	return interaction{
		held:   held.Grow(-n),
		reward: item.NewStack(item.BottleOfEnchanting{}, n),
		sound:  sound.Pop{},
	}, true
}
