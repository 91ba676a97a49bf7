package loadout

import (
	"math/rand"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/dice"
	"dnd_weapon_stats/internal/domain/bleed"
	"dnd_weapon_stats/internal/domain/combat"
)

// Weapon is a concrete weapon instance built from a definition. Every call to
// BuildWeapon yields an independent instance with its own status-effect state,
// so parallel workers never share a bleed counter.
type Weapon struct {
	def     WeaponDefinition
	damage  dice.Expression
	effects []combat.StatusEffect
}

// BuildWeapon constructs a fresh weapon instance. The definition must already
// be validated; the dice parse here only fails for definitions that skipped
// validation.
func BuildWeapon(def WeaponDefinition) (*Weapon, error) {
	damage, err := dice.Parse(def.Damage)
	if err != nil {
		return nil, err
	}

	weapon := &Weapon{def: def, damage: damage}
	for _, mechanic := range def.Mechanics {
		if mechanic.Type == app.EffectHemorrhage {
			weapon.effects = append(weapon.effects, bleed.NewState(mechanic.ProcDice))
		}
	}
	return weapon, nil
}

func (w *Weapon) Name() string { return w.def.Name }

func (w *Weapon) MagicBonus() int { return w.def.MagicBonus }

func (w *Weapon) Properties() []string { return w.def.Properties }

// MechanicTypes returns the mechanic type strings, used to select matching
// trackers from the registry.
func (w *Weapon) MechanicTypes() []string {
	types := make([]string, 0, len(w.def.Mechanics))
	for _, mechanic := range w.def.Mechanics {
		types = append(types, mechanic.Type)
	}
	return types
}

// ResolveBaseDamage rolls the weapon's base damage. A critical doubles the
// dice count only, never the flat part of the expression.
func (w *Weapon) ResolveBaseDamage(rng *rand.Rand, critical bool) (int, error) {
	return w.damage.CriticalAdjust(critical).Roll(rng), nil
}

func (w *Weapon) StatusEffects() []combat.StatusEffect { return w.effects }

// Character is a concrete attacker built from a definition, with modifiers
// and features indexed by trigger.
type Character struct {
	def       CharacterDefinition
	modifiers map[string][]app.DamageModifier
	features  map[string][]app.ClassFeature
}

// BuildCharacter constructs a character instance from a validated definition.
func BuildCharacter(def CharacterDefinition) *Character {
	character := &Character{
		def:       def,
		modifiers: make(map[string][]app.DamageModifier),
		features:  make(map[string][]app.ClassFeature),
	}
	for _, mod := range def.Modifiers {
		character.modifiers[mod.Trigger] = append(character.modifiers[mod.Trigger], mod)
	}
	for _, feature := range def.Features {
		character.features[feature.Trigger] = append(character.features[feature.Trigger], feature)
	}
	return character
}

func (c *Character) Name() string { return c.def.Name }

func (c *Character) Class() string { return c.def.Class }

func (c *Character) AttackBonus() int { return c.def.AttackBonus }

func (c *Character) FlatDamageBonus() int { return c.def.FlatDamageBonus }

func (c *Character) ProficiencyBonus() int { return c.def.ProficiencyBonus }

func (c *Character) DamageModifiers(trigger string) []app.DamageModifier {
	return c.modifiers[trigger]
}

func (c *Character) TriggeredFeatures(trigger string) []app.ClassFeature {
	return c.features[trigger]
}
