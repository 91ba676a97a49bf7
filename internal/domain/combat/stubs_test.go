package combat

import (
	"math/rand"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/dice"
)

// stubWeapon is a minimal weapon for resolver and orchestrator tests.
type stubWeapon struct {
	name       string
	magic      int
	properties []string
	mechanics  []string
	damage     dice.Expression
	effects    []StatusEffect
}

func (w *stubWeapon) Name() string            { return w.name }
func (w *stubWeapon) MagicBonus() int         { return w.magic }
func (w *stubWeapon) Properties() []string    { return w.properties }
func (w *stubWeapon) MechanicTypes() []string { return w.mechanics }

func (w *stubWeapon) ResolveBaseDamage(rng *rand.Rand, critical bool) (int, error) {
	return w.damage.CriticalAdjust(critical).Roll(rng), nil
}

func (w *stubWeapon) StatusEffects() []StatusEffect { return w.effects }

// stubCharacter is a minimal attacker for resolver and orchestrator tests.
type stubCharacter struct {
	name        string
	class       string
	attackBonus int
	flatBonus   int
	proficiency int
	modifiers   map[string][]app.DamageModifier
	features    map[string][]app.ClassFeature
}

func (c *stubCharacter) Name() string          { return c.name }
func (c *stubCharacter) Class() string         { return c.class }
func (c *stubCharacter) AttackBonus() int      { return c.attackBonus }
func (c *stubCharacter) FlatDamageBonus() int  { return c.flatBonus }
func (c *stubCharacter) ProficiencyBonus() int { return c.proficiency }

func (c *stubCharacter) DamageModifiers(trigger string) []app.DamageModifier {
	return c.modifiers[trigger]
}

func (c *stubCharacter) TriggeredFeatures(trigger string) []app.ClassFeature {
	return c.features[trigger]
}
