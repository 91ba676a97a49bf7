package combat

import (
	"math/rand"

	"dnd_weapon_stats/internal/app"
)

// StatusEffect is the contract a weapon's status-effect machines implement.
// OnHit is only invoked for resolved hits and may mutate the machine's owned
// state; ResetTarget is invoked when the simulated target changes.
type StatusEffect interface {
	Name() string
	OnHit(rng *rand.Rand, hit app.HitInfo) (app.StatusOutcome, error)
	ResetTarget()
}

// Weapon is the weapon-instance surface the resolver consumes. Each combat
// worker owns an independent instance; status-effect state is never shared.
type Weapon interface {
	Name() string
	MagicBonus() int
	Properties() []string
	MechanicTypes() []string
	ResolveBaseDamage(rng *rand.Rand, critical bool) (int, error)
	StatusEffects() []StatusEffect
}

// Character is the attacker surface the resolver consumes.
type Character interface {
	Name() string
	Class() string
	AttackBonus() int
	FlatDamageBonus() int
	ProficiencyBonus() int
	DamageModifiers(trigger string) []app.DamageModifier
	TriggeredFeatures(trigger string) []app.ClassFeature
}
