package metrics

import "dnd_weapon_stats/internal/app"

func init() {
	RegisterMechanicTracker(app.EffectHemorrhage, func() Tracker { return &HemorrhageTracker{} })
	RegisterClassTracker("rogue", func() Tracker { return &RogueTracker{} })
}

// HemorrhageTracker records bleed-mechanic behavior for one combat: proc
// counts, the round of the first proc, proc damage, and how much counter was
// accumulated along the way.
type HemorrhageTracker struct {
	triggers          int
	firstTriggerRound int
	procDamage        int
	counterRolled     int
	immuneHits        int
}

func (t *HemorrhageTracker) Category() string { return "mechanic" }
func (t *HemorrhageTracker) Name() string     { return app.EffectHemorrhage }

func (t *HemorrhageTracker) OnStart(ctx *app.CombatContext) {
	*t = HemorrhageTracker{}
}

func (t *HemorrhageTracker) OnAttack(result *app.AttackResult) {
	for _, effect := range result.SpecialEffects {
		switch effect.Name {
		case app.EffectBleedingCounter:
			t.counterRolled += effect.Magnitude
		case app.EffectBleedImmunity:
			t.immuneHits++
		case app.EffectHemorrhage:
			if effect.Triggered {
				t.triggers++
				t.procDamage += effect.Magnitude
				if t.firstTriggerRound == 0 {
					t.firstTriggerRound = result.Round
				}
			}
		}
	}
}

func (t *HemorrhageTracker) OnEnd() map[string]float64 {
	return map[string]float64{
		"triggers":            float64(t.triggers),
		"first_trigger_round": float64(t.firstTriggerRound),
		"proc_damage":         float64(t.procDamage),
		"counter_rolled":      float64(t.counterRolled),
		"immune_hits":         float64(t.immuneHits),
	}
}

// RogueTracker records sneak-attack usage: how often the feature fired, the
// damage it contributed, and how many eligible (advantage) attacks there were.
type RogueTracker struct {
	sneakAttacks     int
	sneakDamage      int
	advantageAttacks int
}

func (t *RogueTracker) Category() string { return "class" }
func (t *RogueTracker) Name() string     { return "rogue" }

func (t *RogueTracker) OnStart(ctx *app.CombatContext) {
	*t = RogueTracker{}
}

func (t *RogueTracker) OnAttack(result *app.AttackResult) {
	if result.HasAdvantage {
		t.advantageAttacks++
	}
	for _, effect := range result.SpecialEffects {
		if effect.Category == app.CategoryClassFeature && effect.Name == "sneak_attack" && effect.Triggered {
			t.sneakAttacks++
			t.sneakDamage += effect.Magnitude
		}
	}
}

func (t *RogueTracker) OnEnd() map[string]float64 {
	return map[string]float64{
		"sneak_attacks":     float64(t.sneakAttacks),
		"sneak_damage":      float64(t.sneakDamage),
		"advantage_attacks": float64(t.advantageAttacks),
	}
}
