package combat

import (
	"math/rand"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/domain/advantage"
	"dnd_weapon_stats/internal/metrics"

	"github.com/rs/zerolog/log"
)

// defaultTargetHP is the simulated target's hit points when the scenario does
// not override them. A killing blow replaces the target with a fresh one.
const defaultTargetHP = 100

// Orchestrator drives complete combats: N rounds times M attacks against a
// scripted scenario, with miss-streak and killing-blow-waste accounting.
type Orchestrator struct {
	weapon    Weapon
	character Character
	scenario  *app.Scenario
}

// NewOrchestrator creates an orchestrator for one (weapon, character,
// scenario) triple. The weapon instance must be exclusively owned by the
// caller; its status-effect state mutates across combats.
func NewOrchestrator(weapon Weapon, character Character, scenario *app.Scenario) *Orchestrator {
	return &Orchestrator{
		weapon:    weapon,
		character: character,
		scenario:  scenario,
	}
}

// RunCombat runs one combat and returns its immutable result. The advantage
// strategy is computed once, trackers are instantiated fresh from the
// registry, and every attack result is fed to the metrics engine.
func (o *Orchestrator) RunCombat(combatID int, rng *rand.Rand) (*app.CombatResult, error) {
	strategy := advantage.ComputeStrategy(o.scenario.RoundCount, o.scenario.AdvantageRate)
	resolver := NewResolver(o.weapon, o.character, strategy, rng)

	// Every combat opens against a fresh target.
	for _, effect := range o.weapon.StatusEffects() {
		effect.ResetTarget()
	}

	engine := metrics.NewEngine(metrics.TrackersFor(o.character.Class(), o.weapon.MechanicTypes()))
	engine.Start(combatID, &app.CombatContext{
		CombatID:   combatID,
		WeaponName: o.weapon.Name(),
		ClassName:  o.character.Class(),
		Scenario:   o.scenario,
	})

	freshHP := o.scenario.TargetHP
	if freshHP <= 0 {
		freshHP = defaultTargetHP
	}

	result := &app.CombatResult{
		CombatID:        combatID,
		WeaponName:      o.weapon.Name(),
		CharacterName:   o.character.Name(),
		AdvantageRounds: strategy.Rounds,
		AdvantageCount:  strategy.Count,
	}

	targetHP := freshHP
	missStreak := 0

	for round := 1; round <= o.scenario.RoundCount; round++ {
		roundResult := app.RoundResult{Round: round}

		for attackIndex := 0; attackIndex < o.scenario.AttacksPerRound; attackIndex++ {
			ctx := &app.AttackContext{
				Round:             round,
				AttackIndex:       attackIndex,
				TargetArmorClass:  o.scenario.TargetArmorClass,
				TargetSizeClass:   o.scenario.TargetSizeClass,
				TargetBleedImmune: o.scenario.TargetBleedImmune,
				HasAdvantage:      strategy.HasAdvantage(round),
			}

			attack, err := resolver.ResolveAttack(ctx)
			if err != nil {
				return nil, err
			}

			result.TotalAttacks++
			if attack.Hit {
				result.TotalHits++
				if attack.Critical {
					result.TotalCriticals++
				}
				if missStreak > 0 {
					result.MissStreaks = append(result.MissStreaks, missStreak)
					missStreak = 0
				}

				// Killing-blow accounting: excess damage is wasted and the
				// next attack faces a fresh target.
				if attack.TotalDamage >= targetHP {
					attack.WastedDamage = attack.TotalDamage - targetHP
					result.WastedDamage += attack.WastedDamage
					targetHP = freshHP
					for _, effect := range o.weapon.StatusEffects() {
						effect.ResetTarget()
					}
				} else {
					targetHP -= attack.TotalDamage
				}

				roundResult.Damage += attack.TotalDamage
				result.TotalDamage += attack.TotalDamage
			} else {
				missStreak++
			}

			if attack.HemorrhageTriggered {
				roundResult.HemorrhageTriggered = true
				result.HemorrhageTriggers++
				result.HemorrhageDamage += attack.HemorrhageDamage
				if result.FirstHemorrhageRound == 0 {
					result.FirstHemorrhageRound = round
				}
			}

			engine.RecordAttack(attack)
			roundResult.Attacks = append(roundResult.Attacks, *attack)
		}

		result.Rounds = append(result.Rounds, roundResult)
	}

	// A streak still open at combat end is complete by definition.
	if missStreak > 0 {
		result.MissStreaks = append(result.MissStreaks, missStreak)
	}

	if result.TotalAttacks > 0 {
		result.HitRate = float64(result.TotalHits) / float64(result.TotalAttacks)
		result.CriticalRate = float64(result.TotalCriticals) / float64(result.TotalAttacks)
	}

	combined, err := engine.Finalize()
	if err != nil {
		return nil, err
	}
	result.Metrics = combined

	log.Debug().
		Int("combat_id", combatID).
		Int("total_damage", result.TotalDamage).
		Float64("hit_rate", result.HitRate).
		Int("hemorrhage_triggers", result.HemorrhageTriggers).
		Msg("Completed combat")

	return result, nil
}
