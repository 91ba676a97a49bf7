package combat

import (
	"math/rand"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/dice"
	"dnd_weapon_stats/internal/domain/advantage"
)

// Feature and modifier trigger names.
const (
	TriggerHit      = "hit"
	TriggerCritical = "critical"
)

// Resolver resolves single attacks for one combat. It memoizes the combat's
// advantage strategy so every attack in a round sees the same scheduled flag.
type Resolver struct {
	weapon    Weapon
	character Character
	strategy  *advantage.Strategy
	rng       *rand.Rand
}

// NewResolver creates a resolver bound to one combat's weapon, character,
// advantage strategy, and random stream.
func NewResolver(weapon Weapon, character Character, strategy *advantage.Strategy, rng *rand.Rand) *Resolver {
	return &Resolver{
		weapon:    weapon,
		character: character,
		strategy:  strategy,
		rng:       rng,
	}
}

// ResolveAttack resolves one attack into a structured outcome: to-hit roll,
// base damage, status-effect application, then character modifiers and class
// features.
func (r *Resolver) ResolveAttack(ctx *app.AttackContext) (*app.AttackResult, error) {
	// An explicit override wins; otherwise the scheduled flag for this round.
	hasAdvantage := r.strategy.HasAdvantage(ctx.Round)
	if ctx.AdvantageOverride != nil {
		hasAdvantage = *ctx.AdvantageOverride
	}

	result := &app.AttackResult{
		Round:        ctx.Round,
		AttackIndex:  ctx.AttackIndex,
		HasAdvantage: hasAdvantage,
	}

	natural := r.rollToHit(hasAdvantage, ctx.HasDisadvantage)
	result.NaturalRoll = natural
	result.AttackTotal = natural + r.character.AttackBonus() + r.weapon.MagicBonus()

	// A natural 20 always hits and always crits, regardless of armor class.
	result.Critical = natural == 20
	result.Hit = result.Critical || result.AttackTotal >= ctx.TargetArmorClass
	if !result.Hit {
		return result, nil
	}

	baseDamage, err := r.weapon.ResolveBaseDamage(r.rng, result.Critical)
	if err != nil {
		return nil, err
	}
	result.BaseDamage = baseDamage
	result.BonusDamage = r.character.FlatDamageBonus() + r.weapon.MagicBonus()

	if err := r.applyStatusEffects(ctx, result, hasAdvantage); err != nil {
		return nil, err
	}
	if err := r.applyModifiers(result); err != nil {
		return nil, err
	}
	if err := r.applyFeatures(result, hasAdvantage); err != nil {
		return nil, err
	}

	result.TotalDamage = result.BaseDamage + result.BonusDamage
	return result, nil
}

func (r *Resolver) rollToHit(hasAdvantage, hasDisadvantage bool) int {
	switch {
	case hasAdvantage && !hasDisadvantage:
		return dice.D20Advantage(r.rng)
	case hasDisadvantage && !hasAdvantage:
		return dice.D20Disadvantage(r.rng)
	default:
		return dice.D20(r.rng)
	}
}

// applyStatusEffects runs every status-effect machine on the weapon and folds
// its outcome into the result.
func (r *Resolver) applyStatusEffects(ctx *app.AttackContext, result *app.AttackResult, hasAdvantage bool) error {
	hit := app.HitInfo{
		Advantage:        hasAdvantage,
		Critical:         result.Critical,
		TargetSize:       ctx.TargetSizeClass,
		TargetImmune:     ctx.TargetBleedImmune,
		ProficiencyBonus: r.character.ProficiencyBonus(),
	}

	for _, effect := range r.weapon.StatusEffects() {
		out, err := effect.OnHit(r.rng, hit)
		if err != nil {
			return err
		}
		result.SpecialEffects = append(result.SpecialEffects, out.Effects...)
		result.BonusDamage += out.Damage
		for _, se := range out.Effects {
			if se.Name == app.EffectHemorrhage && se.Triggered {
				result.HemorrhageTriggered = true
				result.HemorrhageDamage += se.Magnitude
			}
		}
	}
	return nil
}

// applyModifiers applies hit-triggered and, on a critical, critical-triggered
// damage modifiers. Each is flat or dice; modifier dice do not double on a
// critical.
func (r *Resolver) applyModifiers(result *app.AttackResult) error {
	modifiers := r.character.DamageModifiers(TriggerHit)
	if result.Critical {
		modifiers = append(modifiers, r.character.DamageModifiers(TriggerCritical)...)
	}

	for _, mod := range modifiers {
		magnitude := mod.Flat
		if mod.DiceExpression != "" {
			expr, err := dice.Parse(mod.DiceExpression)
			if err != nil {
				return err
			}
			magnitude += expr.Roll(r.rng)
		}
		result.SpecialEffects = append(result.SpecialEffects, app.SpecialEffect{
			Name:      mod.Name,
			Category:  app.CategoryModifier,
			Magnitude: magnitude,
			Triggered: true,
		})
		result.BonusDamage += magnitude
	}
	return nil
}

// applyFeatures fires class features for the hit trigger, the critical trigger
// when applicable, and any special-effect-name triggers already on the result.
// Feature dice double on a critical under the same dice-term-only policy as
// weapon dice.
func (r *Resolver) applyFeatures(result *app.AttackResult, hasAdvantage bool) error {
	features := r.character.TriggeredFeatures(TriggerHit)
	if result.Critical {
		features = append(features, r.character.TriggeredFeatures(TriggerCritical)...)
	}
	for _, se := range result.SpecialEffects {
		if se.Triggered {
			features = append(features, r.character.TriggeredFeatures(se.Name)...)
		}
	}

	for _, feature := range features {
		if !r.eligible(feature, hasAdvantage) {
			continue
		}

		magnitude := 0
		if feature.DiceExpression != "" {
			expr, err := dice.Parse(feature.DiceExpression)
			if err != nil {
				return err
			}
			magnitude = expr.CriticalAdjust(result.Critical).Roll(r.rng)
		}

		result.SpecialEffects = append(result.SpecialEffects, app.SpecialEffect{
			Name:      feature.Name,
			Category:  app.CategoryClassFeature,
			Magnitude: magnitude,
			Triggered: true,
		})
		result.BonusDamage += magnitude
	}
	return nil
}

// eligible evaluates a feature's conjunctive eligibility predicate: every set
// condition must hold, and the weapon-property list is any-of within that
// conjunct.
func (r *Resolver) eligible(feature app.ClassFeature, hasAdvantage bool) bool {
	cond := feature.Condition
	if cond == nil {
		return true
	}
	if cond.RequiresAdvantage && !hasAdvantage {
		return false
	}
	if len(cond.WeaponAnyProperty) > 0 && !r.weaponHasAny(cond.WeaponAnyProperty) {
		return false
	}
	return true
}

func (r *Resolver) weaponHasAny(wanted []string) bool {
	for _, property := range r.weapon.Properties() {
		for _, want := range wanted {
			if property == want {
				return true
			}
		}
	}
	return false
}
