// Package bleed implements the bleed/hemorrhage status-effect machine: a
// per-weapon-instance counter that accumulates on hits and procs hemorrhage
// damage once it crosses a size-dependent threshold.
package bleed

import (
	"math/rand"
	"strings"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/dice"

	"github.com/rs/zerolog/log"
)

// DefaultProcDice is the configured base dice count for hemorrhage proc
// damage before the attacker's proficiency bonus is added.
const DefaultProcDice = 3

// Size-keyed counter thresholds. Unknown sizes are a hard error, never a
// default.
var thresholds = map[string]int{
	"tiny":       12,
	"small":      12,
	"medium":     12,
	"large":      16,
	"huge":       20,
	"gargantuan": 24,
}

// Creature types that never bleed.
var immuneMarkers = []string{"construct", "undead", "elemental"}

// State is the mutable bleed counter exclusively owned by one weapon
// instance. The counter is monotonically non-decreasing between resets and
// never mutated for immune targets.
type State struct {
	procDice int
	counter  int
}

// NewState creates a fresh bleed state. procDice is the number of base d6s a
// hemorrhage proc rolls; values below 1 fall back to DefaultProcDice.
func NewState(procDice int) *State {
	if procDice < 1 {
		procDice = DefaultProcDice
	}
	return &State{procDice: procDice}
}

// Name is the mechanic type string this machine is registered under.
func (s *State) Name() string {
	return app.EffectHemorrhage
}

// Counter exposes the current counter value for tests and diagnostics.
func (s *State) Counter() int {
	return s.counter
}

// ResetTarget zeroes the counter. The caller invokes it when the simulated
// target changes; accumulated bleed does not follow the attacker to a fresh
// target.
func (s *State) ResetTarget() {
	s.counter = 0
}

// OnHit advances the machine for one resolved hit. Misses must never reach
// this method. The returned outcome carries the effects to append, any proc
// damage, and whether hemorrhage triggered.
func (s *State) OnHit(rng *rand.Rand, hit app.HitInfo) (app.StatusOutcome, error) {
	var out app.StatusOutcome

	if s.isImmune(hit) {
		out.Effects = append(out.Effects, app.SpecialEffect{
			Name:     app.EffectBleedImmunity,
			Category: app.CategoryStatus,
		})
		return out, nil
	}

	threshold, err := thresholdFor(hit.TargetSize)
	if err != nil {
		return app.StatusOutcome{}, err
	}

	counterDie := dice.Expression{Count: 1, Sides: 4}
	if hit.Advantage {
		counterDie.Sides = 8
	}
	// Criticals double the die count; critical+advantage composes to 2d8.
	rolled := counterDie.CriticalAdjust(hit.Critical).Roll(rng)
	s.counter += rolled
	out.Effects = append(out.Effects, app.SpecialEffect{
		Name:      app.EffectBleedingCounter,
		Category:  app.CategoryStatus,
		Magnitude: rolled,
		Triggered: true,
	})

	if s.counter < threshold {
		return out, nil
	}

	procDamage := dice.Expression{Count: s.procDice + hit.ProficiencyBonus, Sides: 6}.Roll(rng)
	out.Effects = append(out.Effects, app.SpecialEffect{
		Name:      app.EffectHemorrhage,
		Category:  app.CategoryMechanic,
		Magnitude: procDamage,
		Triggered: true,
	})
	out.Damage = procDamage
	out.Triggered = true

	log.Debug().
		Int("counter", s.counter).
		Int("threshold", threshold).
		Int("proc_damage", procDamage).
		Msg("Hemorrhage procced")

	s.counter = 0
	return out, nil
}

func (s *State) isImmune(hit app.HitInfo) bool {
	if hit.TargetImmune {
		return true
	}
	size := strings.ToLower(hit.TargetSize)
	for _, marker := range immuneMarkers {
		if strings.Contains(size, marker) {
			return true
		}
	}
	return false
}

// thresholdFor resolves the counter threshold for a target size string. The
// leading word is the size class; compound strings with an immune marker never
// reach this lookup.
func thresholdFor(size string) (int, error) {
	fields := strings.Fields(strings.ToLower(size))
	if len(fields) == 0 {
		return 0, app.Configf("empty target size class")
	}
	threshold, ok := thresholds[fields[0]]
	if !ok {
		return 0, app.Configf("unknown target size class %q", size)
	}
	return threshold, nil
}

// SizeKnown reports whether a target size string resolves to a threshold or
// is bleed-immune, for definition validation at load time.
func SizeKnown(size string) bool {
	lower := strings.ToLower(size)
	for _, marker := range immuneMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	_, err := thresholdFor(size)
	return err == nil
}
