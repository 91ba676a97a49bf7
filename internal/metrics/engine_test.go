package metrics

import (
	"errors"
	"testing"

	"dnd_weapon_stats/internal/app"
)

func hit(round, damage int, critical bool, effects ...app.SpecialEffect) *app.AttackResult {
	return &app.AttackResult{
		Round:          round,
		Hit:            true,
		Critical:       critical,
		TotalDamage:    damage,
		SpecialEffects: effects,
	}
}

func TestFinalizeBeforeStartIsConfigurationFault(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.Finalize()
	if err == nil {
		t.Fatal("Expected error finalizing before start")
	}
	var fault *app.ConfigurationFault
	if !errors.As(err, &fault) {
		t.Errorf("Expected ConfigurationFault, got %v", err)
	}
}

func TestUniversalCounters(t *testing.T) {
	engine := NewEngine(nil)
	engine.Start(1, &app.CombatContext{CombatID: 1})

	engine.RecordAttack(hit(1, 10, false))
	engine.RecordAttack(&app.AttackResult{Round: 1, Hit: false})
	engine.RecordAttack(hit(2, 25, true))
	engine.RecordAttack(hit(3, 5, false))

	combined, err := engine.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	universal := combined.Universal
	if universal.Attacks != 4 || universal.Hits != 3 || universal.Misses != 1 {
		t.Errorf("Unexpected attack counts: %+v", universal)
	}
	if universal.Criticals != 1 || universal.NonCriticals != 2 {
		t.Errorf("Unexpected critical counts: %+v", universal)
	}
	if universal.TotalDamage != 40 || universal.CriticalDamage != 25 || universal.NonCriticalDamage != 15 {
		t.Errorf("Unexpected damage totals: %+v", universal)
	}
	if universal.FirstCriticalRound != 2 {
		t.Errorf("Expected first critical in round 2, got %d", universal.FirstCriticalRound)
	}
}

func TestStartResetsCounters(t *testing.T) {
	engine := NewEngine(nil)

	engine.Start(1, &app.CombatContext{CombatID: 1})
	engine.RecordAttack(hit(1, 50, true))
	if _, err := engine.Finalize(); err != nil {
		t.Fatal(err)
	}

	engine.Start(2, &app.CombatContext{CombatID: 2})
	combined, err := engine.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if combined.Universal.Attacks != 0 || combined.Universal.TotalDamage != 0 {
		t.Errorf("Start did not reset universal counters: %+v", combined.Universal)
	}
}

func TestFinalizeRequiresFreshStart(t *testing.T) {
	engine := NewEngine(nil)
	engine.Start(1, &app.CombatContext{CombatID: 1})
	if _, err := engine.Finalize(); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Finalize(); err == nil {
		t.Error("Second finalize without a new start must fail")
	}
}

func TestHemorrhageTrackerMetrics(t *testing.T) {
	tracker := &HemorrhageTracker{}
	engine := NewEngine([]Tracker{tracker})
	engine.Start(1, &app.CombatContext{CombatID: 1})

	engine.RecordAttack(hit(1, 3, false,
		app.SpecialEffect{Name: app.EffectBleedingCounter, Category: app.CategoryStatus, Magnitude: 4, Triggered: true}))
	engine.RecordAttack(hit(3, 30, false,
		app.SpecialEffect{Name: app.EffectBleedingCounter, Category: app.CategoryStatus, Magnitude: 8, Triggered: true},
		app.SpecialEffect{Name: app.EffectHemorrhage, Category: app.CategoryMechanic, Magnitude: 22, Triggered: true}))
	engine.RecordAttack(hit(4, 2, false,
		app.SpecialEffect{Name: app.EffectBleedImmunity, Category: app.CategoryStatus}))

	combined, err := engine.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	tracked, ok := combined.Trackers["mechanic/hemorrhage"]
	if !ok {
		t.Fatalf("Expected mechanic/hemorrhage section, got %v", combined.Trackers)
	}
	if tracked["triggers"] != 1 {
		t.Errorf("Expected 1 trigger, got %v", tracked["triggers"])
	}
	if tracked["first_trigger_round"] != 3 {
		t.Errorf("Expected first trigger round 3, got %v", tracked["first_trigger_round"])
	}
	if tracked["proc_damage"] != 22 {
		t.Errorf("Expected proc damage 22, got %v", tracked["proc_damage"])
	}
	if tracked["counter_rolled"] != 12 {
		t.Errorf("Expected counter rolled 12, got %v", tracked["counter_rolled"])
	}
	if tracked["immune_hits"] != 1 {
		t.Errorf("Expected 1 immune hit, got %v", tracked["immune_hits"])
	}
}
