// Package runner executes batches of independent combats, optionally in
// parallel. Each worker owns its own weapon instance and each combat gets its
// own seeded random stream, so results are byte-identical for a fixed seed
// regardless of worker count.
package runner

import (
	"math/rand"
	"sync"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/domain/combat"
	"dnd_weapon_stats/internal/loadout"

	"github.com/rs/zerolog/log"
)

// BatchConfig controls one batch run.
type BatchConfig struct {
	Combats int
	Seed    int64
	Workers int
}

// Definitions is the validated input triple for a batch.
type Definitions struct {
	Weapon    loadout.WeaponDefinition
	Character loadout.CharacterDefinition
	Scenario  app.Scenario
}

// RunBatch runs cfg.Combats independent combats and returns their results
// ordered by combat ID. A ConfigurationFault from any combat aborts the whole
// batch: the same fault would recur in every remaining combat, and dropping
// iterations would bias the aggregate statistics.
func RunBatch(cfg BatchConfig, defs Definitions) ([]*app.CombatResult, error) {
	if cfg.Combats <= 0 {
		return nil, app.Configf("batch combat count must be positive, got %d", cfg.Combats)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Combats {
		workers = cfg.Combats
	}

	log.Info().
		Int("combats", cfg.Combats).
		Int64("seed", cfg.Seed).
		Int("workers", workers).
		Str("weapon", defs.Weapon.Name).
		Msg("Starting combat batch")

	results := make([]*app.CombatResult, cfg.Combats)
	errs := make([]error, workers)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			// Per-worker weapon instance: bleed state is never shared.
			weapon, err := loadout.BuildWeapon(defs.Weapon)
			if err != nil {
				errs[worker] = err
			}
			character := loadout.BuildCharacter(defs.Character)
			scenario := defs.Scenario

			// Keep draining jobs after a fault so the producer never blocks;
			// the fault aborts the batch once all workers finish.
			for combatID := range jobs {
				if errs[worker] != nil {
					continue
				}
				orchestrator := combat.NewOrchestrator(weapon, character, &scenario)
				rng := rand.New(rand.NewSource(cfg.Seed + int64(combatID)))
				result, err := orchestrator.RunCombat(combatID, rng)
				if err != nil {
					errs[worker] = err
					continue
				}
				results[combatID] = result
			}
		}(worker)
	}

	for combatID := 0; combatID < cfg.Combats; combatID++ {
		jobs <- combatID
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("combats", cfg.Combats).
		Str("weapon", defs.Weapon.Name).
		Msg("Completed combat batch")

	return results, nil
}
