package main

import (
	"context"
	"flag"
	"os"

	"dnd_weapon_stats/internal/analysis"
	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/export"
	"dnd_weapon_stats/internal/loadout"
	"dnd_weapon_stats/internal/report"
	"dnd_weapon_stats/internal/runner"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	combats := flag.Int("combats", 0, "Number of combats to simulate (overrides SIM_COMBATS)")
	seed := flag.Int64("seed", 0, "Random seed (overrides SIM_SEED)")
	workers := flag.Int("workers", 0, "Parallel workers (overrides SIM_WORKERS)")
	defsDir := flag.String("defs", "", "Definitions directory (overrides SIM_DEFS_DIR)")
	weaponName := flag.String("weapon", "", "Weapon definition to evaluate (required)")
	compareWith := flag.String("compare", "", "Second weapon definition to compare against")
	characterName := flag.String("character", "", "Character definition (required)")
	scenarioName := flag.String("scenario", "", "Scenario definition (required)")
	output := flag.String("output", "console", "Output format: console, csv, or json")
	doExport := flag.Bool("export", false, "Export per-combat rows to BigQuery")
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *combats > 0 {
		config.Combats = *combats
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *workers > 0 {
		config.Workers = *workers
	}
	if *defsDir != "" {
		config.DefinitionsDir = *defsDir
	}
	if *weaponName == "" || *characterName == "" || *scenarioName == "" {
		log.Fatal().Msg("-weapon, -character, and -scenario are required")
	}

	log.Info().
		Int("combats", config.Combats).
		Int64("seed", config.Seed).
		Str("weapon", *weaponName).
		Str("scenario", *scenarioName).
		Msg("Starting weapon balance simulation")

	loader := loadout.NewLoader(config.DefinitionsDir)
	character, err := loader.LoadCharacter(*characterName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load character definition")
	}
	scenario, err := loader.LoadScenario(*scenarioName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load scenario definition")
	}

	batchConfig := runner.BatchConfig{
		Combats: config.Combats,
		Seed:    config.Seed,
		Workers: config.Workers,
	}

	primary, results := runBatch(loader, batchConfig, *weaponName, character, scenario)

	switch *output {
	case "console":
		_ = report.WriteConsole(os.Stdout, *weaponName, primary)
	case "csv":
		if err := report.WriteCSV(os.Stdout, *weaponName, primary); err != nil {
			log.Fatal().Err(err).Msg("Failed to write CSV report")
		}
	case "json":
		if err := report.WriteJSON(os.Stdout, primary); err != nil {
			log.Fatal().Err(err).Msg("Failed to write JSON report")
		}
	default:
		log.Fatal().Str("output", *output).Msg("Unknown output format")
	}

	// The comparison run reuses the same seed and scenario, so both weapons
	// see favorable rolls scheduled in identical rounds.
	if *compareWith != "" {
		secondary, _ := runBatch(loader, batchConfig, *compareWith, character, scenario)
		_ = report.WriteConsole(os.Stdout, *compareWith, secondary)
		_ = report.WriteComparison(os.Stdout, *weaponName, *compareWith, analysis.Compare(primary, secondary))
	}

	if *doExport {
		if config.BigQueryProject == "" {
			log.Fatal().Msg("BIGQUERY_PROJECT must be set to export results")
		}
		ctx := context.Background()
		client, err := export.NewClient(ctx, config.BigQueryProject, config.BigQueryDataset, config.BigQueryTable, config.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery client")
		}
		defer client.Close()
		if err := client.InsertResults(ctx, results); err != nil {
			log.Fatal().Err(err).Msg("Failed to export combat results")
		}
	}
}

func runBatch(loader *loadout.Loader, cfg runner.BatchConfig, weaponName string, character loadout.CharacterDefinition, scenario app.Scenario) (*analysis.Analysis, []*app.CombatResult) {
	weapon, err := loader.LoadWeapon(weaponName)
	if err != nil {
		log.Fatal().Err(err).Str("weapon", weaponName).Msg("Failed to load weapon definition")
	}

	results, err := runner.RunBatch(cfg, runner.Definitions{
		Weapon:    weapon,
		Character: character,
		Scenario:  scenario,
	})
	if err != nil {
		log.Fatal().Err(err).Str("weapon", weaponName).Msg("Batch aborted")
	}

	result, err := analysis.Analyze(results)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to analyze combat results")
	}
	return result, results
}
