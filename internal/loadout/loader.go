// Package loadout loads weapon, character, and scenario definitions from YAML
// files and builds the concrete instances the combat engine consumes.
package loadout

import (
	"fmt"
	"os"
	"path/filepath"

	"dnd_weapon_stats/internal/app"
	"dnd_weapon_stats/internal/dice"
	"dnd_weapon_stats/internal/domain/bleed"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Loader reads definition files from a base directory laid out as
// weapons/<name>.yaml, characters/<name>.yaml, scenarios/<name>.yaml.
type Loader struct {
	baseDir string
}

// NewLoader creates a definition loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{baseDir: baseDir}
}

// LoadWeapon reads and validates a weapon definition.
func (l *Loader) LoadWeapon(name string) (WeaponDefinition, error) {
	var def WeaponDefinition
	if err := l.read(filepath.Join("weapons", name+".yaml"), &def); err != nil {
		return def, err
	}
	if err := ValidateWeapon(def); err != nil {
		return def, err
	}
	log.Debug().Str("weapon", def.Name).Str("damage", def.Damage).Msg("Loaded weapon definition")
	return def, nil
}

// LoadCharacter reads and validates a character definition.
func (l *Loader) LoadCharacter(name string) (CharacterDefinition, error) {
	var def CharacterDefinition
	if err := l.read(filepath.Join("characters", name+".yaml"), &def); err != nil {
		return def, err
	}
	if err := ValidateCharacter(def); err != nil {
		return def, err
	}
	log.Debug().Str("character", def.Name).Str("class", def.Class).Msg("Loaded character definition")
	return def, nil
}

// LoadScenario reads and validates a scenario definition.
func (l *Loader) LoadScenario(name string) (app.Scenario, error) {
	var scenario app.Scenario
	if err := l.read(filepath.Join("scenarios", name+".yaml"), &scenario); err != nil {
		return scenario, err
	}
	if err := ValidateScenario(scenario); err != nil {
		return scenario, err
	}
	log.Debug().
		Int("rounds", scenario.RoundCount).
		Float64("advantage_rate", scenario.AdvantageRate).
		Str("target_size", scenario.TargetSizeClass).
		Msg("Loaded scenario definition")
	return scenario, nil
}

func (l *Loader) read(relative string, out interface{}) error {
	path := filepath.Join(l.baseDir, relative)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read definition file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &app.ConfigurationFault{Reason: fmt.Sprintf("invalid YAML in %s", path), Err: err}
	}
	return nil
}

// ValidateWeapon checks a weapon definition for configuration faults before
// any combat runs with it.
func ValidateWeapon(def WeaponDefinition) error {
	if def.Name == "" {
		return app.Configf("weapon definition missing a name")
	}
	if _, err := dice.Parse(def.Damage); err != nil {
		return err
	}
	for _, mechanic := range def.Mechanics {
		if mechanic.Type == "" {
			return app.Configf("weapon %q has a mechanic without a type", def.Name)
		}
	}
	return nil
}

// ValidateCharacter checks a character definition, including every dice
// expression its modifiers and features carry.
func ValidateCharacter(def CharacterDefinition) error {
	if def.Name == "" {
		return app.Configf("character definition missing a name")
	}
	for _, mod := range def.Modifiers {
		if mod.Trigger == "" {
			return app.Configf("character %q modifier %q has no trigger", def.Name, mod.Name)
		}
		if mod.DiceExpression != "" {
			if _, err := dice.Parse(mod.DiceExpression); err != nil {
				return err
			}
		}
	}
	for _, feature := range def.Features {
		if feature.Trigger == "" {
			return app.Configf("character %q feature %q has no trigger", def.Name, feature.Name)
		}
		if feature.DiceExpression != "" {
			if _, err := dice.Parse(feature.DiceExpression); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateScenario checks scenario bounds and that the target size resolves.
func ValidateScenario(scenario app.Scenario) error {
	if scenario.RoundCount <= 0 {
		return app.Configf("scenario round count must be positive, got %d", scenario.RoundCount)
	}
	if scenario.AttacksPerRound <= 0 {
		return app.Configf("scenario attacks per round must be positive, got %d", scenario.AttacksPerRound)
	}
	if scenario.AdvantageRate < 0 || scenario.AdvantageRate > 1 {
		return app.Configf("scenario advantage rate must be in [0,1], got %v", scenario.AdvantageRate)
	}
	if !bleed.SizeKnown(scenario.TargetSizeClass) {
		return app.Configf("unknown target size class %q", scenario.TargetSizeClass)
	}
	return nil
}
