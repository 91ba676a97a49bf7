package loadout

import "dnd_weapon_stats/internal/app"

// MechanicDefinition names a weapon mechanic by string type, used both to
// build the status-effect machine and to select matching trackers.
type MechanicDefinition struct {
	Type     string `yaml:"type"`
	ProcDice int    `yaml:"proc_dice"`
}

// WeaponDefinition is the YAML shape of a weapon.
type WeaponDefinition struct {
	Name       string               `yaml:"name"`
	Damage     string               `yaml:"damage"`
	MagicBonus int                  `yaml:"magic_bonus"`
	Properties []string             `yaml:"properties"`
	Mechanics  []MechanicDefinition `yaml:"mechanics"`
}

// CharacterDefinition is the YAML shape of an attacker.
type CharacterDefinition struct {
	Name             string               `yaml:"name"`
	Class            string               `yaml:"class"`
	AttackBonus      int                  `yaml:"attack_bonus"`
	FlatDamageBonus  int                  `yaml:"flat_damage_bonus"`
	ProficiencyBonus int                  `yaml:"proficiency_bonus"`
	Modifiers        []app.DamageModifier `yaml:"modifiers"`
	Features         []app.ClassFeature   `yaml:"features"`
}
