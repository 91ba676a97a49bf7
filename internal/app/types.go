package app

// Well-known special effect names. Trackers and the resolver match effects by
// these strings, so they live here rather than in any one package.
const (
	EffectBleedingCounter = "bleeding_counter"
	EffectBleedImmunity   = "bleed_immunity"
	EffectHemorrhage      = "hemorrhage"
)

// Special effect categories.
const (
	CategoryStatus       = "status"
	CategoryMechanic     = "mechanic"
	CategoryModifier     = "modifier"
	CategoryClassFeature = "class_feature"
)

// Scenario describes the combat situation a weapon is evaluated against.
type Scenario struct {
	RoundCount        int     `yaml:"round_count" json:"round_count"`
	AttacksPerRound   int     `yaml:"attacks_per_round" json:"attacks_per_round"`
	TargetArmorClass  int     `yaml:"target_armor_class" json:"target_armor_class"`
	TargetSizeClass   string  `yaml:"target_size_class" json:"target_size_class"`
	AdvantageRate     float64 `yaml:"advantage_rate" json:"advantage_rate"`
	TargetHP          int     `yaml:"target_hp" json:"target_hp"` // 0 means the default of 100
	TargetBleedImmune bool    `yaml:"target_bleed_immune" json:"target_bleed_immune"`
}

// AttackContext is the immutable input for resolving a single attack.
// AdvantageOverride, when set, wins over the scheduled advantage flag.
type AttackContext struct {
	Round             int
	AttackIndex       int
	TargetArmorClass  int
	TargetSizeClass   string
	TargetBleedImmune bool
	HasAdvantage      bool
	HasDisadvantage   bool
	AdvantageOverride *bool
}

// SpecialEffect is one named effect appended to an attack result.
type SpecialEffect struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Magnitude int    `json:"magnitude"`
	Triggered bool   `json:"triggered"`
}

// AttackResult is the structured outcome of one resolved attack. Damage totals
// and the effects list only grow by append during modifier post-processing.
type AttackResult struct {
	Round        int
	AttackIndex  int
	Hit          bool
	Critical     bool
	HasAdvantage bool
	NaturalRoll  int
	AttackTotal  int

	BaseDamage     int
	BonusDamage    int
	TotalDamage    int
	SpecialEffects []SpecialEffect

	HemorrhageTriggered bool
	HemorrhageDamage    int
	WastedDamage        int
}

// HitInfo is the slice of attack state a status-effect machine needs to react
// to one resolved hit.
type HitInfo struct {
	Advantage        bool
	Critical         bool
	TargetSize       string
	TargetImmune     bool
	ProficiencyBonus int
}

// StatusOutcome is what a status-effect machine produced for one hit.
type StatusOutcome struct {
	Effects   []SpecialEffect
	Damage    int
	Triggered bool
}

// RoundResult aggregates the attacks of a single round.
type RoundResult struct {
	Round               int
	Attacks             []AttackResult
	Damage              int
	HemorrhageTriggered bool
}

// CombatResult holds everything recorded for one completed combat. It is
// immutable once returned by the orchestrator.
type CombatResult struct {
	CombatID      int
	WeaponName    string
	CharacterName string

	Rounds         []RoundResult
	TotalAttacks   int
	TotalHits      int
	TotalCriticals int
	TotalDamage    int
	HitRate        float64
	CriticalRate   float64

	MissStreaks  []int
	WastedDamage int

	AdvantageRounds []int
	AdvantageCount  int

	HemorrhageTriggers   int
	FirstHemorrhageRound int // 0 means the mechanic never triggered
	HemorrhageDamage     int

	Metrics *CombatMetrics
}

// CombatContext is the combat-level context handed to trackers at start.
type CombatContext struct {
	CombatID   int
	WeaponName string
	ClassName  string
	Scenario   *Scenario
}

// UniversalMetrics are the counters the aggregation engine maintains for every
// combat regardless of which trackers are registered.
type UniversalMetrics struct {
	Attacks            int
	Hits               int
	Misses             int
	Criticals          int
	NonCriticals       int
	TotalDamage        int
	CriticalDamage     int
	NonCriticalDamage  int
	FirstCriticalRound int // 0 means no critical landed
}

// CombatMetrics is the finalized output of the aggregation engine: the
// universal section plus one nested map per registered (category, name).
type CombatMetrics struct {
	Universal UniversalMetrics
	Trackers  map[string]map[string]float64 // keyed "category/name"
}

// FeatureCondition is a conjunctive eligibility predicate for a class feature.
// Every set field must hold; WeaponAnyProperty is satisfied by any one of the
// listed weapon properties.
type FeatureCondition struct {
	RequiresAdvantage bool     `yaml:"requires_advantage"`
	WeaponAnyProperty []string `yaml:"weapon_any_property"`
}

// ClassFeature is a character feature fired by a trigger ("hit", "critical",
// or a special-effect name).
type ClassFeature struct {
	Name           string            `yaml:"name"`
	Trigger        string            `yaml:"trigger"`
	EffectType     string            `yaml:"effect_type"`
	DiceExpression string            `yaml:"dice"`
	Condition      *FeatureCondition `yaml:"condition"`
}

// DamageModifier is a flat-or-dice damage rider triggered on hit or critical.
type DamageModifier struct {
	Name           string `yaml:"name"`
	Trigger        string `yaml:"trigger"`
	Flat           int    `yaml:"flat"`
	DiceExpression string `yaml:"dice"`
}
