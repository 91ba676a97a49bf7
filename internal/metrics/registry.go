// Package metrics provides the plugin registry of per-class and per-mechanic
// trackers and the per-combat aggregation engine. The engine depends only on
// the Tracker interface; concrete trackers self-register at process start.
package metrics

import "dnd_weapon_stats/internal/app"

// Tracker is the plugin contract. Trackers are instantiated fresh for every
// combat and interpret special effects by name.
type Tracker interface {
	Category() string
	Name() string
	OnStart(ctx *app.CombatContext)
	OnAttack(result *app.AttackResult)
	OnEnd() map[string]float64
}

// Factory builds a fresh tracker for one combat.
type Factory func() Tracker

var (
	classFactories    = make(map[string]Factory)
	mechanicFactories = make(map[string]Factory)
)

// RegisterClassTracker registers a tracker factory for a character class.
// The last registration per name wins.
func RegisterClassTracker(name string, factory Factory) {
	classFactories[name] = factory
}

// RegisterMechanicTracker registers a tracker factory for a weapon mechanic
// type. The last registration per name wins.
func RegisterMechanicTracker(name string, factory Factory) {
	mechanicFactories[name] = factory
}

// TrackersFor instantiates fresh trackers matching a character class and a
// weapon's mechanic types. Unregistered names are simply skipped; a weapon
// with no tracked mechanics is an expected state, not an error.
func TrackersFor(class string, mechanics []string) []Tracker {
	var trackers []Tracker
	if factory, ok := classFactories[class]; ok {
		trackers = append(trackers, factory())
	}
	for _, mechanic := range mechanics {
		if factory, ok := mechanicFactories[mechanic]; ok {
			trackers = append(trackers, factory())
		}
	}
	return trackers
}
