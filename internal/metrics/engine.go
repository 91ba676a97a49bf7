package metrics

import (
	"dnd_weapon_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// Engine aggregates universal counters plus tracker metrics for one combat at
// a time. Lifecycle per combat: Start, RecordAttack for every result, then
// Finalize.
type Engine struct {
	trackers  []Tracker
	started   bool
	combatID  int
	universal app.UniversalMetrics
}

// NewEngine creates an engine over the given trackers, typically the output
// of TrackersFor.
func NewEngine(trackers []Tracker) *Engine {
	return &Engine{trackers: trackers}
}

// Start resets the universal counters for a new combat and notifies trackers.
func (e *Engine) Start(combatID int, ctx *app.CombatContext) {
	e.started = true
	e.combatID = combatID
	e.universal = app.UniversalMetrics{}
	for _, tracker := range e.trackers {
		tracker.OnStart(ctx)
	}
}

// RecordAttack updates the universal counters and forwards the result to
// every tracker.
func (e *Engine) RecordAttack(result *app.AttackResult) {
	e.universal.Attacks++
	if result.Hit {
		e.universal.Hits++
		e.universal.TotalDamage += result.TotalDamage
		if result.Critical {
			e.universal.Criticals++
			e.universal.CriticalDamage += result.TotalDamage
			if e.universal.FirstCriticalRound == 0 {
				e.universal.FirstCriticalRound = result.Round
			}
		} else {
			e.universal.NonCriticals++
			e.universal.NonCriticalDamage += result.TotalDamage
		}
	} else {
		e.universal.Misses++
	}

	for _, tracker := range e.trackers {
		tracker.OnAttack(result)
	}
}

// Finalize returns the universal section plus one nested metrics map per
// registered (category, name). Calling Finalize before Start is a hard error.
func (e *Engine) Finalize() (*app.CombatMetrics, error) {
	if !e.started {
		return nil, app.Configf("metrics engine finalized before start")
	}
	e.started = false

	combined := &app.CombatMetrics{
		Universal: e.universal,
		Trackers:  make(map[string]map[string]float64, len(e.trackers)),
	}
	for _, tracker := range e.trackers {
		combined.Trackers[tracker.Category()+"/"+tracker.Name()] = tracker.OnEnd()
	}

	log.Debug().
		Int("combat_id", e.combatID).
		Int("attacks", combined.Universal.Attacks).
		Int("hits", combined.Universal.Hits).
		Int("trackers", len(e.trackers)).
		Msg("Finalized combat metrics")

	return combined, nil
}
