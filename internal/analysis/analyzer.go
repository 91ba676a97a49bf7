// Package analysis computes distributional statistics over completed combat
// results: damage percentiles, variance, a CV-based consistency rating, and
// mechanic-trigger statistics.
package analysis

import (
	"math"
	"sort"

	"dnd_weapon_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// Consistency rating categories, ordered from most to least consistent.
const (
	RatingVeryConsistent   = "very-consistent"
	RatingConsistent       = "consistent"
	RatingModerate         = "moderate"
	RatingInconsistent     = "inconsistent"
	RatingVeryInconsistent = "very-inconsistent"
)

// DamageStats describes the per-combat total-damage distribution.
type DamageStats struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	P25      float64 `json:"p25"`
	P50      float64 `json:"p50"`
	P75      float64 `json:"p75"`
	P90      float64 `json:"p90"`
	P95      float64 `json:"p95"`
	P99      float64 `json:"p99"`
	CV       float64 `json:"coefficient_of_variation"`
	IQR      float64 `json:"interquartile_range"`
}

// ConsistencyMetrics classifies the distribution's dispersion.
type ConsistencyMetrics struct {
	Rating            string  `json:"rating"`
	StabilityIndex    float64 `json:"stability_index"`
	OutlierCount      int     `json:"outlier_count"`
	OutlierPercentage float64 `json:"outlier_percentage"`
}

// MechanicStats summarizes hemorrhage triggering across the batch. Present
// only when at least one combat recorded at least one trigger.
type MechanicStats struct {
	TriggerFrequency        float64     `json:"trigger_frequency"`
	TriggerRate             float64     `json:"trigger_rate"`
	AvgRoundsToFirstTrigger float64     `json:"avg_rounds_to_first_trigger"`
	AvgDamagePerTrigger     float64     `json:"avg_damage_per_trigger"`
	TriggerHistogram        map[int]int `json:"trigger_histogram"`
}

// Analysis is derived fresh from an immutable combat-result list on each call.
type Analysis struct {
	Combats     int                `json:"combats"`
	Damage      DamageStats        `json:"damage"`
	Consistency ConsistencyMetrics `json:"consistency"`
	Hemorrhage  *MechanicStats     `json:"hemorrhage,omitempty"`
}

// Analyze computes distribution statistics over a non-empty result list.
func Analyze(results []*app.CombatResult) (*Analysis, error) {
	if len(results) == 0 {
		return nil, &app.EmptyInputError{Op: "analyze combat results"}
	}

	samples := make([]float64, len(results))
	for i, result := range results {
		samples[i] = float64(result.TotalDamage)
	}

	damage := computeDamageStats(samples)
	analysis := &Analysis{
		Combats:     len(results),
		Damage:      damage,
		Consistency: computeConsistency(samples, damage),
		Hemorrhage:  computeMechanicStats(results),
	}

	log.Debug().
		Int("combats", analysis.Combats).
		Float64("mean_damage", damage.Mean).
		Str("consistency", analysis.Consistency.Rating).
		Msg("Analyzed combat results")

	return analysis, nil
}

func computeDamageStats(samples []float64) DamageStats {
	n := len(samples)

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(n)

	// Population variance: divide by N.
	var acc float64
	for _, v := range samples {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)
	stddev := math.Sqrt(variance)

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	cv := 0.0
	if mean != 0 {
		cv = stddev / mean
	}

	p25 := percentile(sorted, 0.25)
	p75 := percentile(sorted, 0.75)

	return DamageStats{
		Mean:     mean,
		Variance: variance,
		StdDev:   stddev,
		Min:      sorted[0],
		Max:      sorted[n-1],
		P25:      p25,
		P50:      percentile(sorted, 0.50),
		P75:      p75,
		P90:      percentile(sorted, 0.90),
		P95:      percentile(sorted, 0.95),
		P99:      percentile(sorted, 0.99),
		CV:       cv,
		IQR:      p75 - p25,
	}
}

// percentile interpolates linearly between order statistics at p*(n-1).
// The input must already be sorted.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	if i+1 >= n {
		return sorted[i]
	}
	return sorted[i]*(1-frac) + sorted[i+1]*frac
}

func computeConsistency(samples []float64, damage DamageStats) ConsistencyMetrics {
	outliers := 0
	for _, v := range samples {
		if math.Abs(v-damage.Mean) > 2*damage.StdDev {
			outliers++
		}
	}

	stability := 1.0 / (1.0 + damage.CV)
	if stability > 1 {
		stability = 1
	}

	return ConsistencyMetrics{
		Rating:            RatingForCV(damage.CV),
		StabilityIndex:    stability,
		OutlierCount:      outliers,
		OutlierPercentage: float64(outliers) / float64(len(samples)) * 100,
	}
}

// RatingForCV classifies a coefficient of variation into a consistency
// category.
func RatingForCV(cv float64) string {
	switch {
	case cv < 0.1:
		return RatingVeryConsistent
	case cv < 0.2:
		return RatingConsistent
	case cv < 0.4:
		return RatingModerate
	case cv < 0.6:
		return RatingInconsistent
	default:
		return RatingVeryInconsistent
	}
}

// ratingRank orders categories for comparisons; lower is more consistent.
func ratingRank(rating string) int {
	switch rating {
	case RatingVeryConsistent:
		return 0
	case RatingConsistent:
		return 1
	case RatingModerate:
		return 2
	case RatingInconsistent:
		return 3
	default:
		return 4
	}
}

// computeMechanicStats returns nil when no combat triggered the mechanic;
// the section is absent, not zeroed. Rounds-to-first-trigger averages only
// over triggering combats rather than treating the rest as infinite.
func computeMechanicStats(results []*app.CombatResult) *MechanicStats {
	totalTriggers := 0
	combatsWithTrigger := 0
	firstRoundSum := 0
	totalTriggerDamage := 0
	histogram := make(map[int]int)

	for _, result := range results {
		totalTriggers += result.HemorrhageTriggers
		totalTriggerDamage += result.HemorrhageDamage
		histogram[result.HemorrhageTriggers]++
		if result.HemorrhageTriggers > 0 {
			combatsWithTrigger++
			firstRoundSum += result.FirstHemorrhageRound
		}
	}

	if totalTriggers == 0 {
		return nil
	}

	combats := float64(len(results))
	return &MechanicStats{
		TriggerFrequency:        float64(totalTriggers) / combats,
		TriggerRate:             float64(combatsWithTrigger) / combats,
		AvgRoundsToFirstTrigger: float64(firstRoundSum) / float64(combatsWithTrigger),
		AvgDamagePerTrigger:     float64(totalTriggerDamage) / float64(totalTriggers),
		TriggerHistogram:        histogram,
	}
}
