package analysis

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestAnalyzerProperties verifies distribution invariants over arbitrary
// sample sets.
func TestAnalyzerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: a constant sample list has mean x and zero dispersion
	properties.Property("constant list mean equals the constant", prop.ForAll(
		func(value int, count int) bool {
			damages := make([]int, count)
			for i := range damages {
				damages[i] = value
			}
			analysis, err := Analyze(resultsWithDamage(damages...))
			if err != nil {
				return false
			}
			return analysis.Damage.Mean == float64(value) &&
				analysis.Damage.Variance == 0 &&
				analysis.Damage.CV == 0
		},
		gen.IntRange(0, 10_000),
		gen.IntRange(1, 200),
	))

	// Property: min <= percentiles <= max, in order
	properties.Property("percentiles ordered within bounds", prop.ForAll(
		func(damages []int) bool {
			analysis, err := Analyze(resultsWithDamage(damages...))
			if err != nil {
				return false
			}
			d := analysis.Damage
			ordered := []float64{d.Min, d.P25, d.P50, d.P75, d.P90, d.P95, d.P99, d.Max}
			for i := 1; i < len(ordered); i++ {
				if ordered[i] < ordered[i-1] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(50, gen.IntRange(0, 500)).SuchThat(func(damages []int) bool {
			return len(damages) > 0
		}),
	))

	// Property: increasing CV never improves the consistency category
	properties.Property("higher CV never rates more consistent", prop.ForAll(
		func(cvLow, cvDelta float64) bool {
			cvHigh := cvLow + cvDelta
			return ratingRank(RatingForCV(cvHigh)) >= ratingRank(RatingForCV(cvLow))
		},
		gen.Float64Range(0, 2),
		gen.Float64Range(0, 2),
	))

	// Property: stability index is in (0, 1] and decreases as CV grows
	properties.Property("stability index bounded and monotone", prop.ForAll(
		func(spread int) bool {
			// Two-point samples centered on 100 with growing spread.
			narrow, err := Analyze(resultsWithDamage(100-spread, 100+spread))
			if err != nil {
				return false
			}
			wide, err := Analyze(resultsWithDamage(100-2*spread, 100+2*spread))
			if err != nil {
				return false
			}
			n := narrow.Consistency.StabilityIndex
			w := wide.Consistency.StabilityIndex
			return n > 0 && n <= 1 && w > 0 && w <= 1 && w <= n
		},
		gen.IntRange(0, 49),
	))

	properties.TestingRun(t)
}
