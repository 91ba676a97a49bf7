package analysis

import (
	"errors"
	"math"
	"testing"

	"dnd_weapon_stats/internal/app"
)

func resultsWithDamage(damages ...int) []*app.CombatResult {
	results := make([]*app.CombatResult, len(damages))
	for i, damage := range damages {
		results[i] = &app.CombatResult{CombatID: i, TotalDamage: damage}
	}
	return results
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := Analyze(nil)
	if err == nil {
		t.Fatal("Expected error for empty input")
	}
	var empty *app.EmptyInputError
	if !errors.As(err, &empty) {
		t.Errorf("Expected EmptyInputError, got %v", err)
	}
}

func TestConstantSamples(t *testing.T) {
	analysis, err := Analyze(resultsWithDamage(42, 42, 42, 42, 42))
	if err != nil {
		t.Fatal(err)
	}

	if analysis.Damage.Mean != 42 {
		t.Errorf("Expected mean 42, got %v", analysis.Damage.Mean)
	}
	if analysis.Damage.Variance != 0 || analysis.Damage.StdDev != 0 {
		t.Errorf("Constant samples must have zero variance, got %+v", analysis.Damage)
	}
	if analysis.Damage.CV != 0 {
		t.Errorf("Expected CV 0, got %v", analysis.Damage.CV)
	}
	if analysis.Consistency.Rating != RatingVeryConsistent {
		t.Errorf("Expected very-consistent rating, got %s", analysis.Consistency.Rating)
	}
	if analysis.Consistency.StabilityIndex != 1 {
		t.Errorf("Expected stability index 1, got %v", analysis.Consistency.StabilityIndex)
	}
	if analysis.Damage.P50 != 42 || analysis.Damage.IQR != 0 {
		t.Errorf("Unexpected percentile values: %+v", analysis.Damage)
	}
}

func TestSingleSample(t *testing.T) {
	analysis, err := Analyze(resultsWithDamage(17))
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Damage.Mean != 17 || analysis.Damage.Min != 17 || analysis.Damage.Max != 17 {
		t.Errorf("Single-sample stats wrong: %+v", analysis.Damage)
	}
}

func TestMedianOddAndEven(t *testing.T) {
	odd, err := Analyze(resultsWithDamage(5, 1, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(odd.Damage.P50, 3) {
		t.Errorf("Odd-count median expected 3, got %v", odd.Damage.P50)
	}

	even, err := Analyze(resultsWithDamage(4, 1, 3, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(even.Damage.P50, 2.5) {
		t.Errorf("Even-count median expected 2.5, got %v", even.Damage.P50)
	}
}

func TestPercentileInterpolation(t *testing.T) {
	// Samples 0..100: p between order statistics at p*(n-1).
	damages := make([]int, 101)
	for i := range damages {
		damages[i] = i
	}
	analysis, err := Analyze(resultsWithDamage(damages...))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(analysis.Damage.P25, 25) || !almostEqual(analysis.Damage.P75, 75) {
		t.Errorf("Quartiles wrong: p25=%v p75=%v", analysis.Damage.P25, analysis.Damage.P75)
	}
	if !almostEqual(analysis.Damage.IQR, 50) {
		t.Errorf("IQR expected 50, got %v", analysis.Damage.IQR)
	}
	if !almostEqual(analysis.Damage.P90, 90) {
		t.Errorf("p90 expected 90, got %v", analysis.Damage.P90)
	}
}

func TestPopulationVariance(t *testing.T) {
	// Samples 2 and 4: mean 3, population variance ((1)+(1))/2 = 1.
	analysis, err := Analyze(resultsWithDamage(2, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(analysis.Damage.Variance, 1) {
		t.Errorf("Population variance expected 1, got %v", analysis.Damage.Variance)
	}
	if !almostEqual(analysis.Damage.StdDev, 1) {
		t.Errorf("StdDev expected 1, got %v", analysis.Damage.StdDev)
	}
	expectedCV := 1.0 / 3.0
	if !almostEqual(analysis.Damage.CV, expectedCV) {
		t.Errorf("CV expected %v, got %v", expectedCV, analysis.Damage.CV)
	}
}

func TestRatingForCV(t *testing.T) {
	tests := []struct {
		cv       float64
		expected string
	}{
		{0.0, RatingVeryConsistent},
		{0.09, RatingVeryConsistent},
		{0.1, RatingConsistent},
		{0.19, RatingConsistent},
		{0.2, RatingModerate},
		{0.39, RatingModerate},
		{0.4, RatingInconsistent},
		{0.59, RatingInconsistent},
		{0.6, RatingVeryInconsistent},
		{2.5, RatingVeryInconsistent},
	}

	for _, tt := range tests {
		if got := RatingForCV(tt.cv); got != tt.expected {
			t.Errorf("RatingForCV(%v) = %s, expected %s", tt.cv, got, tt.expected)
		}
	}
}

func TestOutlierDetection(t *testing.T) {
	// 18 samples of 100 with two extremes pushes the extremes past 2 stddev.
	damages := make([]int, 0, 20)
	for i := 0; i < 18; i++ {
		damages = append(damages, 100)
	}
	damages = append(damages, 300, 320)

	analysis, err := Analyze(resultsWithDamage(damages...))
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Consistency.OutlierCount != 2 {
		t.Errorf("Expected 2 outliers, got %d", analysis.Consistency.OutlierCount)
	}
	if !almostEqual(analysis.Consistency.OutlierPercentage, 10) {
		t.Errorf("Expected 10%% outliers, got %v", analysis.Consistency.OutlierPercentage)
	}
}

func TestMechanicStatsAbsentWithoutTriggers(t *testing.T) {
	analysis, err := Analyze(resultsWithDamage(10, 20, 30))
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Hemorrhage != nil {
		t.Errorf("Expected absent mechanic section, got %+v", analysis.Hemorrhage)
	}
}

func TestMechanicStats(t *testing.T) {
	results := []*app.CombatResult{
		{CombatID: 0, TotalDamage: 50, HemorrhageTriggers: 2, FirstHemorrhageRound: 3, HemorrhageDamage: 40},
		{CombatID: 1, TotalDamage: 60},
		{CombatID: 2, TotalDamage: 70, HemorrhageTriggers: 1, FirstHemorrhageRound: 5, HemorrhageDamage: 14},
		{CombatID: 3, TotalDamage: 80},
	}

	analysis, err := Analyze(results)
	if err != nil {
		t.Fatal(err)
	}
	stats := analysis.Hemorrhage
	if stats == nil {
		t.Fatal("Expected mechanic stats section")
	}

	if !almostEqual(stats.TriggerFrequency, 0.75) {
		t.Errorf("Trigger frequency expected 0.75, got %v", stats.TriggerFrequency)
	}
	if !almostEqual(stats.TriggerRate, 0.5) {
		t.Errorf("Trigger rate expected 0.5, got %v", stats.TriggerRate)
	}
	// Averaged over the two triggering combats only, not treated as infinite.
	if !almostEqual(stats.AvgRoundsToFirstTrigger, 4) {
		t.Errorf("Avg rounds to first trigger expected 4, got %v", stats.AvgRoundsToFirstTrigger)
	}
	if !almostEqual(stats.AvgDamagePerTrigger, 18) {
		t.Errorf("Avg damage per trigger expected 18, got %v", stats.AvgDamagePerTrigger)
	}
	if stats.TriggerHistogram[0] != 2 || stats.TriggerHistogram[1] != 1 || stats.TriggerHistogram[2] != 1 {
		t.Errorf("Unexpected histogram: %v", stats.TriggerHistogram)
	}
}
