package analysis

import (
	"math"
	"testing"
)

func TestCompareIdenticalAnalyses(t *testing.T) {
	analysis, err := Analyze(resultsWithDamage(10, 20, 30, 40))
	if err != nil {
		t.Fatal(err)
	}

	comparison := Compare(analysis, analysis)
	if comparison.MeanDifference != 0 || comparison.MeanDifferencePct != 0 {
		t.Errorf("Identical analyses must have zero mean difference: %+v", comparison)
	}
	if comparison.SignificantAt95 {
		t.Error("Zero difference cannot be significant")
	}
	if comparison.ConsistencyDelta != 0 || comparison.StabilityDelta != 0 {
		t.Errorf("Identical analyses must have zero consistency deltas: %+v", comparison)
	}
}

func TestCompareKnownValues(t *testing.T) {
	a := &Analysis{
		Combats:     100,
		Damage:      DamageStats{Mean: 100, Variance: 400},
		Consistency: ConsistencyMetrics{Rating: RatingConsistent, StabilityIndex: 0.8},
	}
	b := &Analysis{
		Combats:     100,
		Damage:      DamageStats{Mean: 110, Variance: 400},
		Consistency: ConsistencyMetrics{Rating: RatingModerate, StabilityIndex: 0.7},
	}

	comparison := Compare(a, b)
	if comparison.MeanDifference != 10 {
		t.Errorf("Expected mean difference 10, got %v", comparison.MeanDifference)
	}
	if math.Abs(comparison.MeanDifferencePct-10) > 1e-9 {
		t.Errorf("Expected 10%% difference, got %v", comparison.MeanDifferencePct)
	}

	// Pooled variance 400, SE = sqrt(400 * 2/100) = sqrt(8); margin = 1.96*SE.
	margin := 1.96 * math.Sqrt(8)
	if math.Abs(comparison.ConfidenceLow-(10-margin)) > 1e-9 {
		t.Errorf("Confidence low expected %v, got %v", 10-margin, comparison.ConfidenceLow)
	}
	if math.Abs(comparison.ConfidenceHigh-(10+margin)) > 1e-9 {
		t.Errorf("Confidence high expected %v, got %v", 10+margin, comparison.ConfidenceHigh)
	}
	if !comparison.SignificantAt95 {
		t.Error("Interval excluding zero must be significant")
	}

	if comparison.ConsistencyDelta != 1 {
		t.Errorf("Expected consistency delta +1, got %d", comparison.ConsistencyDelta)
	}
	if math.Abs(comparison.StabilityDelta+0.1) > 1e-9 {
		t.Errorf("Expected stability delta -0.1, got %v", comparison.StabilityDelta)
	}
}

func TestCompareInsignificantDifference(t *testing.T) {
	a := &Analysis{Combats: 10, Damage: DamageStats{Mean: 100, Variance: 10000}}
	b := &Analysis{Combats: 10, Damage: DamageStats{Mean: 102, Variance: 10000}}

	comparison := Compare(a, b)
	if comparison.SignificantAt95 {
		t.Error("A 2-point difference with huge variance cannot be significant")
	}
	if comparison.ConfidenceLow > 0 || comparison.ConfidenceHigh < 0 {
		t.Errorf("Interval should straddle zero: [%v, %v]", comparison.ConfidenceLow, comparison.ConfidenceHigh)
	}
}
