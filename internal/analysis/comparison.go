package analysis

import "math"

// Comparison diffs two analyses of the same scenario, typically two weapons
// run under an identical seed and advantage schedule.
type Comparison struct {
	MeanDifference    float64 `json:"mean_difference"`     // b minus a
	MeanDifferencePct float64 `json:"mean_difference_pct"` // relative to a
	ConfidenceLow     float64 `json:"confidence_low"`
	ConfidenceHigh    float64 `json:"confidence_high"`
	SignificantAt95   bool    `json:"significant_at_95"`
	ConsistencyDelta  int     `json:"consistency_delta"` // category rank, b minus a
	StabilityDelta    float64 `json:"stability_delta"`
}

// Compare computes the mean difference between two analyses with a 95%
// confidence interval from pooled variance (1.96 standard errors), plus the
// consistency-category and stability-index deltas.
func Compare(a, b *Analysis) *Comparison {
	diff := b.Damage.Mean - a.Damage.Mean

	pct := 0.0
	if a.Damage.Mean != 0 {
		pct = diff / a.Damage.Mean * 100
	}

	na := float64(a.Combats)
	nb := float64(b.Combats)
	var se float64
	if na+nb > 2 {
		pooled := ((na-1)*a.Damage.Variance + (nb-1)*b.Damage.Variance) / (na + nb - 2)
		se = math.Sqrt(pooled * (1/na + 1/nb))
	}
	margin := 1.96 * se

	low := diff - margin
	high := diff + margin

	return &Comparison{
		MeanDifference:    diff,
		MeanDifferencePct: pct,
		ConfidenceLow:     low,
		ConfidenceHigh:    high,
		SignificantAt95:   low > 0 || high < 0,
		ConsistencyDelta:  ratingRank(b.Consistency.Rating) - ratingRank(a.Consistency.Rating),
		StabilityDelta:    b.Consistency.StabilityIndex - a.Consistency.StabilityIndex,
	}
}
