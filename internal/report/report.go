// Package report formats a statistical analysis for console, CSV, or JSON
// consumers. It never influences the simulation; it only reads finished
// analyses.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"dnd_weapon_stats/internal/analysis"
)

// WriteConsole writes a human-readable summary.
func WriteConsole(w io.Writer, label string, a *analysis.Analysis) error {
	fmt.Fprintf(w, "=== %s (%d combats) ===\n", label, a.Combats)
	fmt.Fprintf(w, "Damage: mean %.2f, stddev %.2f (CV %.3f), min %.0f, max %.0f\n",
		a.Damage.Mean, a.Damage.StdDev, a.Damage.CV, a.Damage.Min, a.Damage.Max)
	fmt.Fprintf(w, "Percentiles: p25 %.1f  p50 %.1f  p75 %.1f  p90 %.1f  p95 %.1f  p99 %.1f (IQR %.1f)\n",
		a.Damage.P25, a.Damage.P50, a.Damage.P75, a.Damage.P90, a.Damage.P95, a.Damage.P99, a.Damage.IQR)
	fmt.Fprintf(w, "Consistency: %s (stability %.3f), outliers %d (%.1f%%)\n",
		a.Consistency.Rating, a.Consistency.StabilityIndex,
		a.Consistency.OutlierCount, a.Consistency.OutlierPercentage)

	if a.Hemorrhage != nil {
		fmt.Fprintf(w, "Hemorrhage: %.2f triggers/combat, %.1f%% of combats, first trigger round %.1f, %.1f damage/trigger\n",
			a.Hemorrhage.TriggerFrequency, a.Hemorrhage.TriggerRate*100,
			a.Hemorrhage.AvgRoundsToFirstTrigger, a.Hemorrhage.AvgDamagePerTrigger)
	} else {
		fmt.Fprintln(w, "Hemorrhage: no triggers recorded")
	}
	return nil
}

// WriteComparison writes a two-weapon diff.
func WriteComparison(w io.Writer, labelA, labelB string, c *analysis.Comparison) error {
	fmt.Fprintf(w, "=== %s vs %s ===\n", labelA, labelB)
	fmt.Fprintf(w, "Mean damage difference: %+.2f (%+.2f%%)\n", c.MeanDifference, c.MeanDifferencePct)
	fmt.Fprintf(w, "95%% CI: [%+.2f, %+.2f]", c.ConfidenceLow, c.ConfidenceHigh)
	if c.SignificantAt95 {
		fmt.Fprintln(w, " (significant)")
	} else {
		fmt.Fprintln(w, " (not significant)")
	}
	fmt.Fprintf(w, "Consistency delta: %+d categories, stability %+.3f\n", c.ConsistencyDelta, c.StabilityDelta)
	return nil
}

// WriteCSV writes a single header+row CSV of the analysis.
func WriteCSV(w io.Writer, label string, a *analysis.Analysis) error {
	writer := csv.NewWriter(w)

	header := []string{
		"label", "combats", "mean", "variance", "std_dev", "min", "max",
		"p25", "p50", "p75", "p90", "p95", "p99", "cv", "iqr",
		"consistency", "stability_index", "outlier_count", "outlier_pct",
		"hemorrhage_frequency", "hemorrhage_rate",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	hemoFrequency, hemoRate := 0.0, 0.0
	if a.Hemorrhage != nil {
		hemoFrequency = a.Hemorrhage.TriggerFrequency
		hemoRate = a.Hemorrhage.TriggerRate
	}

	row := []string{
		label,
		strconv.Itoa(a.Combats),
		formatFloat(a.Damage.Mean),
		formatFloat(a.Damage.Variance),
		formatFloat(a.Damage.StdDev),
		formatFloat(a.Damage.Min),
		formatFloat(a.Damage.Max),
		formatFloat(a.Damage.P25),
		formatFloat(a.Damage.P50),
		formatFloat(a.Damage.P75),
		formatFloat(a.Damage.P90),
		formatFloat(a.Damage.P95),
		formatFloat(a.Damage.P99),
		formatFloat(a.Damage.CV),
		formatFloat(a.Damage.IQR),
		a.Consistency.Rating,
		formatFloat(a.Consistency.StabilityIndex),
		strconv.Itoa(a.Consistency.OutlierCount),
		formatFloat(a.Consistency.OutlierPercentage),
		formatFloat(hemoFrequency),
		formatFloat(hemoRate),
	}
	if err := writer.Write(row); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the analysis as indented JSON.
func WriteJSON(w io.Writer, a *analysis.Analysis) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(a)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}
