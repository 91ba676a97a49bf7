// Package advantage converts a scripted advantage rate into a deterministic
// per-round schedule. Two weapons compared under the same scenario see their
// favorable rolls placed in identical rounds, which removes one source of
// simulation noise from weapon-vs-weapon comparison.
package advantage

import (
	"math"

	"github.com/rs/zerolog/log"
)

// Strategy is the computed advantage schedule for one combat. It is a pure
// function of (totalRounds, rate), computed once per combat and read-only
// afterward; the random stream never influences it.
type Strategy struct {
	TotalRounds int
	Rate        float64
	Count       int
	Rounds      []int

	members map[int]bool
}

// ComputeStrategy maps (totalRounds, rate) to the exact set of rounds that
// receive advantage. The count rounds up, so the requested rate is a floor
// guarantee, and rounds are spaced evenly rather than clustered.
func ComputeStrategy(totalRounds int, rate float64) *Strategy {
	strategy := &Strategy{
		TotalRounds: totalRounds,
		Rate:        rate,
		members:     make(map[int]bool),
	}

	if totalRounds <= 0 || rate <= 0 {
		return strategy
	}

	if rate >= 1.0 {
		strategy.Count = totalRounds
		for round := 1; round <= totalRounds; round++ {
			strategy.Rounds = append(strategy.Rounds, round)
			strategy.members[round] = true
		}
		return strategy
	}

	count := int(math.Ceil(float64(totalRounds) * rate))
	interval := totalRounds / count
	for i := 0; i < count; i++ {
		round := interval * (i + 1)
		strategy.Rounds = append(strategy.Rounds, round)
		strategy.members[round] = true
	}
	strategy.Count = count

	log.Debug().
		Int("total_rounds", totalRounds).
		Float64("rate", rate).
		Ints("advantage_rounds", strategy.Rounds).
		Msg("Computed advantage strategy")

	return strategy
}

// HasAdvantage reports whether the given round is scheduled for advantage.
func (s *Strategy) HasAdvantage(round int) bool {
	return s.members[round]
}
