// Package dice centralizes dice-expression parsing and rolling. Weapon damage,
// class features, and hemorrhage proc damage all share the same parser and the
// same critical-doubling policy.
package dice

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"dnd_weapon_stats/internal/app"
)

// Expression is a parsed "NdM+K" dice term.
type Expression struct {
	Count int
	Sides int
	Flat  int
}

var exprPattern = regexp.MustCompile(`^(?:(\d*)[dD](\d+))?([+-]\d+)?$`)

// Parse parses an "NdM", "NdM+K", "dM", or plain "K" expression. A malformed
// expression is a ConfigurationFault: these strings come from definition
// files, and a bad one recurs in every combat.
func Parse(s string) (Expression, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if compact == "" {
		return Expression{}, app.Configf("empty dice expression")
	}

	// A bare integer is a flat-only expression.
	if flat, err := strconv.Atoi(compact); err == nil {
		return Expression{Flat: flat}, nil
	}

	match := exprPattern.FindStringSubmatch(compact)
	if match == nil || match[2] == "" {
		return Expression{}, app.Configf("malformed dice expression %q", s)
	}

	count := 1
	if match[1] != "" {
		parsed, err := strconv.Atoi(match[1])
		if err != nil || parsed <= 0 {
			return Expression{}, app.Configf("malformed dice count in %q", s)
		}
		count = parsed
	}

	sides, err := strconv.Atoi(match[2])
	if err != nil || sides <= 0 {
		return Expression{}, app.Configf("malformed die size in %q", s)
	}

	flat := 0
	if match[3] != "" {
		flat, err = strconv.Atoi(match[3])
		if err != nil {
			return Expression{}, app.Configf("malformed flat bonus in %q", s)
		}
	}

	return Expression{Count: count, Sides: sides, Flat: flat}, nil
}

// Roll rolls the expression with the provided random stream.
func (e Expression) Roll(rng *rand.Rand) int {
	total := e.Flat
	for i := 0; i < e.Count; i++ {
		total += rng.Intn(e.Sides) + 1
	}
	return total
}

// CriticalAdjust applies the critical-hit policy: a critical doubles the dice
// COUNT only, never the flat bonus. Kept as the single policy point so weapon
// dice, feature dice, and counter dice cannot drift apart.
func (e Expression) CriticalAdjust(critical bool) Expression {
	if critical {
		e.Count *= 2
	}
	return e
}

// D20 rolls a single d20.
func D20(rng *rand.Rand) int {
	return rng.Intn(20) + 1
}

// D20Advantage rolls twice and keeps the higher die.
func D20Advantage(rng *rand.Rand) int {
	first, second := D20(rng), D20(rng)
	if second > first {
		return second
	}
	return first
}

// D20Disadvantage rolls twice and keeps the lower die.
func D20Disadvantage(rng *rand.Rand) int {
	first, second := D20(rng), D20(rng)
	if second < first {
		return second
	}
	return first
}
