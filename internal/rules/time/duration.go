package time

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

const unitAlt = `seconds?|secs?|minutes?|mins?|hours?|hrs?|days?|weeks?|months?|quarters?|years?`

// reInDuration matches "in 2 hours" and "in 1.5 days": "in" followed by
// a digit amount and a unit. No rule in this corpus matches "in" with a
// spelled-out amount ("in a couple of days", "in 2 and a half hours").
var reInDuration = regexp.MustCompile(`(?i)\bin\s+(\d+(?:\.\d+)?)\s+(` + unitAlt + `)\b`)

// reFromNowSuffix and reAgoSuffix are the second half of a two-step
// composition: a Numeral node from internal/rules/numeral followed
// immediately (allowing for whitespace) by a unit and a direction
// keyword. Anchoring at position 0 of the remaining input is what ties
// the match to right after the numeral's span.
var reFromNowSuffix = regexp.MustCompile(`(?i)^\s*(` + unitAlt + `)\s+from\s+now\b`)
var reAgoSuffix = regexp.MustCompile(`(?i)^\s*(` + unitAlt + `)\s+ago\b`)
var reHenceSuffix = regexp.MustCompile(`(?i)^\s*(` + unitAlt + `)\s+(?:hence|later)\b`)

func isNumeralToken(t engine.Token) bool { return t.Dim == engine.DimNumeral }

// splitFractional converts a non-integer amount into an integer amount
// of the next finer grain (2.5 hours -> 150 minutes), since Shift only
// carries a whole-number Amount. Integer amounts pass through
// unchanged at their original grain.
func splitFractional(value float64, grain timeexpr.Grain) (int, timeexpr.Grain) {
	if value == math.Trunc(value) {
		return int(value), grain
	}
	switch grain {
	case timeexpr.Hour:
		return int(math.Round(value * 60)), timeexpr.Minute
	case timeexpr.Day:
		return int(math.Round(value * 24)), timeexpr.Hour
	case timeexpr.Week:
		return int(math.Round(value * 7)), timeexpr.Day
	case timeexpr.Minute:
		return int(math.Round(value * 60)), timeexpr.Second
	default:
		return int(math.Round(value)), grain
	}
}

func grainFromUnitWord(s string) (timeexpr.Grain, bool) {
	g, ok := unitGrain[strings.ToLower(s)]
	return g, ok
}

func inDurationProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 3 {
		return engine.Token{}, false
	}
	value, err := strconv.ParseFloat(m.Groups[1], 64)
	if err != nil {
		return engine.Token{}, false
	}
	grain, known := grainFromUnitWord(m.Groups[2])
	if !known {
		return engine.Token{}, false
	}
	amount, grain := splitFractional(value, grain)
	return timeToken(timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: amount, Grain: grain}), true
}

func numeralValue(t engine.Token) (float64, bool) {
	k, ok := t.Kind.(engine.NumeralKind)
	if !ok {
		return 0, false
	}
	return k.Numeral.Value, true
}

func shiftComposeProduce(sign int) func([]engine.Token) (engine.Token, bool) {
	return func(tokens []engine.Token) (engine.Token, bool) {
		if len(tokens) < 2 {
			return engine.Token{}, false
		}
		value, ok := numeralValue(tokens[0])
		if !ok {
			return engine.Token{}, false
		}
		m, ok := tokens[1].Kind.(engine.RegexMatchKind)
		if !ok || len(m.Groups) < 2 {
			return engine.Token{}, false
		}
		grain, known := grainFromUnitWord(m.Groups[1])
		if !known {
			return engine.Token{}, false
		}
		amount, grain := splitFractional(value, grain)
		return timeToken(timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: sign * amount, Grain: grain}), true
	}
}

func durationRules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "time/in-duration",
			Pattern:  []engine.Pattern{engine.RegexPattern(reInDuration)},
			Produce:  inDurationProduce,
			Buckets:  engine.HasDigits,
			Optional: []string{"in"},
			Priority: 10,
		},
		{
			Name: "time/duration-from-now",
			Pattern: []engine.Pattern{
				engine.PredicatePattern(isNumeralToken),
				engine.RegexPattern(reFromNowSuffix),
			},
			Produce:  shiftComposeProduce(1),
			Deps:     engine.DimSetNumeral,
			Optional: []string{"from"},
			Priority: 11,
		},
		{
			Name: "time/duration-ago",
			Pattern: []engine.Pattern{
				engine.PredicatePattern(isNumeralToken),
				engine.RegexPattern(reAgoSuffix),
			},
			Produce:  shiftComposeProduce(-1),
			Deps:     engine.DimSetNumeral,
			Optional: []string{"ago"},
			Priority: 11,
		},
		{
			Name: "time/duration-hence",
			Pattern: []engine.Pattern{
				engine.PredicatePattern(isNumeralToken),
				engine.RegexPattern(reHenceSuffix),
			},
			Produce:  shiftComposeProduce(1),
			Deps:     engine.DimSetNumeral,
			Optional: []string{"hence"},
			Priority: 11,
		},
	}
}
