package time

import (
	"regexp"
	"strconv"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

// reAtClock is the second half of the "<date expression> at <clock
// time>" composition below: anchored right after the date node's
// span, consuming the connecting "at" and a clock-with-meridiem.
var reAtClock = regexp.MustCompile(`(?i)^\s*at\s+(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\b`)

func isTimeToken(t engine.Token) bool { return t.Dim == engine.DimTime }

// dateAtClockProduce intersects a previously resolved date/interval
// node (e.g. "tomorrow", "next friday") with an explicit clock time,
// the way a second saturation pass composes two independently matched
// rules into a single more specific one.
func dateAtClockProduce(tokens []engine.Token) (engine.Token, bool) {
	if len(tokens) < 2 {
		return engine.Token{}, false
	}
	k, ok := tokens[0].Kind.(engine.TimeExprKind)
	if !ok {
		return engine.Token{}, false
	}
	m, ok := tokens[1].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 4 {
		return engine.Token{}, false
	}
	hour, err := strconv.Atoi(m.Groups[1])
	if err != nil || hour < 1 || hour > 12 {
		return engine.Token{}, false
	}
	minute := 0
	if m.Groups[2] != "" {
		if minute, err = strconv.Atoi(m.Groups[2]); err != nil || minute > 59 {
			return engine.Token{}, false
		}
	}
	hour24 := hour % 12
	if m.Groups[3] == "p" {
		hour24 += 12
	}
	return timeToken(timeexpr.Intersect{
		Expr:       k.Expr,
		Constraint: timeOfDayConstraint(hour24, minute),
	}), true
}

func composeRules() []engine.Rule {
	return []engine.Rule{
		{
			Name: "time/date-at-clock",
			Pattern: []engine.Pattern{
				engine.PredicatePattern(isTimeToken),
				engine.RegexPattern(reAtClock),
			},
			Produce:  dateAtClockProduce,
			Deps:     engine.DimSetTime,
			Optional: []string{"at"},
			Priority: 15,
		},
	}
}
