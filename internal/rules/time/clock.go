package time

import (
	"regexp"
	"strconv"
	gotime "time"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

// reClockAMPM matches "3pm", "3:30pm", "3:30 p.m.", case-insensitively.
var reClockAMPM = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\b`)

// reClock24 matches bare 24-hour clock times: "15:00", "09:05:30".
var reClock24 = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?\b`)

// reAmbiguousClock matches a bare hour with no AM/PM marker, gated by
// "at" so "meet at 3" triggers but a lone "3" does not.
var reAmbiguousClock = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\b`)

// reClockRange matches two clock-with-meridiem expressions joined by a
// dash or "to"/"through": "3pm-5pm", "3pm to 5pm".
var reClockRange = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\s*(?:-|to|through|thru)\s*(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\b`)

func timeOfDayConstraint(hour, minute int) timeexpr.Constraint {
	return timeexpr.TimeOfDay(gotime.Date(0, 1, 1, hour, minute, 0, 0, gotime.UTC))
}

func clockAMPMProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 4 {
		return engine.Token{}, false
	}
	hour, err := strconv.Atoi(m.Groups[1])
	if err != nil || hour < 1 || hour > 12 {
		return engine.Token{}, false
	}
	minute := 0
	if m.Groups[2] != "" {
		minute, err = strconv.Atoi(m.Groups[2])
		if err != nil || minute > 59 {
			return engine.Token{}, false
		}
	}
	hour24 := hour % 12
	if m.Groups[3] == "p" {
		hour24 += 12
	}
	return timeToken(timeexpr.Intersect{
		Expr:       timeexpr.Reference{},
		Constraint: timeOfDayConstraint(hour24, minute),
	}), true
}

func clock24Produce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 4 {
		return engine.Token{}, false
	}
	hour, err := strconv.Atoi(m.Groups[1])
	if err != nil {
		return engine.Token{}, false
	}
	minute, err := strconv.Atoi(m.Groups[2])
	if err != nil {
		return engine.Token{}, false
	}
	return timeToken(timeexpr.Intersect{
		Expr:       timeexpr.Reference{},
		Constraint: timeOfDayConstraint(hour, minute),
	}), true
}

func ambiguousClockProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 3 {
		return engine.Token{}, false
	}
	hour, err := strconv.Atoi(m.Groups[1])
	if err != nil || hour < 1 || hour > 12 {
		return engine.Token{}, false
	}
	minute := 0
	if m.Groups[2] != "" {
		minute, err = strconv.Atoi(m.Groups[2])
		if err != nil || minute > 59 {
			return engine.Token{}, false
		}
	}
	return timeToken(timeexpr.AmbiguousTime{Hour: hour, Minute: minute}), true
}

func clockRangeProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 7 {
		return engine.Token{}, false
	}
	fromHour, err := strconv.Atoi(m.Groups[1])
	if err != nil || fromHour < 1 || fromHour > 12 {
		return engine.Token{}, false
	}
	fromMinute := 0
	if m.Groups[2] != "" {
		if fromMinute, err = strconv.Atoi(m.Groups[2]); err != nil {
			return engine.Token{}, false
		}
	}
	toHour, err := strconv.Atoi(m.Groups[4])
	if err != nil || toHour < 1 || toHour > 12 {
		return engine.Token{}, false
	}
	toMinute := 0
	if m.Groups[5] != "" {
		if toMinute, err = strconv.Atoi(m.Groups[5]); err != nil {
			return engine.Token{}, false
		}
	}
	from24 := fromHour % 12
	if m.Groups[3] == "p" {
		from24 += 12
	}
	to24 := toHour % 12
	if m.Groups[6] == "p" {
		to24 += 12
	}
	from := timeexpr.Intersect{Expr: timeexpr.Reference{}, Constraint: timeOfDayConstraint(from24, fromMinute)}
	to := timeexpr.Intersect{Expr: timeexpr.Reference{}, Constraint: timeOfDayConstraint(to24, toMinute)}
	return timeToken(timeexpr.IntervalBetween{From: from, To: resolveRangeEndHour(true, to)}), true
}

func clockRules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "time/clock-range",
			Pattern:  []engine.Pattern{engine.RegexPattern(reClockRange)},
			Produce:  clockRangeProduce,
			Buckets:  engine.HasDigits | engine.HasAMPM,
			Priority: 12,
		},
		{
			Name:     "time/clock-ampm",
			Pattern:  []engine.Pattern{engine.RegexPattern(reClockAMPM)},
			Produce:  clockAMPMProduce,
			Buckets:  engine.HasDigits | engine.HasAMPM,
			Priority: 10,
		},
		{
			Name:     "time/clock-24h",
			Pattern:  []engine.Pattern{engine.RegexPattern(reClock24)},
			Produce:  clock24Produce,
			Buckets:  engine.HasDigits | engine.HasColon,
			Priority: 9,
		},
		{
			Name:     "time/clock-ambiguous",
			Pattern:  []engine.Pattern{engine.RegexPattern(reAmbiguousClock)},
			Produce:  ambiguousClockProduce,
			Buckets:  engine.HasDigits,
			Optional: []string{"at"},
			Priority: 5,
		},
	}
}
