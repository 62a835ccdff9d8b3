package time

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

const monthNameAlt = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`

const weekdayNameAlt = `monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
	`mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun`

const ordinalWordAlt = `first|second|third|fourth|fifth`

var ordinalWordRank = map[string]int{"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5}

// reMonthDay matches "march 15", "march 15th", "15 march", "march 15 2024".
var reMonthDay = regexp.MustCompile(`(?i)\b(?:(` + monthNameAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?|(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNameAlt + `))(?:\s*,?\s*(\d{4}))?\b`)

// reMonthDayRange matches "march 15 to april 2", "march 15 through april 2".
var reMonthDayRange = regexp.MustCompile(`(?i)\b(` + monthNameAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?\s*(?:-|to|through|thru)\s*(` + monthNameAlt + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

// reNextLastWeekday matches "next monday", "last friday", "this tuesday".
var reNextLastWeekday = regexp.MustCompile(`(?i)\b(next|last|past|previous|this)\s+(` + weekdayNameAlt + `)\b`)

// reBareWeekday matches a bare weekday name with no next/last prefix.
var reBareWeekday = regexp.MustCompile(`(?i)\b(` + weekdayNameAlt + `)\b`)

// reNthWeekdayOfMonth matches "last monday of november 2024", "first
// friday of june", "3rd tuesday of october".
var reNthWeekdayOfMonth = regexp.MustCompile(`(?i)\b(last|first|` + ordinalWordAlt + `|\d)(?:st|nd|rd|th)?\s+(` + weekdayNameAlt + `)\s+of\s+(` + monthNameAlt + `)(?:\s+(\d{4}))?\b`)

func monthByWord(s string) (int, bool) {
	m, ok := monthByName[strings.ToLower(s)]
	return m, ok
}

func monthDayProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 6 {
		return engine.Token{}, false
	}
	var month, day int
	var ok2 bool
	if m.Groups[1] != "" {
		month, ok2 = monthByWord(m.Groups[1])
		if !ok2 {
			return engine.Token{}, false
		}
		d, err := strconv.Atoi(m.Groups[2])
		if err != nil {
			return engine.Token{}, false
		}
		day = d
	} else {
		d, err := strconv.Atoi(m.Groups[3])
		if err != nil {
			return engine.Token{}, false
		}
		day = d
		month, ok2 = monthByWord(m.Groups[4])
		if !ok2 {
			return engine.Token{}, false
		}
	}
	if day < 1 || day > 31 {
		return engine.Token{}, false
	}
	if m.Groups[5] != "" {
		year, err := strconv.Atoi(m.Groups[5])
		if err != nil {
			return engine.Token{}, false
		}
		return timeToken(timeexpr.Absolute{Year: year, Month: month, Day: day}), true
	}
	return timeToken(timeexpr.MonthDay{Month: month, Day: day}), true
}

func monthDayRangeProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 5 {
		return engine.Token{}, false
	}
	fromMonth, ok1 := monthByWord(m.Groups[1])
	toMonth, ok2 := monthByWord(m.Groups[3])
	if !ok1 || !ok2 {
		return engine.Token{}, false
	}
	fromDay, err := strconv.Atoi(m.Groups[2])
	if err != nil {
		return engine.Token{}, false
	}
	toDay, err := strconv.Atoi(m.Groups[4])
	if err != nil {
		return engine.Token{}, false
	}
	from := timeexpr.MonthDay{Month: fromMonth, Day: fromDay}
	to := timeexpr.MonthDay{Month: toMonth, Day: toDay}
	return timeToken(timeexpr.IntervalBetween{From: from, To: resolveRangeEndHour(false, to)}), true
}

func nextLastWeekdayProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 3 {
		return engine.Token{}, false
	}
	weekday, known := weekdayByName[strings.ToLower(m.Groups[2])]
	if !known {
		return engine.Token{}, false
	}
	switch strings.ToLower(m.Groups[1]) {
	case "next":
		return timeToken(timeexpr.ClosestWeekdayTo{N: 1, Weekday: weekday, Target: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: 1, Grain: timeexpr.Day}}), true
	case "last", "past", "previous":
		return timeToken(timeexpr.ClosestWeekdayTo{N: 1, Weekday: weekday, Target: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: -1, Grain: timeexpr.Day}}), true
	default: // "this"
		return timeToken(timeexpr.Intersect{Expr: timeexpr.IntervalOf{Expr: timeexpr.Reference{}, Grain: timeexpr.Week}, Constraint: timeexpr.DayOfWeek(weekday)}), true
	}
}

func bareWeekdayProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 2 {
		return engine.Token{}, false
	}
	weekday, known := weekdayByName[strings.ToLower(m.Groups[1])]
	if !known {
		return engine.Token{}, false
	}
	return timeToken(timeexpr.Intersect{Expr: timeexpr.IntervalOf{Expr: timeexpr.Reference{}, Grain: timeexpr.Day}, Constraint: timeexpr.DayOfWeek(weekday)}), true
}

func ordinalRank(s string) (int, bool) {
	s = strings.ToLower(s)
	if s == "last" {
		return -1, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if n, ok := ordinalWordRank[s]; ok {
		return n, true
	}
	return 0, false
}

func nthWeekdayOfMonthProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 5 {
		return engine.Token{}, false
	}
	rank, ok := ordinalRank(m.Groups[1])
	if !ok {
		return engine.Token{}, false
	}
	weekday, known := weekdayByName[strings.ToLower(m.Groups[2])]
	if !known {
		return engine.Token{}, false
	}
	month, ok := monthByWord(m.Groups[3])
	if !ok {
		return engine.Token{}, false
	}
	year := timeexpr.YearUnspecified()
	if m.Groups[4] != "" {
		y, err := strconv.Atoi(m.Groups[4])
		if err != nil {
			return engine.Token{}, false
		}
		year = timeexpr.YearAbsolute(y)
	}
	if rank == -1 {
		return timeToken(timeexpr.LastWeekdayOfMonth{Year: year, Month: month, Weekday: weekday}), true
	}
	return timeToken(timeexpr.NthWeekdayOfMonth{N: rank, Year: year, Month: month, Weekday: weekday}), true
}

func calendarRules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "time/month-day-range",
			Pattern:  []engine.Pattern{engine.RegexPattern(reMonthDayRange)},
			Produce:  monthDayRangeProduce,
			Buckets:  engine.Monthish | engine.HasDigits,
			Priority: 12,
		},
		{
			Name:     "time/nth-weekday-of-month",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNthWeekdayOfMonth)},
			Produce:  nthWeekdayOfMonthProduce,
			Buckets:  engine.Monthish | engine.Weekdayish,
			Priority: 12,
			Optional: []string{"of"},
		},
		{
			Name:     "time/month-day",
			Pattern:  []engine.Pattern{engine.RegexPattern(reMonthDay)},
			Produce:  monthDayProduce,
			Buckets:  engine.Monthish,
			Priority: 10,
		},
		{
			Name:     "time/next-last-weekday",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNextLastWeekday)},
			Produce:  nextLastWeekdayProduce,
			Buckets:  engine.Weekdayish,
			Optional: []string{"next", "last", "this"},
			Priority: 9,
		},
		{
			Name:     "time/bare-weekday",
			Pattern:  []engine.Pattern{engine.RegexPattern(reBareWeekday)},
			Produce:  bareWeekdayProduce,
			Buckets:  engine.Weekdayish,
			Priority: 5,
		},
	}
}
