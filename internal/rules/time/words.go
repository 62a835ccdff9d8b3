// Package time is the rule corpus for the Time dimension: regex and
// predicate patterns producing timeexpr.Expr trees that the engine's
// saturation parser and normalizer take over from there.
package time

import (
	"strconv"
	"strings"
	gotime "time"

	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

var weekdayByName = map[string]gotime.Weekday{
	"monday": gotime.Monday, "mon": gotime.Monday,
	"tuesday": gotime.Tuesday, "tue": gotime.Tuesday, "tues": gotime.Tuesday,
	"wednesday": gotime.Wednesday, "wed": gotime.Wednesday,
	"thursday": gotime.Thursday, "thu": gotime.Thursday, "thur": gotime.Thursday, "thurs": gotime.Thursday,
	"friday": gotime.Friday, "fri": gotime.Friday,
	"saturday": gotime.Saturday, "sat": gotime.Saturday,
	"sunday": gotime.Sunday, "sun": gotime.Sunday,
}

var monthByName = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

var unitGrain = map[string]timeexpr.Grain{
	"second": timeexpr.Second, "seconds": timeexpr.Second, "sec": timeexpr.Second, "secs": timeexpr.Second,
	"minute": timeexpr.Minute, "minutes": timeexpr.Minute, "min": timeexpr.Minute, "mins": timeexpr.Minute,
	"hour": timeexpr.Hour, "hours": timeexpr.Hour, "hr": timeexpr.Hour, "hrs": timeexpr.Hour,
	"day": timeexpr.Day, "days": timeexpr.Day,
	"week": timeexpr.Week, "weeks": timeexpr.Week,
	"month": timeexpr.Month, "months": timeexpr.Month,
	"quarter": timeexpr.Quarter, "quarters": timeexpr.Quarter,
	"year": timeexpr.Year, "years": timeexpr.Year,
}

// parseOrdinalDay extracts the leading integer from an ordinal day
// string like "2nd", "15th", "1st", returning false if out of range.
func parseOrdinalDay(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n < 1 || n > 31 {
		return 0, false
	}
	return n, true
}

func clampHour12(h int) int {
	if h == 0 {
		return 12
	}
	return h
}

// resolveRangeEndHour decides, for a two-endpoint range, whether the
// end side should be widened to the full day containing it. Clock-time
// endpoints ("3pm-5pm") stay bare instants; calendar endpoints with no
// time-of-day component ("march 15 to april 2") are end-inclusive by
// calendar convention, so the end day is wrapped in a Day-grain
// interval to make the half-open span cover it entirely.
func resolveRangeEndHour(toIsClockTime bool, end timeexpr.Expr) timeexpr.Expr {
	if toIsClockTime {
		return end
	}
	return timeexpr.IntervalOf{Expr: end, Grain: timeexpr.Day}
}
