package time

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

var holidayByPhrase = map[string]timeexpr.Holiday{
	"new year's day": timeexpr.NewYearsDay, "new years day": timeexpr.NewYearsDay,
	"mlk day": timeexpr.MLKDay, "martin luther king day": timeexpr.MLKDay, "mlk": timeexpr.MLKDay,
	"presidents day": timeexpr.PresidentsDay, "president's day": timeexpr.PresidentsDay,
	"st patrick's day": timeexpr.StPatricksDay, "st. patrick's day": timeexpr.StPatricksDay, "saint patrick's day": timeexpr.StPatricksDay,
	"earth day":        timeexpr.EarthDay,
	"memorial day":     timeexpr.MemorialDay,
	"father's day":     timeexpr.FathersDay, "fathers day": timeexpr.FathersDay,
	"mother's day": timeexpr.MothersDay, "mothers day": timeexpr.MothersDay,
	"independence day": timeexpr.IndependenceDay, "fourth of july": timeexpr.IndependenceDay, "4th of july": timeexpr.IndependenceDay,
	"labor day":   timeexpr.LaborDay,
	"columbus day": timeexpr.ColumbusDay,
	"halloween":   timeexpr.Halloween,
	"veterans day": timeexpr.VeteransDay,
	"thanksgiving": timeexpr.Thanksgiving,
	"christmas eve": timeexpr.ChristmasEve,
	"christmas":    timeexpr.Christmas,
	"xmas":         timeexpr.Christmas,
	"new year's eve": timeexpr.NewYearsEve, "new years eve": timeexpr.NewYearsEve,
	"boss day":     timeexpr.BossDay,
	"black friday": timeexpr.BlackFriday,
}

// holidayPhraseAlt is built from holidayByPhrase's keys, longest first
// so the regex alternation prefers "christmas eve" over "christmas".
var reHoliday = regexp.MustCompile(`(?i)\b(` + holidayPhraseAlt() + `)\b(?:\s+(?:of\s+|in\s+)?(\d{4}))?`)

func holidayPhraseAlt() string {
	phrases := make([]string, 0, len(holidayByPhrase))
	for p := range holidayByPhrase {
		phrases = append(phrases, regexp.QuoteMeta(p))
	}
	// Longest-first so "christmas eve" matches before the shorter
	// "christmas" alternative wins the leftmost-first race.
	for i := 1; i < len(phrases); i++ {
		for j := i; j > 0 && len(phrases[j-1]) < len(phrases[j]); j-- {
			phrases[j-1], phrases[j] = phrases[j], phrases[j-1]
		}
	}
	result := ""
	for i, p := range phrases {
		if i > 0 {
			result += "|"
		}
		result += p
	}
	return result
}

func holidayProduce(tokens []engine.Token) (engine.Token, bool) {
	m, ok := tokens[0].Kind.(engine.RegexMatchKind)
	if !ok || len(m.Groups) < 3 {
		return engine.Token{}, false
	}
	holiday, known := holidayByPhrase[strings.ToLower(m.Groups[1])]
	if !known {
		return engine.Token{}, false
	}
	year := timeexpr.YearUnspecified()
	if m.Groups[2] != "" {
		y, err := strconv.Atoi(m.Groups[2])
		if err != nil {
			return engine.Token{}, false
		}
		year = timeexpr.YearAbsolute(y)
	}
	return timeToken(timeexpr.HolidayExpr{Holiday: holiday, Year: year}), true
}

func holidayRules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "time/holiday",
			Pattern:  []engine.Pattern{engine.RegexPattern(reHoliday)},
			Produce:  holidayProduce,
			Priority: 10,
		},
	}
}
