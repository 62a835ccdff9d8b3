package time

import (
	"regexp"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/timeexpr"
)

var (
	reToday     = regexp.MustCompile(`(?i)\btoday\b`)
	reTomorrow  = regexp.MustCompile(`(?i)\btomorrow\b`)
	reYesterday = regexp.MustCompile(`(?i)\byesterday\b`)
	reNow       = regexp.MustCompile(`(?i)\b(right\s+)?now\b`)
	reNextWeek  = regexp.MustCompile(`(?i)\bnext\s+week\b`)
	reLastWeek  = regexp.MustCompile(`(?i)\b(last|past|previous)\s+week\b`)
	reThisWeek  = regexp.MustCompile(`(?i)\bthis\s+week\b`)
	reNextMonth = regexp.MustCompile(`(?i)\bnext\s+month\b`)
	reLastMonth = regexp.MustCompile(`(?i)\b(last|past|previous)\s+month\b`)
	reNextYear  = regexp.MustCompile(`(?i)\bnext\s+year\b`)
	reLastYear  = regexp.MustCompile(`(?i)\b(last|past|previous)\s+year\b`)
)

func timeToken(e timeexpr.Expr) engine.Token {
	return engine.Token{Dim: engine.DimTime, Kind: engine.TimeExprKind{Expr: e}}
}

func constExprProduce(e timeexpr.Expr) func([]engine.Token) (engine.Token, bool) {
	return func([]engine.Token) (engine.Token, bool) { return timeToken(e), true }
}

func simpleRules() []engine.Rule {
	return []engine.Rule{
		{
			Name:     "time/today",
			Pattern:  []engine.Pattern{engine.RegexPattern(reToday)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Reference{}, Grain: timeexpr.Day}),
			Optional: []string{"today"},
			Priority: 10,
		},
		{
			Name:     "time/tomorrow",
			Pattern:  []engine.Pattern{engine.RegexPattern(reTomorrow)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: 1, Grain: timeexpr.Day}, Grain: timeexpr.Day}),
			Optional: []string{"tomorrow"},
			Priority: 10,
		},
		{
			Name:     "time/yesterday",
			Pattern:  []engine.Pattern{engine.RegexPattern(reYesterday)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: -1, Grain: timeexpr.Day}, Grain: timeexpr.Day}),
			Optional: []string{"yesterday"},
			Priority: 10,
		},
		{
			Name:     "time/now",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNow)},
			Produce:  constExprProduce(timeexpr.Reference{}),
			Optional: []string{"now"},
			Priority: 10,
		},
		{
			Name:     "time/next-week",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNextWeek)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: 1, Grain: timeexpr.Week}, Grain: timeexpr.Week}),
			Optional: []string{"next"},
			Priority: 8,
		},
		{
			Name:     "time/last-week",
			Pattern:  []engine.Pattern{engine.RegexPattern(reLastWeek)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: -1, Grain: timeexpr.Week}, Grain: timeexpr.Week}),
			Optional: []string{"last"},
			Priority: 8,
		},
		{
			Name:     "time/this-week",
			Pattern:  []engine.Pattern{engine.RegexPattern(reThisWeek)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Reference{}, Grain: timeexpr.Week}),
			Optional: []string{"this"},
			Priority: 8,
		},
		{
			Name:     "time/next-month",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNextMonth)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: 1, Grain: timeexpr.Month}, Grain: timeexpr.Month}),
			Optional: []string{"next", "month"},
			Priority: 8,
		},
		{
			Name:     "time/last-month",
			Pattern:  []engine.Pattern{engine.RegexPattern(reLastMonth)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: -1, Grain: timeexpr.Month}, Grain: timeexpr.Month}),
			Optional: []string{"last", "month"},
			Priority: 8,
		},
		{
			Name:     "time/next-year",
			Pattern:  []engine.Pattern{engine.RegexPattern(reNextYear)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: 1, Grain: timeexpr.Year}, Grain: timeexpr.Year}),
			Optional: []string{"next", "year"},
			Priority: 8,
		},
		{
			Name:     "time/last-year",
			Pattern:  []engine.Pattern{engine.RegexPattern(reLastYear)},
			Produce:  constExprProduce(timeexpr.IntervalOf{Expr: timeexpr.Shift{Expr: timeexpr.Reference{}, Amount: -1, Grain: timeexpr.Year}, Grain: timeexpr.Year}),
			Optional: []string{"last", "year"},
			Priority: 8,
		},
	}
}
