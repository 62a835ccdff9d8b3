package time

import "github.com/az-ai-labs/timexpr/internal/engine"

// Rules returns the full Time-dimension rule corpus. Composition rules
// (duration-from-now/-ago/-hence) additionally depend on the Numeral
// dimension, so callers combining this with internal/rules/numeral
// should compile both lists together.
func Rules() []engine.Rule {
	var all []engine.Rule
	all = append(all, simpleRules()...)
	all = append(all, clockRules()...)
	all = append(all, calendarRules()...)
	all = append(all, durationRules()...)
	all = append(all, holidayRules()...)
	all = append(all, composeRules()...)
	return all
}
