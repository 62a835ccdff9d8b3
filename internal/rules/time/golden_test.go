package time

import (
	"testing"
	gotime "time"

	"github.com/az-ai-labs/timexpr/internal/engine"
	"github.com/az-ai-labs/timexpr/internal/rules/numeral"
)

func referenceTime() gotime.Time {
	return gotime.Date(2013, gotime.February, 12, 4, 30, 0, 0, gotime.UTC)
}

func corpus() *engine.CompiledRules {
	var all []engine.Rule
	all = append(all, numeral.Rules()...)
	all = append(all, Rules()...)
	return engine.Compile(all)
}

func firstKeptValue(t *testing.T, input string) string {
	t.Helper()
	p := engine.NewParser(input, corpus())
	p.Saturate()
	_, kept, _ := p.ResolveFiltered(referenceTime())
	for _, rn := range kept {
		if rn.Dim == engine.DimTime {
			return rn.Value
		}
	}
	t.Fatalf("no time node resolved from %q", input)
	return ""
}

func TestGoldenScenarios(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"today", "2013-02-12 00:00:00/2013-02-13 00:00:00"},
		{"tomorrow at 3pm", "2013-02-13 15:00:00"},
		{"march 15 to april 2", "2013-03-15 00:00:00/2013-04-03 00:00:00"},
		{"last monday of november 2024", "2024-11-25 00:00:00"},
		{"two and a half hours from now", "2013-02-12 07:00:00"},
		{"3pm-5pm", "2013-02-12 15:00:00/2013-02-12 17:00:00"},
		{"thanksgiving", "2013-11-28 00:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got := firstKeptValue(t, tc.input)
			if got != tc.want {
				t.Errorf("parse(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
