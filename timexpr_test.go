package timexpr

import (
	"testing"
	"time"
)

func referenceContext() Context {
	return Context{Reference: time.Date(2013, time.February, 12, 4, 30, 0, 0, time.UTC)}
}

func TestParseGoldenScenarios(t *testing.T) {
	cases := []struct {
		input string
		dim   Dimension
		value string
	}{
		{"today", Time, "2013-02-12 00:00:00/2013-02-13 00:00:00"},
		{"tomorrow at 3pm", Time, "2013-02-13 15:00:00"},
		{"march 15 to april 2", Time, "2013-03-15 00:00:00/2013-04-03 00:00:00"},
		{"last monday of november 2024", Time, "2024-11-25 00:00:00"},
		{"two and a half hours from now", Time, "2013-02-12 07:00:00"},
		{"3pm-5pm", Time, "2013-02-12 15:00:00/2013-02-12 17:00:00"},
		{"thanksgiving", Time, "2013-11-28 00:00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			entities, elapsed := Parse(tc.input, referenceContext())
			if elapsed < 0 {
				t.Fatalf("negative elapsed duration for %q", tc.input)
			}
			var found bool
			for _, e := range entities {
				if e.Name == tc.dim && e.Value == tc.value {
					found = true
					if e.Body != tc.input[e.Start:e.End] {
						t.Errorf("Body %q does not match input slice %q", e.Body, tc.input[e.Start:e.End])
					}
				}
			}
			if !found {
				t.Errorf("Parse(%q) = %+v, want an entity with value %q", tc.input, entities, tc.value)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	entities, _ := Parse("", referenceContext())
	if entities != nil {
		t.Errorf("Parse(\"\") = %v, want nil", entities)
	}
}

func TestParseOversizedInput(t *testing.T) {
	big := make([]byte, maxInputBytes+1)
	for i := range big {
		big[i] = 'a'
	}
	entities, _ := Parse(string(big), referenceContext())
	if entities != nil {
		t.Errorf("oversized Parse = %v, want nil", entities)
	}
}

func TestParseNoMatches(t *testing.T) {
	entities, _ := Parse("xyzzy plugh qux", referenceContext())
	if len(entities) != 0 {
		t.Errorf("Parse(no matches) = %v, want empty", entities)
	}
}

func TestVerboseParseReportsActiveRules(t *testing.T) {
	v := VerboseParse("tomorrow", referenceContext())
	if len(v.ActiveRules) == 0 {
		t.Fatalf("VerboseParse reported no active rules")
	}
	if len(v.Entities) == 0 {
		t.Fatalf("VerboseParse found no entities for %q", "tomorrow")
	}
	if len(v.AllCandidates) < len(v.Entities) {
		t.Errorf("AllCandidates (%d) should be >= filtered Entities (%d)", len(v.AllCandidates), len(v.Entities))
	}
}

func TestTimesConvenience(t *testing.T) {
	got := Times("see you tomorrow", referenceContext())
	if len(got) != 1 || got[0] != "2013-02-13 00:00:00/2013-02-14 00:00:00" {
		t.Errorf("Times(tomorrow) = %v", got)
	}
}

func TestNumeralsConvenience(t *testing.T) {
	got := Numerals("order 42 units", referenceContext())
	if len(got) != 1 || got[0] != "42" {
		t.Errorf("Numerals(42) = %v", got)
	}
}

func TestDimensionString(t *testing.T) {
	if Time.String() != "time" || Numeral.String() != "numeral" || Regex.String() != "regex" {
		t.Errorf("unexpected Dimension.String() values")
	}
}
