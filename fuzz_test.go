package timexpr

import "testing"

func FuzzParse(f *testing.F) {
	f.Add("tomorrow at 3pm")
	f.Add("march 15 to april 2")
	f.Add("two and a half hours from now")
	f.Add("last monday of november 2024")
	f.Add("thanksgiving")
	f.Add("3pm-5pm")
	f.Add("")
	f.Add("\xff\xfe")
	f.Add("next next next next week")
	f.Add("1.2M thousand million billion")

	f.Fuzz(func(t *testing.T, s string) {
		entities, _ := Parse(s, referenceContext())
		for _, e := range entities {
			if e.Start < 0 || e.End > len(s) || e.Start > e.End {
				t.Fatalf("invalid offsets: start=%d end=%d len=%d", e.Start, e.End, len(s))
			}
			if s[e.Start:e.End] != e.Body {
				t.Fatalf("invariant broken: s[%d:%d]=%q != Body=%q",
					e.Start, e.End, s[e.Start:e.End], e.Body)
			}
		}
	})
}
