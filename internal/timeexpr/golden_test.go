package timeexpr

import (
	"testing"
	"time"
)

func ref(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2013, time.February, 12, 4, 30, 0, 0, time.UTC)
}

func mustNormalize(t *testing.T, expr Expr) Value {
	t.Helper()
	v, ok := Normalize(expr, ref(t))
	if !ok {
		t.Fatalf("Normalize(%#v) returned ok=false", expr)
	}
	return v
}

func TestNormalizeGolden(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"today", IntervalOf{Expr: Reference{}, Grain: Day}, "2013-02-12 00:00:00/2013-02-13 00:00:00"},
		{
			"tomorrow at 3pm",
			Intersect{
				Expr:       Shift{Expr: Reference{}, Amount: 1, Grain: Day},
				Constraint: TimeOfDay(time.Date(0, 1, 1, 15, 0, 0, 0, time.UTC)),
			},
			"2013-02-13 15:00:00",
		},
		{
			"march 15 to april 2",
			IntervalBetween{
				From: MonthDay{Month: 3, Day: 15},
				To:   IntervalOf{Expr: MonthDay{Month: 4, Day: 2}, Grain: Day},
			},
			"2013-03-15 00:00:00/2013-04-03 00:00:00",
		},
		{
			"last monday of november 2024",
			LastWeekdayOfMonth{Year: YearAbsolute(2024), Month: 11, Weekday: time.Monday},
			"2024-11-25 00:00:00",
		},
		{
			"two and a half hours from now",
			Shift{Expr: Reference{}, Amount: 150, Grain: Minute},
			"2013-02-12 07:00:00",
		},
		{
			"3pm-5pm",
			IntervalBetween{
				From: Intersect{Expr: Reference{}, Constraint: TimeOfDay(time.Date(0, 1, 1, 15, 0, 0, 0, time.UTC))},
				To:   Intersect{Expr: Reference{}, Constraint: TimeOfDay(time.Date(0, 1, 1, 17, 0, 0, 0, time.UTC))},
			},
			"2013-02-12 15:00:00/2013-02-12 17:00:00",
		},
		{
			"thanksgiving",
			HolidayExpr{Holiday: Thanksgiving, Year: YearUnspecified()},
			"2013-11-28 00:00:00",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatValue(mustNormalize(t, tc.expr))
			if got != tc.want {
				t.Errorf("FormatValue = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeShiftAmountZeroIsNoOp(t *testing.T) {
	reference := ref(t)
	v1, ok1 := Normalize(Reference{}, reference)
	v2, ok2 := Normalize(Shift{Expr: Reference{}, Amount: 0, Grain: Hour}, reference)
	if !ok1 || !ok2 {
		t.Fatalf("expected both to normalize")
	}
	if FormatValue(v1) != FormatValue(v2) {
		t.Errorf("Shift amount 0 changed the value: %q vs %q", FormatValue(v1), FormatValue(v2))
	}
}

func TestNormalizeIntervalHalfOpen(t *testing.T) {
	v := mustNormalize(t, IntervalOf{Expr: Reference{}, Grain: Day})
	iv, ok := v.(ValueInterval)
	if !ok {
		t.Fatalf("expected ValueInterval, got %T", v)
	}
	if !iv.Start.Before(iv.End) {
		t.Errorf("interval not half-open: start=%v end=%v", iv.Start, iv.End)
	}
}
