package timeexpr

import "time"

// Expr is the closed symbolic time-expression algebra. Rules in
// internal/rules/time produce Expr trees; Normalize evaluates one
// against a reference datetime.
type Expr interface {
	exprNode()
}

// Reference denotes the parser's reference datetime itself ("now").
type Reference struct{}

// At wraps a concrete instant, already resolved (no further lookup
// needed against the reference).
type At struct {
	Instant time.Time
}

// Interval is an explicit, already-resolved half-open span.
type Interval struct {
	Start, End time.Time
}

// Absolute is a fully or partially specified calendar date, optionally
// with a time of day.
type Absolute struct {
	Year         int
	Month, Day   int
	Hour, Minute *int
}

// MonthDay is a month/day pair with no year attached; Normalize picks
// the next occurrence on or after the reference.
type MonthDay struct {
	Month, Day int
}

// Shift moves an inner expression by amount*grain.
type Shift struct {
	Expr   Expr
	Amount int
	Grain  Grain
}

// StartOf snaps the inner expression down to the start of its grain.
type StartOf struct {
	Expr  Expr
	Grain Grain
}

// IntervalOf produces the full grain-sized interval containing the
// inner expression.
type IntervalOf struct {
	Expr  Expr
	Grain Grain
}

// Intersect applies a Constraint to an inner expression.
type Intersect struct {
	Expr       Expr
	Constraint Constraint
}

// MonthPart names a third of a month (e.g. "late March").
type MonthPart struct {
	Month   *int
	Segment MonthPartSegment
}

// IntervalBetween spans two endpoint expressions.
type IntervalBetween struct {
	From, To Expr
}

// IntervalUntil spans from the reference to the target's end.
type IntervalUntil struct {
	Target Expr
}

// OpenAfter denotes everything from the inner expression onward.
type OpenAfter struct{ Expr Expr }

// OpenBefore denotes everything up to the inner expression.
type OpenBefore struct{ Expr Expr }

// After is a strict open lower bound ("after 3pm").
type After struct{ Expr Expr }

// Before is a strict open upper bound ("before 3pm").
type Before struct{ Expr Expr }

// Duration wraps an expression interpreted as an elapsed span rather
// than an anchor; Normalize evaluates the inner expression unchanged.
type Duration struct{ Expr Expr }

// SeasonExpr is the absolute-season constructor (named to avoid
// colliding with the Season enum type).
type SeasonExpr struct {
	Season Season
	Year   YearSpec
}

func (SeasonExpr) exprNode() {}

// SeasonPeriod is the "this/next/last season" relative constructor; it
// uses a distinct boundary table from SeasonExpr (see DESIGN.md).
type SeasonPeriod struct {
	Offset int
}

// PartOfDayExpr anchors to the current date's named part of day.
type PartOfDayExpr struct {
	Part PartOfDay
}

// HolidayExpr resolves a named holiday, optionally pinned to a year.
type HolidayExpr struct {
	Holiday Holiday
	Year    YearSpec
}

// ClosestWeekdayTo picks the n-th closest occurrence of weekday to the
// date produced by Target.
type ClosestWeekdayTo struct {
	N       int
	Weekday time.Weekday
	Target  Expr
}

// LastWeekdayOfMonth walks backward from month end for the last weekday.
type LastWeekdayOfMonth struct {
	Year    YearSpec
	Month   int
	Weekday time.Weekday
}

// FirstWeekdayOfMonth walks forward from month start for the first weekday.
type FirstWeekdayOfMonth struct {
	Year    YearSpec
	Month   int
	Weekday time.Weekday
}

// NthWeekdayOfMonth picks the n-th (1-based) occurrence of weekday in month.
type NthWeekdayOfMonth struct {
	N       int
	Year    YearSpec
	Month   int
	Weekday time.Weekday
}

// NthWeekOf picks the Monday of the n-th week of a month/year.
type NthWeekOf struct {
	N     int
	Year  YearSpec
	Month *int
}

// NthLastOf counts back n units (Week or Day grain only) from the end
// of a month/year period.
type NthLastOf struct {
	N     int
	Grain Grain
	Year  YearSpec
	Month *int
}

// AmbiguousTime is a bare clock time with no AM/PM marker.
type AmbiguousTime struct {
	Hour, Minute int
}

func (Reference) exprNode()           {}
func (At) exprNode()                  {}
func (Interval) exprNode()            {}
func (Absolute) exprNode()            {}
func (MonthDay) exprNode()            {}
func (Shift) exprNode()               {}
func (StartOf) exprNode()             {}
func (IntervalOf) exprNode()          {}
func (Intersect) exprNode()           {}
func (MonthPart) exprNode()           {}
func (IntervalBetween) exprNode()     {}
func (IntervalUntil) exprNode()       {}
func (OpenAfter) exprNode()           {}
func (OpenBefore) exprNode()          {}
func (After) exprNode()               {}
func (Before) exprNode()              {}
func (Duration) exprNode()            {}
func (SeasonPeriod) exprNode()        {}
func (PartOfDayExpr) exprNode()       {}
func (HolidayExpr) exprNode()         {}
func (ClosestWeekdayTo) exprNode()    {}
func (LastWeekdayOfMonth) exprNode()  {}
func (FirstWeekdayOfMonth) exprNode() {}
func (NthWeekdayOfMonth) exprNode()   {}
func (NthWeekOf) exprNode()           {}
func (NthLastOf) exprNode()           {}
func (AmbiguousTime) exprNode()       {}

// Constraint narrows a base Expr when applied via Intersect.
type Constraint interface {
	constraintNode()
}

type DayOfMonth int
type DayOfWeek time.Weekday
type MonthConstraint int
type DayConstraint int
type TimeOfDay time.Time
type PartOfDayConstraint PartOfDay

func (DayOfMonth) constraintNode()          {}
func (DayOfWeek) constraintNode()           {}
func (MonthConstraint) constraintNode()     {}
func (DayConstraint) constraintNode()       {}
func (TimeOfDay) constraintNode()           {}
func (PartOfDayConstraint) constraintNode() {}

// Value is the normalized, concrete result of evaluating an Expr
// against a reference datetime.
type Value interface {
	valueNode()
}

// Instant is a single resolved point in time.
type Instant struct{ Time time.Time }

// ValueInterval is a half-open [Start, End) span.
type ValueInterval struct{ Start, End time.Time }

// ValueOpenAfter denotes "from Time onward, no upper bound".
type ValueOpenAfter struct{ Time time.Time }

// ValueOpenBefore denotes "up to Time, no lower bound".
type ValueOpenBefore struct{ Time time.Time }

func (Instant) valueNode()         {}
func (ValueInterval) valueNode()   {}
func (ValueOpenAfter) valueNode()  {}
func (ValueOpenBefore) valueNode() {}
