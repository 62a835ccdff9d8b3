package timeexpr

import "time"

// Normalize evaluates expr against reference, producing a concrete
// Value. It returns ok=false when the expression denotes an
// out-of-range or otherwise impossible result (e.g. "month 13"); the
// caller drops the corresponding node and keeps going.
func Normalize(expr Expr, reference time.Time) (Value, bool) {
	switch e := expr.(type) {
	case Reference:
		return Instant{Time: reference}, true

	case At:
		return Instant{Time: e.Instant}, true

	case Interval:
		return ValueInterval{Start: e.Start, End: e.End}, true

	case Absolute:
		hour, minute := 0, 0
		if e.Hour != nil {
			hour = *e.Hour
		}
		if e.Minute != nil {
			minute = *e.Minute
		}
		if e.Month < 1 || e.Month > 12 || e.Day < 1 {
			return nil, false
		}
		if e.Day > daysInMonth(e.Year, e.Month) {
			return nil, false
		}
		return Instant{Time: time.Date(e.Year, time.Month(e.Month), e.Day, hour, minute, 0, 0, reference.Location())}, true

	case MonthDay:
		return normalizeMonthDay(e, reference)

	case Shift:
		return normalizeShift(e, reference)

	case StartOf:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		dt := anchorInstant(v)
		return Instant{Time: startOf(e.Grain, dt)}, true

	case IntervalOf:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return intervalOfGrain(e.Grain, anchorInstant(v)), true

	case Intersect:
		base, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return applyConstraint(base, e.Constraint, reference)

	case MonthPart:
		return normalizeMonthPart(e, reference)

	case IntervalBetween:
		return normalizeIntervalBetween(e, reference)

	case IntervalUntil:
		target, ok := Normalize(e.Target, reference)
		if !ok {
			return nil, false
		}
		return ValueInterval{Start: reference, End: endBound(target)}, true

	case OpenAfter:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return ValueOpenAfter{Time: startBound(v)}, true

	case OpenBefore:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return ValueOpenBefore{Time: endBound(v)}, true

	case After:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return ValueOpenAfter{Time: startBound(v)}, true

	case Before:
		v, ok := Normalize(e.Expr, reference)
		if !ok {
			return nil, false
		}
		return ValueOpenBefore{Time: endBound(v)}, true

	case Duration:
		return Normalize(e.Expr, reference)

	case SeasonExpr:
		return normalizeSeason(e, reference)

	case SeasonPeriod:
		return normalizeSeasonPeriod(e, reference)

	case PartOfDayExpr:
		return partOfDayInterval(e.Part, reference), true

	case HolidayExpr:
		return normalizeHoliday(e, reference)

	case ClosestWeekdayTo:
		return normalizeClosestWeekdayTo(e, reference)

	case LastWeekdayOfMonth:
		return normalizeLastWeekdayOfMonth(e, reference)

	case FirstWeekdayOfMonth:
		return normalizeFirstWeekdayOfMonth(e, reference)

	case NthWeekdayOfMonth:
		return normalizeNthWeekdayOfMonth(e, reference)

	case NthWeekOf:
		return normalizeNthWeekOf(e, reference)

	case NthLastOf:
		return normalizeNthLastOf(e, reference)

	case AmbiguousTime:
		return normalizeAmbiguousTime(e, reference)

	default:
		return nil, false
	}
}

// anchorInstant returns a representative instant for a Value, used when
// a transform (StartOf/IntervalOf) needs a single point to snap from.
func anchorInstant(v Value) time.Time {
	switch x := v.(type) {
	case Instant:
		return x.Time
	case ValueInterval:
		return x.Start
	case ValueOpenAfter:
		return x.Time
	case ValueOpenBefore:
		return x.Time
	default:
		return time.Time{}
	}
}

func startBound(v Value) time.Time {
	switch x := v.(type) {
	case Instant:
		return x.Time
	case ValueInterval:
		return x.Start
	case ValueOpenAfter:
		return x.Time
	case ValueOpenBefore:
		return x.Time
	default:
		return time.Time{}
	}
}

func endBound(v Value) time.Time {
	switch x := v.(type) {
	case Instant:
		return x.Time
	case ValueInterval:
		return x.End
	case ValueOpenAfter:
		return x.Time
	case ValueOpenBefore:
		return x.Time
	default:
		return time.Time{}
	}
}

func normalizeMonthDay(e MonthDay, reference time.Time) (Value, bool) {
	if e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31 {
		return nil, false
	}
	year := reference.Year()
	if e.Day > daysInMonth(year, e.Month) {
		return nil, false
	}
	candidate := time.Date(year, time.Month(e.Month), e.Day, 0, 0, 0, 0, reference.Location())
	if candidate.Before(startOf(Day, reference)) {
		year++
		if e.Day > daysInMonth(year, e.Month) {
			return nil, false
		}
		candidate = time.Date(year, time.Month(e.Month), e.Day, 0, 0, 0, 0, reference.Location())
	}
	return Instant{Time: candidate}, true
}

// isHolidayLikeAnchor reports whether expr is one of the anchor kinds
// whose month/year Shift semantics re-derive the anchor against a
// shifted reference instead of shifting the resolved instant.
func isHolidayLikeAnchor(expr Expr) bool {
	switch expr.(type) {
	case HolidayExpr, NthWeekdayOfMonth, LastWeekdayOfMonth:
		return true
	default:
		return false
	}
}

func normalizeShift(e Shift, reference time.Time) (Value, bool) {
	if e.Amount == 0 {
		return Normalize(e.Expr, reference)
	}

	if (e.Grain == Month || e.Grain == Year) && isHolidayLikeAnchor(e.Expr) {
		shiftedRef := shiftDateTime(reference, e.Amount, e.Grain)
		if e.Grain == Year {
			if lw, ok := e.Expr.(LastWeekdayOfMonth); ok && lw.Year.IsUnspecified() && e.Amount == -1 {
				year := reference.Year()
				if candidate, ok2 := normalizeLastWeekdayOfMonth(LastWeekdayOfMonth{
					Year: YearAbsolute(year), Month: lw.Month, Weekday: lw.Weekday,
				}, reference); ok2 {
					if startBound(candidate).Before(reference) {
						return normalizeLastWeekdayOfMonth(LastWeekdayOfMonth{
							Year: YearAbsolute(year - 1), Month: lw.Month, Weekday: lw.Weekday,
						}, reference)
					}
				}
				return normalizeLastWeekdayOfMonth(LastWeekdayOfMonth{
					Year: YearAbsolute(year - 1), Month: lw.Month, Weekday: lw.Weekday,
				}, reference)
			}
			if nw, ok := e.Expr.(NthWeekdayOfMonth); ok && nw.Year.IsUnspecified() && e.Amount == -1 {
				year := reference.Year()
				candidate, ok2 := normalizeNthWeekdayOfMonth(NthWeekdayOfMonth{
					N: nw.N, Year: YearAbsolute(year), Month: nw.Month, Weekday: nw.Weekday,
				}, reference)
				if ok2 && !startBound(candidate).Before(reference) {
					year--
				} else if !ok2 {
					year--
				}
				return normalizeNthWeekdayOfMonth(NthWeekdayOfMonth{
					N: nw.N, Year: YearAbsolute(year), Month: nw.Month, Weekday: nw.Weekday,
				}, reference)
			}
		}
		return Normalize(e.Expr, shiftedRef)
	}

	v, ok := Normalize(e.Expr, reference)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case Instant:
		return Instant{Time: shiftDateTime(x.Time, e.Amount, e.Grain)}, true
	case ValueInterval:
		return ValueInterval{
			Start: shiftDateTime(x.Start, e.Amount, e.Grain),
			End:   shiftDateTime(x.End, e.Amount, e.Grain),
		}, true
	case ValueOpenAfter:
		return ValueOpenAfter{Time: shiftDateTime(x.Time, e.Amount, e.Grain)}, true
	case ValueOpenBefore:
		return ValueOpenBefore{Time: shiftDateTime(x.Time, e.Amount, e.Grain)}, true
	default:
		return nil, false
	}
}

func normalizeMonthPart(e MonthPart, reference time.Time) (Value, bool) {
	month := int(reference.Month())
	if e.Month != nil {
		month = *e.Month
	}
	if month < 1 || month > 12 {
		return nil, false
	}
	year := reference.Year()
	dim := daysInMonth(year, month)
	startDay, endDay := monthPartBounds(e.Segment, dim)
	start := time.Date(year, time.Month(month), startDay, 0, 0, 0, 0, reference.Location())
	var end time.Time
	if endDay > dim {
		end = addMonthsClamped(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, reference.Location()), 1)
	} else {
		end = time.Date(year, time.Month(month), endDay, 0, 0, 0, 0, reference.Location())
	}
	if end.Before(reference) {
		year++
		dim = daysInMonth(year, month)
		startDay, endDay = monthPartBounds(e.Segment, dim)
		start = time.Date(year, time.Month(month), startDay, 0, 0, 0, 0, reference.Location())
		if endDay > dim {
			end = addMonthsClamped(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, reference.Location()), 1)
		} else {
			end = time.Date(year, time.Month(month), endDay, 0, 0, 0, 0, reference.Location())
		}
	}
	return ValueInterval{Start: start, End: end}, true
}

func normalizeIntervalBetween(e IntervalBetween, reference time.Time) (Value, bool) {
	fromMD, fromIsMD := e.From.(MonthDay)
	toMD, toIsMD := e.To.(MonthDay)
	if fromIsMD && toIsMD && fromMD.Month > toMD.Month {
		startYear := reference.Year()
		startCandidate := time.Date(startYear, time.Month(fromMD.Month), fromMD.Day, 0, 0, 0, 0, reference.Location())
		if startCandidate.Before(startOf(Day, reference)) {
			startYear--
		}
		endYear := startYear + 1
		if fromMD.Day > daysInMonth(startYear, fromMD.Month) || toMD.Day > daysInMonth(endYear, toMD.Month) {
			return nil, false
		}
		start := time.Date(startYear, time.Month(fromMD.Month), fromMD.Day, 0, 0, 0, 0, reference.Location())
		end := time.Date(endYear, time.Month(toMD.Month), toMD.Day, 0, 0, 0, 0, reference.Location())
		return ValueInterval{Start: start, End: end}, true
	}

	fromV, ok := Normalize(e.From, reference)
	if !ok {
		return nil, false
	}
	toV, ok := Normalize(e.To, reference)
	if !ok {
		return nil, false
	}
	return ValueInterval{Start: startBound(fromV), End: endBound(toV)}, true
}

func normalizeSeason(e SeasonExpr, reference time.Time) (Value, bool) {
	sm, sd, em, ed := seasonBounds(e.Season)
	year := e.Year.Resolve(reference.Year())
	endYear := year
	if em < sm {
		endYear++
	}
	start := time.Date(year, time.Month(sm), sd, 0, 0, 0, 0, reference.Location())
	end := time.Date(endYear, time.Month(em), ed, 0, 0, 0, 0, reference.Location())
	if e.Year.IsUnspecified() && end.Before(reference) {
		year++
		endYear = year
		if em < sm {
			endYear++
		}
		start = time.Date(year, time.Month(sm), sd, 0, 0, 0, 0, reference.Location())
		end = time.Date(endYear, time.Month(em), ed, 0, 0, 0, 0, reference.Location())
	}
	return ValueInterval{Start: start, End: end}, true
}

func normalizeSeasonPeriod(e SeasonPeriod, reference time.Time) (Value, bool) {
	current := seasonContaining(reference)
	idx := (int(current) + e.Offset) % 4
	if idx < 0 {
		idx += 4
	}
	target := Season(idx)

	sm, sd, em, ed := seasonPeriodBounds(target)
	yearsToAdd := (int(current) + e.Offset - idx) / 4
	baseYear := reference.Year() + yearsToAdd
	endYear := baseYear
	if em < sm {
		endYear++
	}
	start := time.Date(baseYear, time.Month(sm), sd, 0, 0, 0, 0, reference.Location())
	end := time.Date(endYear, time.Month(em), ed, 0, 0, 0, 0, reference.Location())
	return ValueInterval{Start: start, End: end}, true
}

func normalizeHoliday(e HolidayExpr, reference time.Time) (Value, bool) {
	year := e.Year.Resolve(reference.Year())
	expr := holidayExprFor(e.Holiday, year)
	v, ok := Normalize(expr, reference)
	if !ok {
		return nil, false
	}
	if e.Year.IsUnspecified() && endBound(v).Before(startOf(Day, reference)) {
		expr = holidayExprFor(e.Holiday, year+1)
		return Normalize(expr, reference)
	}
	return v, true
}

// holidayExprFor builds the canonical TimeExpr representation for a
// holiday pinned to an explicit year; normalizeHoliday handles the
// "pick nearest occurrence" policy around this.
func holidayExprFor(h Holiday, year int) Expr {
	switch h {
	case NewYearsDay:
		return Absolute{Year: year, Month: 1, Day: 1}
	case MLKDay:
		return NthWeekdayOfMonth{N: 3, Year: YearAbsolute(year), Month: 1, Weekday: time.Monday}
	case PresidentsDay:
		return NthWeekdayOfMonth{N: 3, Year: YearAbsolute(year), Month: 2, Weekday: time.Monday}
	case StPatricksDay:
		return Absolute{Year: year, Month: 3, Day: 17}
	case EarthDay:
		return Absolute{Year: year, Month: 4, Day: 22}
	case MemorialDay:
		return LastWeekdayOfMonth{Year: YearAbsolute(year), Month: 5, Weekday: time.Monday}
	case MothersDay:
		return NthWeekdayOfMonth{N: 2, Year: YearAbsolute(year), Month: 5, Weekday: time.Sunday}
	case FathersDay:
		return NthWeekdayOfMonth{N: 3, Year: YearAbsolute(year), Month: 6, Weekday: time.Sunday}
	case IndependenceDay:
		return Absolute{Year: year, Month: 7, Day: 4}
	case LaborDay:
		return NthWeekdayOfMonth{N: 1, Year: YearAbsolute(year), Month: 9, Weekday: time.Monday}
	case ColumbusDay:
		return NthWeekdayOfMonth{N: 2, Year: YearAbsolute(year), Month: 10, Weekday: time.Monday}
	case Halloween:
		return Absolute{Year: year, Month: 10, Day: 31}
	case VeteransDay:
		return Absolute{Year: year, Month: 11, Day: 11}
	case Thanksgiving:
		return NthWeekdayOfMonth{N: 4, Year: YearAbsolute(year), Month: 11, Weekday: time.Thursday}
	case BlackFriday:
		return Shift{Expr: NthWeekdayOfMonth{N: 4, Year: YearAbsolute(year), Month: 11, Weekday: time.Thursday}, Amount: 1, Grain: Day}
	case Christmas:
		return Absolute{Year: year, Month: 12, Day: 25}
	case ChristmasEve:
		return Absolute{Year: year, Month: 12, Day: 24}
	case NewYearsEve:
		return Absolute{Year: year, Month: 12, Day: 31}
	case BossDay:
		return Absolute{Year: year, Month: 10, Day: 16}
	default:
		return Absolute{Year: year, Month: 1, Day: 1}
	}
}

func normalizeClosestWeekdayTo(e ClosestWeekdayTo, reference time.Time) (Value, bool) {
	v, ok := Normalize(e.Target, reference)
	if !ok {
		return nil, false
	}
	target := startOf(Day, startBound(v))

	type candidate struct {
		dt     time.Time
		offset int
	}
	var candidates []candidate
	for offset := -7; offset <= 7; offset++ {
		dt := target.AddDate(0, 0, offset)
		if dt.Weekday() == e.Weekday {
			candidates = append(candidates, candidate{dt: dt, offset: offset})
		}
	}
	// Sort by (|offset|, future-preferred, offset): simple insertion
	// sort since candidates is always tiny (at most 3 entries).
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0; j-- {
			a, b := candidates[j-1], candidates[j]
			if lessClosest(b, a) {
				candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
			} else {
				break
			}
		}
	}
	n := e.N
	if n < 1 {
		n = 1
	}
	if n > len(candidates) {
		return nil, false
	}
	return Instant{Time: candidates[n-1].dt}, true
}

func lessClosest(a, b struct {
	dt     time.Time
	offset int
}) bool {
	absA, absB := abs(a.offset), abs(b.offset)
	if absA != absB {
		return absA < absB
	}
	aFuture := a.offset >= 0
	bFuture := b.offset >= 0
	if aFuture != bFuture {
		return aFuture
	}
	return a.offset < b.offset
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func normalizeLastWeekdayOfMonth(e LastWeekdayOfMonth, reference time.Time) (Value, bool) {
	if e.Month < 1 || e.Month > 12 {
		return nil, false
	}
	year := e.Year.Resolve(reference.Year())
	lastDay := time.Date(year, time.Month(e.Month), daysInMonth(year, e.Month), 0, 0, 0, 0, reference.Location())
	for i := 0; i < 7; i++ {
		dt := lastDay.AddDate(0, 0, -i)
		if dt.Weekday() == e.Weekday {
			return Instant{Time: dt}, true
		}
	}
	return nil, false
}

func normalizeFirstWeekdayOfMonth(e FirstWeekdayOfMonth, reference time.Time) (Value, bool) {
	if e.Month < 1 || e.Month > 12 {
		return nil, false
	}
	year := e.Year.Resolve(reference.Year())
	firstDay := time.Date(year, time.Month(e.Month), 1, 0, 0, 0, 0, reference.Location())
	for i := 0; i < 7; i++ {
		dt := firstDay.AddDate(0, 0, i)
		if dt.Weekday() == e.Weekday {
			return Instant{Time: dt}, true
		}
	}
	return nil, false
}

func normalizeNthWeekdayOfMonth(e NthWeekdayOfMonth, reference time.Time) (Value, bool) {
	if e.N < 1 || e.N > 5 || e.Month < 1 || e.Month > 12 {
		return nil, false
	}
	year := e.Year.Resolve(reference.Year())
	first, ok := normalizeFirstWeekdayOfMonth(FirstWeekdayOfMonth{Year: YearAbsolute(year), Month: e.Month, Weekday: e.Weekday}, reference)
	if !ok {
		return nil, false
	}
	dt := startBound(first).AddDate(0, 0, (e.N-1)*7)
	if int(dt.Month()) != e.Month || dt.Year() != year {
		return nil, false
	}
	if e.Year.IsUnspecified() && dt.Before(startOf(Day, reference)) {
		return normalizeNthWeekdayOfMonth(NthWeekdayOfMonth{N: e.N, Year: YearAbsolute(year + 1), Month: e.Month, Weekday: e.Weekday}, reference)
	}
	return Instant{Time: dt}, true
}

func normalizeNthWeekOf(e NthWeekOf, reference time.Time) (Value, bool) {
	month := int(reference.Month())
	if e.Month != nil {
		month = *e.Month
	}
	if month < 1 || month > 12 {
		return nil, false
	}
	year := e.Year.Resolve(reference.Year())
	first, ok := normalizeFirstWeekdayOfMonth(FirstWeekdayOfMonth{Year: YearAbsolute(year), Month: month, Weekday: time.Monday}, reference)
	if !ok {
		return nil, false
	}
	dt := startBound(first).AddDate(0, 0, (e.N-1)*7)
	return Instant{Time: dt}, true
}

func normalizeNthLastOf(e NthLastOf, reference time.Time) (Value, bool) {
	year := e.Year.Resolve(reference.Year())
	switch e.Grain {
	case Day:
		var periodEnd time.Time
		if e.Month != nil {
			periodEnd = time.Date(year, time.Month(*e.Month), daysInMonth(year, *e.Month), 0, 0, 0, 0, reference.Location())
		} else {
			periodEnd = time.Date(year, time.December, 31, 0, 0, 0, 0, reference.Location())
		}
		return Instant{Time: periodEnd.AddDate(0, 0, -(e.N - 1))}, true
	case Week:
		var periodEnd time.Time
		if e.Month != nil {
			periodEnd = time.Date(year, time.Month(*e.Month), daysInMonth(year, *e.Month), 0, 0, 0, 0, reference.Location())
		} else {
			periodEnd = time.Date(year, time.December, 31, 0, 0, 0, 0, reference.Location())
		}
		lastFullWeekEnd := startOf(Week, periodEnd)
		if lastFullWeekEnd.After(periodEnd) {
			lastFullWeekEnd = lastFullWeekEnd.AddDate(0, 0, -7)
		}
		weekStart := lastFullWeekEnd.AddDate(0, 0, -7*(e.N-1))
		return ValueInterval{Start: weekStart, End: weekStart.AddDate(0, 0, 7)}, true
	default:
		return nil, false
	}
}

func normalizeAmbiguousTime(e AmbiguousTime, reference time.Time) (Value, bool) {
	if e.Hour < 1 || e.Hour > 12 {
		return nil, false
	}
	day := startOf(Day, reference)
	amHour := e.Hour % 12
	candidates := []time.Time{
		day.Add(time.Duration(amHour)*time.Hour + time.Duration(e.Minute)*time.Minute),
		day.Add(time.Duration(amHour+12)*time.Hour + time.Duration(e.Minute)*time.Minute),
		day.AddDate(0, 0, 1).Add(time.Duration(amHour)*time.Hour + time.Duration(e.Minute)*time.Minute),
	}
	for _, c := range candidates {
		if !c.Before(reference) {
			return Instant{Time: c}, true
		}
	}
	return Instant{Time: candidates[len(candidates)-1]}, true
}
