package timeexpr

import "time"

// applyConstraint narrows base according to constraint, per spec
// section 4.5.1.
func applyConstraint(base Value, constraint Constraint, reference time.Time) (Value, bool) {
	switch c := constraint.(type) {
	case MonthConstraint:
		return applyMonth(base, int(c), reference)
	case DayOfMonth:
		return applyDayOfMonth(base, int(c), reference)
	case DayOfWeek:
		return applyDayOfWeek(base, time.Weekday(c), reference)
	case DayConstraint:
		return applyDay(base, int(c), reference)
	case TimeOfDay:
		return applyTimeOfDay(base, time.Time(c), reference)
	case PartOfDayConstraint:
		return applyPartOfDay(base, PartOfDay(c), reference)
	default:
		return nil, false
	}
}

func applyMonth(base Value, month int, reference time.Time) (Value, bool) {
	if month < 1 || month > 12 {
		return nil, false
	}
	switch x := base.(type) {
	case Instant:
		year := x.Time.Year()
		if time.Month(month) < x.Time.Month() {
			year++
		}
		return Instant{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, reference.Location())}, true
	case ValueInterval:
		year := x.Start.Year()
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, reference.Location())
		end := addMonthsClamped(start, 1)
		return ValueInterval{Start: start, End: end}, true
	case ValueOpenAfter:
		year := x.Time.Year()
		if time.Month(month) < x.Time.Month() {
			year++
		}
		return Instant{Time: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, reference.Location())}, true
	default:
		return nil, false
	}
}

func applyDayOfMonth(base Value, day int, reference time.Time) (Value, bool) {
	if day < 1 || day > 31 {
		return nil, false
	}
	dt := anchorInstant(base)
	if dt.Day() == 1 && dt.Hour() == 0 && dt.Minute() == 0 && dt.Second() == 0 {
		if day > daysInMonth(dt.Year(), int(dt.Month())) {
			return nil, false
		}
		return Instant{Time: time.Date(dt.Year(), dt.Month(), day, 0, 0, 0, 0, dt.Location())}, true
	}
	year, month := dt.Year(), int(dt.Month())
	if day > daysInMonth(year, month) {
		return nil, false
	}
	candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, dt.Location())
	if candidate.Before(startOf(Day, reference)) {
		month++
		if month > 12 {
			month = 1
			year++
		}
		if day > daysInMonth(year, month) {
			return nil, false
		}
		candidate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, dt.Location())
	}
	return Instant{Time: candidate}, true
}

func applyDayOfWeek(base Value, weekday time.Weekday, reference time.Time) (Value, bool) {
	switch x := base.(type) {
	case Instant:
		target := nextOrSameWeekday(startOf(Day, x.Time), weekday)
		if target.Equal(startOf(Day, x.Time)) && x.Time.Equal(reference) {
			target = target.AddDate(0, 0, 7)
		}
		timeOfDay := x.Time.Sub(startOf(Day, x.Time))
		refTimeOfDay := reference.Sub(startOf(Day, reference))
		if timeOfDay != 0 && timeOfDay != refTimeOfDay {
			return Instant{Time: target.Add(timeOfDay)}, true
		}
		return Instant{Time: target}, true
	case ValueInterval:
		for d := x.Start; d.Before(x.End); d = d.AddDate(0, 0, 1) {
			if d.Weekday() == weekday {
				return Instant{Time: startOf(Day, d)}, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

func nextOrSameWeekday(from time.Time, weekday time.Weekday) time.Time {
	offset := int(weekday) - int(from.Weekday())
	if offset < 0 {
		offset += 7
	}
	return from.AddDate(0, 0, offset)
}

func applyDay(base Value, day int, reference time.Time) (Value, bool) {
	return applyDayOfMonth(base, day, reference)
}

// isDayAnchor reports whether t denotes "the start of some day" (i.e.
// midnight), used to decide whether TimeOfDay should keep the existing
// date or roll forward.
func isDayAnchor(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

func applyTimeOfDay(base Value, clock time.Time, reference time.Time) (Value, bool) {
	hour, minute, second := clock.Hour(), clock.Minute(), clock.Second()

	switch x := base.(type) {
	case Instant:
		candidate := time.Date(x.Time.Year(), x.Time.Month(), x.Time.Day(), hour, minute, second, 0, x.Time.Location())
		if isDayAnchor(x.Time) && !startOf(Day, x.Time).Equal(startOf(Day, reference)) {
			return Instant{Time: candidate}, true
		}
		if candidate.Before(reference) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return Instant{Time: candidate}, true

	case ValueInterval:
		if x.End.Sub(x.Start) <= 24*time.Hour {
			if hour == 12 && minute == 0 && second == 0 {
				return Instant{Time: startOf(Day, x.Start).AddDate(0, 0, 1)}, true
			}
			day := x.Start
			for i := 0; i < 2; i++ {
				for _, h := range []int{hour, (hour + 12) % 24} {
					candidate := time.Date(day.Year(), day.Month(), day.Day(), h, minute, second, 0, day.Location())
					if !candidate.Before(reference) && !candidate.Before(x.Start) && candidate.Before(x.End) {
						return Instant{Time: candidate}, true
					}
				}
				day = day.AddDate(0, 0, 1)
			}
			return nil, false
		}
		// Longer window: pick the earliest in-window candidate >= reference.
		day := x.Start
		for i := 0; i < 3; i++ {
			for _, h := range []int{hour, (hour + 12) % 24} {
				candidate := time.Date(day.Year(), day.Month(), day.Day(), h, minute, second, 0, day.Location())
				if !candidate.Before(reference) && !candidate.Before(x.Start) && candidate.Before(x.End) {
					return Instant{Time: candidate}, true
				}
			}
			day = day.AddDate(0, 0, 1)
		}
		return nil, false

	default:
		return nil, false
	}
}

func applyPartOfDay(base Value, part PartOfDay, reference time.Time) (Value, bool) {
	switch x := base.(type) {
	case Instant:
		if x.Time.Equal(reference) {
			return partOfDayInterval(part, reference), true
		}
		if isDayAnchor(x.Time) {
			return partOfDayInterval(part, x.Time), true
		}
		hour := x.Time.Hour()
		impliesPM := part == Afternoon || part == Evening || part == Night ||
			part == Tonight || part == LateTonight || part == AfterWork || part == AfterLunch || part == Lunch
		if impliesPM && hour < 12 {
			return Instant{Time: x.Time.Add(12 * time.Hour)}, true
		}
		return x, true
	default:
		return nil, false
	}
}
