package timeexpr

import "time"

// partOfDayBounds returns the (startHour, endHour, endIsNextDay) bounds
// for a PartOfDay, per the table in spec.md section 4.5.1.
func partOfDayBounds(p PartOfDay) (startH, endH int, endNextDay bool) {
	switch p {
	case EarlyMorning:
		return 0, 9, false
	case Morning:
		return 0, 12, false
	case Lunch:
		return 12, 14, false
	case AfterLunch:
		return 13, 17, false
	case Afternoon:
		return 12, 19, false
	case AfterWork:
		return 15, 21, false
	case Evening, Night, Tonight:
		return 18, 0, true
	case LateTonight:
		return 21, 0, true
	default:
		return 0, 24, false
	}
}

func partOfDayInterval(p PartOfDay, date time.Time) ValueInterval {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	startH, endH, endNextDay := partOfDayBounds(p)
	start := day.Add(time.Duration(startH) * time.Hour)
	end := day.Add(time.Duration(endH) * time.Hour)
	if endNextDay {
		end = day.AddDate(0, 0, 1)
	}
	return ValueInterval{Start: start, End: end}
}

// monthPartBounds returns the [start, end) day-of-month range for a
// MonthPartSegment within a month of the given length.
func monthPartBounds(segment MonthPartSegment, daysInMon int) (startDay, endDay int) {
	switch segment {
	case Early:
		return 1, 11
	case Mid:
		return 11, 21
	default: // Late
		return 21, daysInMon + 1
	}
}

// seasonBounds returns the absolute-season boundary (month, day) pairs
// used by SeasonExpr, distinct from seasonPeriodBounds (see DESIGN.md).
func seasonBounds(s Season) (startMonth, startDay, endMonth, endDay int) {
	switch s {
	case Spring:
		return 3, 21, 6, 21
	case Summer:
		return 6, 21, 9, 24
	case Fall:
		return 9, 24, 12, 21
	default: // Winter wraps into the following year
		return 12, 21, 3, 21
	}
}

// seasonPeriodBounds is the slightly different boundary table used by
// the "this/next/last season" relative constructor.
func seasonPeriodBounds(s Season) (startMonth, startDay, endMonth, endDay int) {
	switch s {
	case Spring:
		return 3, 20, 6, 20
	case Summer:
		return 6, 21, 9, 22
	case Fall:
		return 9, 23, 12, 20
	default:
		return 12, 21, 3, 19
	}
}

// seasonContaining returns the Season whose seasonPeriodBounds window
// contains date, used to step forward/backward in SeasonPeriod.
func seasonContaining(date time.Time) Season {
	for _, s := range [...]Season{Spring, Summer, Fall, Winter} {
		sm, sd, em, ed := seasonPeriodBounds(s)
		start := time.Date(date.Year(), time.Month(sm), sd, 0, 0, 0, 0, date.Location())
		endYear := date.Year()
		if em < sm {
			endYear++
		}
		end := time.Date(endYear, time.Month(em), ed, 0, 0, 0, 0, date.Location())
		if s == Winter {
			// Winter also covers Jan 1 .. Mar 19 of the current year.
			altStart := time.Date(date.Year()-1, time.Month(sm), sd, 0, 0, 0, 0, date.Location())
			altEnd := time.Date(date.Year(), time.Month(em), ed, 0, 0, 0, 0, date.Location())
			if !date.Before(altStart) && date.Before(altEnd) {
				return s
			}
		}
		if !date.Before(start) && date.Before(end) {
			return s
		}
	}
	return Winter
}
