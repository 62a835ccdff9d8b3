package timeexpr

import "time"

// daysInMonth returns the number of days in the given calendar month.
func daysInMonth(year int, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// startOf snaps dt down to the lower boundary of grain. Week starts on
// Monday; quarter starts on the first month of the quarter.
func startOf(grain Grain, dt time.Time) time.Time {
	switch grain {
	case Second:
		return dt.Truncate(time.Second)
	case Minute:
		return time.Date(dt.Year(), dt.Month(), dt.Day(), dt.Hour(), dt.Minute(), 0, 0, dt.Location())
	case Hour:
		return time.Date(dt.Year(), dt.Month(), dt.Day(), dt.Hour(), 0, 0, 0, dt.Location())
	case Day:
		return time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
	case Week:
		offset := int(dt.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		d := time.Date(dt.Year(), dt.Month(), dt.Day(), 0, 0, 0, 0, dt.Location())
		return d.AddDate(0, 0, -offset)
	case Month:
		return time.Date(dt.Year(), dt.Month(), 1, 0, 0, 0, 0, dt.Location())
	case Quarter:
		qStartMonth := ((int(dt.Month())-1)/3)*3 + 1
		return time.Date(dt.Year(), time.Month(qStartMonth), 1, 0, 0, 0, 0, dt.Location())
	case Year:
		return time.Date(dt.Year(), time.January, 1, 0, 0, 0, 0, dt.Location())
	default:
		return dt
	}
}

// shiftDateTime moves dt by amount*grain. Calendar-grain shifts clamp
// the day of month to the last valid day of the target month.
func shiftDateTime(dt time.Time, amount int, grain Grain) time.Time {
	switch grain {
	case Second:
		return dt.Add(time.Duration(amount) * time.Second)
	case Minute:
		return dt.Add(time.Duration(amount) * time.Minute)
	case Hour:
		return dt.Add(time.Duration(amount) * time.Hour)
	case Day:
		return dt.AddDate(0, 0, amount)
	case Week:
		return dt.AddDate(0, 0, amount*7)
	case Month:
		return addMonthsClamped(dt, amount)
	case Quarter:
		return addMonthsClamped(dt, amount*3)
	case Year:
		return addMonthsClamped(dt, amount*12)
	default:
		return dt
	}
}

// addMonthsClamped adds the given number of months, clamping the day
// of month into the target month's valid range rather than overflowing
// into the following month (time.AddDate's usual behavior).
func addMonthsClamped(dt time.Time, months int) time.Time {
	totalMonths := int(dt.Month()) - 1 + months
	year := dt.Year() + totalMonths/12
	month := totalMonths % 12
	if month < 0 {
		month += 12
		year--
	}
	month++ // back to 1-based
	day := dt.Day()
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, dt.Hour(), dt.Minute(), dt.Second(), dt.Nanosecond(), dt.Location())
}

// intervalOfGrain returns the full grain-aligned interval containing dt.
func intervalOfGrain(grain Grain, dt time.Time) ValueInterval {
	start := startOf(grain, dt)
	end := shiftDateTime(start, 1, grain)
	return ValueInterval{Start: start, End: end}
}
