package timeexpr

import "time"

const datetimeLayout = "2006-01-02 15:04:05"

// FormatValue renders a Value the way the resolver emits it to callers.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case Instant:
		return formatDatetime(x.Time)
	case ValueInterval:
		return formatDatetime(x.Start) + "/" + formatDatetime(x.End)
	case ValueOpenAfter:
		return formatDatetime(x.Time) + "+"
	case ValueOpenBefore:
		return formatDatetime(x.Time) + "-"
	default:
		return ""
	}
}

func formatDatetime(t time.Time) string {
	return t.Format(datetimeLayout)
}
