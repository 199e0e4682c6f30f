package schoolday

import "time"

// InvalidDate is the sentinel rendered for unparseable stored date strings.
// The frontend detects it and renders a placeholder; the engine itself never
// rejects malformed input.
const InvalidDate = "Invalid Date"

var koreanWeekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// FormatDate renders the long localized date, e.g. "2024년 9월 16일 월요일".
func (c *Calculator) FormatDate(t time.Time) string {
	t = t.In(c.loc)
	return t.Format("2006년 1월 2일") + " " + koreanWeekdays[int(t.Weekday())]
}

// FormatDateTime renders the long localized date followed by HH:MM.
func (c *Calculator) FormatDateTime(t time.Time) string {
	return c.FormatDate(t) + " " + t.In(c.loc).Format("15:04")
}

// Format renders t in the fixed zone using a caller-supplied layout.
func (c *Calculator) Format(t time.Time, layout string) string {
	return t.In(c.loc).Format(layout)
}

// FormatDateString parses a stored timestamp or date string and renders it
// like FormatDate. Malformed input yields the InvalidDate sentinel.
func (c *Calculator) FormatDateString(raw string) string {
	t, err := parseStored(raw, c.loc)
	if err != nil {
		return InvalidDate
	}
	return c.FormatDate(t)
}

// FormatDateTimeString is the date+time variant of FormatDateString.
func (c *Calculator) FormatDateTimeString(raw string) string {
	t, err := parseStored(raw, c.loc)
	if err != nil {
		return InvalidDate
	}
	return c.FormatDateTime(t)
}

func parseStored(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateKey, raw, loc)
}
