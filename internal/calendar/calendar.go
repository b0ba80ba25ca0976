// Package calendar provides month grid and date-string helpers for the calendar view.
package calendar

import (
	"fmt"
	"time"
)

const (
	// Weeks is the fixed number of rows in a month grid.
	Weeks = 6

	// Cells is the total number of cells in a month grid.
	Cells = Weeks * 7

	// DateLayout is the layout of task date strings.
	DateLayout = "2006-01-02"
)

// Weekdays are the grid column headers, Sunday first.
var Weekdays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month identifies a calendar month. Month is 1-based.
type Month struct {
	Year  int
	Month int
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Normalize rolls month values outside 1..12 into the neighbouring years.
func (m Month) Normalize() Month {
	for m.Month < 1 {
		m.Month += 12
		m.Year--
	}
	for m.Month > 12 {
		m.Month -= 12
		m.Year++
	}
	return m
}

// Next returns the following month.
func (m Month) Next() Month {
	if m.Month == 12 {
		return Month{Year: m.Year + 1, Month: 1}
	}
	return Month{Year: m.Year, Month: m.Month + 1}.Normalize()
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	if m.Month == 1 {
		return Month{Year: m.Year - 1, Month: 12}
	}
	return Month{Year: m.Year, Month: m.Month - 1}.Normalize()
}

// NextYear returns the same month one year later.
func (m Month) NextYear() Month {
	return Month{Year: m.Year + 1, Month: m.Month}
}

// PrevYear returns the same month one year earlier.
func (m Month) PrevYear() Month {
	return Month{Year: m.Year - 1, Month: m.Month}
}

// First returns the first day of the month at midnight in loc.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, loc)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return DaysInMonth(m.Year, m.Month)
}

// FirstWeekday returns the weekday index (0=Sunday) of day 1.
func (m Month) FirstWeekday() int {
	return int(m.First(time.UTC).Weekday())
}

// Prefix returns the "YYYY-MM" prefix shared by every date in the month.
func (m Month) Prefix() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Date returns the date string of the given day in the month.
func (m Month) Date(day int) string {
	return FormatDate(m.Year, m.Month, day)
}

// String returns the header label, e.g. "2025 - 03".
func (m Month) String() string {
	return fmt.Sprintf("%d - %02d", m.Year, m.Month)
}

// DaysInMonth returns the number of days in a 1-based month.
// Day zero of the next month is the last day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Grid builds the fixed 6x7 Sunday-first grid for a month.
// A zero cell is padding before day 1 or after the last day.
func Grid(year, month int) [Cells]int {
	m := Month{Year: year, Month: month}.Normalize()
	first := m.FirstWeekday()
	days := m.Days()

	var cells [Cells]int
	for i := range cells {
		day := i - first + 1
		if day >= 1 && day <= days {
			cells[i] = day
		}
	}
	return cells
}

// FormatDate formats a zero-padded YYYY-MM-DD date string.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Today returns today's date string in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDate parses a date string in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DayOf returns the day number of a date string, or 0 if it is malformed.
func DayOf(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// IsPast reports whether date is before today. Zero-padded ISO dates
// compare correctly as strings.
func IsPast(date, today string) bool {
	return date < today
}
