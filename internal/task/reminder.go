package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hy4ri/daycal/internal/calendar"
)

// DayBefore is the reminder offset of one day, in minutes.
const DayBefore = "-1440"

// DefaultReminderOptions are the offsets offered in the task form.
var DefaultReminderOptions = []string{"-5", "-10", "-15", "-30", "-60", "-120", DayBefore}

// ParseOffset returns the absolute duration of a signed minute offset.
func ParseOffset(offset string) (time.Duration, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(offset))
	if err != nil {
		return 0, fmt.Errorf("invalid reminder offset %q: %w", offset, err)
	}
	if minutes < 0 {
		minutes = -minutes
	}
	return time.Duration(minutes) * time.Minute, nil
}

// OffsetLabel renders an offset for display, e.g. "30 min before".
func OffsetLabel(offset string) string {
	d, err := ParseOffset(offset)
	if err != nil {
		return offset
	}
	switch {
	case d == 0:
		return "at start"
	case d%(24*time.Hour) == 0:
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day before"
		}
		return fmt.Sprintf("%d days before", days)
	case d%time.Hour == 0:
		return fmt.Sprintf("%d h before", int(d/time.Hour))
	}
	return fmt.Sprintf("%d min before", int(d/time.Minute))
}

// Start returns the start of a dated task in loc. All-day tasks and tasks
// without a start time begin at midnight.
func Start(t Task, loc *time.Location) (time.Time, error) {
	day, err := calendar.ParseDate(t.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	if t.AllDay || t.StartTime == "" {
		return day, nil
	}

	clock, err := time.Parse("15:04", t.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", t.StartTime, err)
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

// UpcomingOffsets returns the reminder offsets of t whose one-minute window
// contains now: the time left until the start must lie in (offset-1m, offset].
func UpcomingOffsets(t Task, now time.Time) []string {
	if t.Date == "" || len(t.ReminderTimes) == 0 {
		return nil
	}
	if calendar.IsPast(t.Date, calendar.Today(now)) {
		return nil
	}

	start, err := Start(t, now.Location())
	if err != nil {
		return nil
	}
	diff := start.Sub(now)

	var out []string
	for _, offset := range t.ReminderTimes {
		d, err := ParseOffset(offset)
		if err != nil {
			continue
		}
		if diff > d-time.Minute && diff <= d {
			out = append(out, offset)
		}
	}
	return out
}

// ReminderUpcoming reports whether any reminder of t is due at now.
func ReminderUpcoming(t Task, now time.Time) bool {
	return len(UpcomingOffsets(t, now)) > 0
}
