package task

import (
	"testing"
	"time"
)

func TestReminderUpcoming(t *testing.T) {
	now := time.Date(2025, 3, 20, 14, 0, 0, 0, time.Local)

	timed := func(start string, offsets ...string) Task {
		return Task{Fields: Fields{Title: "x", Date: "2025-03-20", StartTime: start, ReminderTimes: offsets}}
	}

	tests := []struct {
		name string
		task Task
		now  time.Time
		want bool
	}{
		{"30 min before", timed("14:30", "-30"), now, true},
		{"60 min offset not due", timed("14:30", "-60"), now, false},
		{"any matching offset", timed("14:30", "-60", "-30"), now, true},
		{"before the window opens", timed("14:30", "-30"), now.Add(-59 * time.Second), false},
		{"within one minute window", timed("14:30", "-30"), now.Add(30 * time.Second), true},
		{"window closed after a minute", timed("14:30", "-30"), now.Add(time.Minute), false},
		{"no offsets", timed("14:30"), now, false},
		{"unplanned", Task{Fields: Fields{StartTime: "14:30", ReminderTimes: []string{"-30"}}}, now, false},
		{
			"yesterday is never upcoming",
			Task{Fields: Fields{Date: "2025-03-19", StartTime: "14:30", ReminderTimes: []string{"-30", "-1440"}}},
			now,
			false,
		},
		{
			"all-day day before",
			Task{Fields: Fields{Date: "2025-03-21", AllDay: true, ReminderTimes: []string{DayBefore}}},
			time.Date(2025, 3, 20, 0, 0, 0, 0, time.Local),
			true,
		},
		{"unparseable offset skipped", timed("14:30", "soon", "-30"), now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReminderUpcoming(tt.task, tt.now); got != tt.want {
				t.Errorf("ReminderUpcoming() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpcomingOffsets(t *testing.T) {
	now := time.Date(2025, 3, 20, 13, 0, 0, 0, time.Local)
	tk := Task{Fields: Fields{Date: "2025-03-20", StartTime: "14:00", ReminderTimes: []string{"-60", "-30", "-60"}}}

	got := UpcomingOffsets(tk, now)
	if len(got) != 2 || got[0] != "-60" {
		t.Errorf("UpcomingOffsets = %v", got)
	}
}

func TestOffsetLabel(t *testing.T) {
	tests := map[string]string{
		"-30":   "30 min before",
		"-60":   "1 h before",
		"-1440": "1 day before",
		"-2880": "2 days before",
		"0":     "at start",
		"later": "later",
	}
	for in, want := range tests {
		if got := OffsetLabel(in); got != want {
			t.Errorf("OffsetLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
