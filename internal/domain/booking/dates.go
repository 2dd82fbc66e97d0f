package booking

import (
	"strings"
	"time"
)

// QuickPickWindowDays is the size of the rolling near-term date window.
const QuickPickWindowDays = 4

// DateOption is one near-term quick-pick date.
type DateOption struct {
	Weekday string    `json:"weekday"` // short label, e.g. "Mon"
	Day     int       `json:"day"`     // day of month
	Date    time.Time `json:"date"`
	IsToday bool      `json:"is_today"`
}

// QuickPickDates returns the rolling window of consecutive calendar days
// starting at now. Computed at render time, never cached.
func QuickPickDates(now time.Time) []DateOption {
	opts := make([]DateOption, QuickPickWindowDays)
	for i := range opts {
		d := now.AddDate(0, 0, i)
		opts[i] = DateOption{
			Weekday: d.Format("Mon"),
			Day:     d.Day(),
			Date:    d,
			IsToday: i == 0,
		}
	}
	return opts
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsCustomDate reports whether the selected date falls outside the
// quick-pick window computed from now. A custom date supersedes the
// quick-picks: only one date is ever selected.
func IsCustomDate(selected, now time.Time) bool {
	for _, opt := range QuickPickDates(now) {
		if SameDay(opt.Date, selected) {
			return false
		}
	}
	return true
}

// DateLabel formats the human-readable appointment date, e.g. "Mon, Jan 2".
func DateLabel(t time.Time) string {
	return t.Format("Mon, Jan 2")
}

// MonthLabel is the uppercased month heading shown above the date picker.
func MonthLabel(t time.Time) string {
	return strings.ToUpper(t.Month().String())
}
