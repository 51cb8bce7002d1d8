package schedule

// Package schedule holds the payment-schedule accounting: weekday
// classification, obligation counting against a deadline, the same-day
// status verdict and the finish-date projection. Everything here is a pure
// function over explicit inputs; callers capture "today" once and thread it
// through so a single evaluation never straddles midnight.

import (
	"time"

	"github.com/yurifrl/paydown/pkg/history"
)

// WeekdaySet is the set of weekdays on which a payment is due. The empty
// set means no fixed schedule: no date ever classifies as a payment day.
type WeekdaySet map[time.Weekday]bool

// NewWeekdaySet builds a set from weekday ordinals, Sunday = 0 through
// Saturday = 6, matching time.Weekday. Ordinals outside 0..6 are ignored.
func NewWeekdaySet(ordinals []int) WeekdaySet {
	set := make(WeekdaySet, len(ordinals))
	for _, ordinal := range ordinals {
		if ordinal >= 0 && ordinal <= 6 {
			set[time.Weekday(ordinal)] = true
		}
	}
	return set
}

// Contains reports whether the date falls on a scheduled weekday.
func (s WeekdaySet) Contains(date time.Time) bool {
	return s[date.Weekday()]
}

// PaymentsRemaining counts the scheduled payment days between today and the
// deadline (both inclusive) that are not yet covered by a payment record,
// clamped at zero. Records on the same calendar date are de-duplicated: one
// day's obligation is satisfied at most once no matter how many qualifying
// records land on it. Both real payments and zero-amount blanks qualify.
//
// The record window is expanded by one day on each side of [today, deadline]
// so that date-only records never drop out on a boundary.
func PaymentsRemaining(today, deadline time.Time, days WeekdaySet, records []history.PaymentRecord) int {
	today = history.Day(today)
	deadline = history.Day(deadline)

	scheduled := 0
	for d := today; !d.After(deadline); d = d.AddDate(0, 0, 1) {
		if days.Contains(d) {
			scheduled++
		}
	}

	lower := today.AddDate(0, 0, -1)
	upper := deadline.AddDate(0, 0, 1)
	seen := make(map[time.Time]bool)
	satisfied := 0
	for _, r := range records {
		date := r.Date()
		if date.Before(lower) || date.After(upper) {
			continue
		}
		if !days.Contains(date) || r.Amount() < 0 {
			continue
		}
		if seen[date] {
			continue
		}
		seen[date] = true
		satisfied++
	}

	if remaining := scheduled - satisfied; remaining > 0 {
		return remaining
	}
	return 0
}

// DaysUntil returns the calendar days from today until the deadline, with no
// weekday filtering, clamped at zero once the deadline has passed.
func DaysUntil(today, deadline time.Time) int {
	diff := int(history.Day(deadline).Sub(history.Day(today)).Hours() / 24)
	if diff < 0 {
		return 0
	}
	return diff
}
