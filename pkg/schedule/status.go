package schedule

import (
	"time"

	"github.com/yurifrl/paydown/pkg/history"
)

// Status is the same-day payment verdict. It is recomputed fresh on every
// evaluation; nothing transitions or persists.
type Status int

const (
	// StatusNotScheduled: today is not one of the account's payment days.
	StatusNotScheduled Status = iota
	// StatusPending: today is a payment day and no payment is recorded yet.
	StatusPending
	// StatusCompleted: today is a payment day and a qualifying record
	// (real payment or zero-amount blank) already exists for today.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "payment completed today"
	case StatusPending:
		return "payment pending today"
	default:
		return "not a payment day"
	}
}

// StatusFor derives today's verdict from the weekday set and the reconciled
// payment history. It uses the same weekday membership test as the deadline
// counting, so the two can never disagree on what counts as a payment day.
func StatusFor(today time.Time, days WeekdaySet, records []history.PaymentRecord) Status {
	if !days.Contains(today) {
		return StatusNotScheduled
	}
	day := history.Day(today)
	for _, r := range records {
		if r.Date().Equal(day) && r.Amount() >= 0 {
			return StatusCompleted
		}
	}
	return StatusPending
}
