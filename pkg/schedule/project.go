package schedule

import (
	"math"
	"time"

	"github.com/yurifrl/paydown/pkg/history"
)

// cadenceDays is the assumed spacing between payments when projecting a
// finish date: one payment every 15 days, a semi-monthly assumption that is
// independent of the configured weekday set.
const cadenceDays = 15

// ProjectFinish estimates when the balance reaches zero at a fixed payment
// amount: ceil(balance/payment) payments, one every 15 days. The second
// return value is false when paymentAmount is not positive, in which case
// no projection is possible. A balance already at or below zero projects to
// today with zero payments left.
func ProjectFinish(today time.Time, balance, paymentAmount float64) (time.Time, int, bool) {
	if paymentAmount <= 0 {
		return time.Time{}, 0, false
	}
	today = history.Day(today)
	if balance <= 0 {
		return today, 0, true
	}
	paymentsLeft := int(math.Ceil(balance / paymentAmount))
	return today.AddDate(0, 0, paymentsLeft*cadenceDays), paymentsLeft, true
}
