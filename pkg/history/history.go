package history

// Package history normalises raw YNAB transactions into the payment records
// the schedule calculations consume. It is pure and isolated from any
// CLI/HTTP concerns so that the tracker, the server and tests can all reuse
// the same data-model.

import (
	"sort"
	"time"

	"github.com/brunomvsouza/ynab.go/api/transaction"

	"github.com/yurifrl/paydown/pkg/money"
)

// Window is how many records are retained after reconciliation. Anything
// older silently falls out, so schedule counting against a far-future
// deadline only sees the most recent Window payments. Known limitation.
const Window = 20

// ClearedStatus mirrors the ledger's clearance flag.
type ClearedStatus int

const (
	ClearedUnknown ClearedStatus = iota
	Cleared
	Uncleared
)

// PaymentRecord is one reconciled ledger entry. Amounts are magnitudes; a
// zero amount is a deliberate "blank" acknowledgment, not a missing value.
type PaymentRecord struct {
	date    time.Time
	amount  float64
	cleared ClearedStatus
	memo    string
}

// NewPaymentRecord builds a record with the date truncated to a calendar day.
func NewPaymentRecord(date time.Time, amount float64, cleared ClearedStatus, memo string) PaymentRecord {
	return PaymentRecord{date: Day(date), amount: amount, cleared: cleared, memo: memo}
}

func (r PaymentRecord) Date() time.Time        { return r.date }
func (r PaymentRecord) Amount() float64        { return r.amount }
func (r PaymentRecord) Cleared() ClearedStatus { return r.cleared }
func (r PaymentRecord) Memo() string           { return r.memo }

// Blank reports whether this record is a zero-amount acknowledgment.
func (r PaymentRecord) Blank() bool { return r.amount == 0 }

// Day strips the time component, keeping year-month-day in UTC so that
// records and schedule boundaries compare as calendar dates, never instants.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FromTransactions maps raw ledger transactions into payment records:
// absolute value converted to decimal, sorted newest first, truncated to the
// most recent Window entries.
func FromTransactions(txs []*transaction.Transaction) []PaymentRecord {
	records := make([]PaymentRecord, 0, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.Deleted {
			continue
		}
		memo := ""
		if tx.Memo != nil {
			memo = *tx.Memo
		}
		records = append(records, NewPaymentRecord(
			tx.Date.Time,
			money.ToDecimal(money.Abs(tx.Amount)),
			clearedStatus(tx.Cleared),
			memo,
		))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].date.After(records[j].date)
	})

	if len(records) > Window {
		records = records[:Window]
	}
	return records
}

func clearedStatus(c transaction.ClearingStatus) ClearedStatus {
	switch c {
	case transaction.ClearingStatusCleared, transaction.ClearingStatusReconciled:
		return Cleared
	case transaction.ClearingStatusUncleared:
		return Uncleared
	default:
		return ClearedUnknown
	}
}

func (c ClearedStatus) String() string {
	switch c {
	case Cleared:
		return "cleared"
	case Uncleared:
		return "uncleared"
	default:
		return "unknown"
	}
}
