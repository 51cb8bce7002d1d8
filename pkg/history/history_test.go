package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
)

func tx(date string, milliunits int64, cleared transaction.ClearingStatus, memo string) *transaction.Transaction {
	d, err := api.DateFromString(date)
	if err != nil {
		panic(err)
	}
	return &transaction.Transaction{
		Date:    d,
		Amount:  milliunits,
		Cleared: cleared,
		Memo:    &memo,
	}
}

func TestFromTransactions(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("2026-08-10", -20000, transaction.ClearingStatusCleared, "payment"),
		tx("2026-08-12", -15500, transaction.ClearingStatusUncleared, ""),
		tx("2026-08-11", 0, transaction.ClearingStatusCleared, "skipped this week"),
	}

	records := FromTransactions(txs)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Newest first.
	if got := records[0].Date().Format("2006-01-02"); got != "2026-08-12" {
		t.Errorf("expected newest record first, got %s", got)
	}
	if records[0].Amount() != 15.50 {
		t.Errorf("expected absolute decimal amount 15.50, got %v", records[0].Amount())
	}
	if records[0].Cleared() != Uncleared {
		t.Errorf("expected uncleared, got %v", records[0].Cleared())
	}

	if !records[1].Blank() {
		t.Errorf("zero-amount record should be a blank acknowledgment")
	}
	if records[1].Memo() != "skipped this week" {
		t.Errorf("memo lost: %q", records[1].Memo())
	}

	if records[2].Amount() != 20.00 {
		t.Errorf("expected magnitude 20.00, got %v", records[2].Amount())
	}
}

func TestFromTransactionsTruncatesToWindow(t *testing.T) {
	var txs []*transaction.Transaction
	for i := 0; i < Window+10; i++ {
		date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		txs = append(txs, tx(date.Format("2006-01-02"), -1000, transaction.ClearingStatusCleared, fmt.Sprintf("payment %d", i)))
	}

	records := FromTransactions(txs)
	if len(records) != Window {
		t.Fatalf("expected window of %d records, got %d", Window, len(records))
	}
	// The oldest 10 fell out; the newest survives at the head.
	if got := records[0].Date().Format("2006-01-02"); got != "2026-01-30" {
		t.Errorf("expected newest retained record 2026-01-30, got %s", got)
	}
}

func TestFromTransactionsSkipsDeleted(t *testing.T) {
	deleted := tx("2026-08-10", -20000, transaction.ClearingStatusCleared, "")
	deleted.Deleted = true
	records := FromTransactions([]*transaction.Transaction{deleted})
	if len(records) != 0 {
		t.Fatalf("deleted transaction should be dropped, got %d records", len(records))
	}
}

func TestDayStripsTime(t *testing.T) {
	stamp := time.Date(2026, 8, 31, 23, 59, 10, 0, time.FixedZone("X", 3600))
	day := Day(stamp)
	if day.Hour() != 0 || day.Minute() != 0 || day.Location() != time.UTC {
		t.Errorf("Day did not normalise to UTC midnight: %v", day)
	}
	if day.Year() != 2026 || day.Month() != 8 || day.Day() != 31 {
		t.Errorf("Day changed the calendar date: %v", day)
	}
}
