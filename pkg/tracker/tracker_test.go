package tracker

import (
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/charmbracelet/log"

	"github.com/yurifrl/paydown/pkg/config"
	"github.com/yurifrl/paydown/pkg/schedule"
)

type fakeWrite struct {
	accountID  string
	date       time.Time
	milliunits int64
	payee      string
	memo       string
}

type fakeLedger struct {
	balance int64
	txs     []*transaction.Transaction
	err     error

	writes    []fakeWrite
	transfers int
}

func (f *fakeLedger) Balance(string) (int64, error) {
	return f.balance, f.err
}

func (f *fakeLedger) Transactions(string, *time.Time) ([]*transaction.Transaction, error) {
	return f.txs, f.err
}

func (f *fakeLedger) CreateTransaction(accountID string, date time.Time, milliunits int64, payee, memo string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, fakeWrite{accountID, date, milliunits, payee, memo})
	return nil
}

func (f *fakeLedger) CreateTransfer(fromID, toID string, date time.Time, milliunits int64, memo string) error {
	if f.err != nil {
		return f.err
	}
	f.transfers++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		YNAB: config.YNABConfig{BudgetID: "budget-123"},
		Accounts: map[string]config.Account{
			"car-loan": {
				AccountID:     "acct-abc",
				Payee:         "AutoBank",
				PaymentAmount: 20,
				Weekdays:      []int{1, 2, 3, 4, 5},
				Deadline: &config.Deadline{
					Date:              "2025-03-28",
					Enabled:           true,
					ShowDaysRemaining: true,
				},
			},
			"card": {
				AccountID:     "acct-def",
				PaymentAmount: 35,
				Weekdays:      []int{5},
			},
		},
	}
}

func testTracker(ledger Ledger) *Tracker {
	return New(log.New(os.Stderr), testConfig(), ledger)
}

func apiDate(s string) api.Date {
	d, err := api.DateFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluateAt(t *testing.T) {
	ledger := &fakeLedger{
		balance: -300000, // YNAB reports debt balances negative
		txs: []*transaction.Transaction{
			{Date: apiDate("2025-03-17"), Amount: -20000, Cleared: transaction.ClearingStatusCleared},
		},
	}

	// Monday, inside the Mon-Fri schedule, payment already made today.
	monday := time.Date(2025, time.March, 17, 14, 30, 0, 0, time.UTC)
	report, err := testTracker(ledger).EvaluateAt("car-loan", monday)
	if err != nil {
		t.Fatalf("EvaluateAt failed: %v", err)
	}

	if report.State.OutstandingBalance != 300.00 {
		t.Errorf("outstanding balance = %v, expected 300.00", report.State.OutstandingBalance)
	}
	if report.Status != schedule.StatusCompleted {
		t.Errorf("status = %v, expected completed", report.Status)
	}
	// Ten Mon-Fri days through 2025-03-28, one satisfied today.
	if report.State.PaymentsRemaining != 9 {
		t.Errorf("payments remaining = %d, expected 9", report.State.PaymentsRemaining)
	}
	if report.State.CalendarDaysUntilDeadline != 11 {
		t.Errorf("calendar days = %d, expected 11", report.State.CalendarDaysUntilDeadline)
	}
	if !report.Projected || report.PaymentsLeft != 15 {
		t.Errorf("projection = %d payments (ok=%v), expected 15", report.PaymentsLeft, report.Projected)
	}
	if expected := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 225); !report.FinishDate.Equal(expected) {
		t.Errorf("finish date = %s", report.FinishDate.Format("2006-01-02"))
	}
}

func TestEvaluateAtNoDeadline(t *testing.T) {
	ledger := &fakeLedger{balance: -70000}
	monday := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)

	report, err := testTracker(ledger).EvaluateAt("card", monday)
	if err != nil {
		t.Fatalf("EvaluateAt failed: %v", err)
	}
	if report.State.PaymentsRemaining != 0 || report.State.CalendarDaysUntilDeadline != 0 {
		t.Errorf("deadline fields should stay zero without an active deadline: %+v", report.State)
	}
	// Monday is not in the Friday-only schedule.
	if report.Status != schedule.StatusNotScheduled {
		t.Errorf("status = %v, expected not-scheduled", report.Status)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	ledger := &fakeLedger{
		balance: -300000,
		txs: []*transaction.Transaction{
			{Date: apiDate("2025-03-17"), Amount: -20000, Cleared: transaction.ClearingStatusCleared},
		},
	}
	tracker := testTracker(ledger)
	monday := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)

	first, err := tracker.EvaluateAt("car-loan", monday)
	if err != nil {
		t.Fatalf("first evaluation failed: %v", err)
	}
	second, err := tracker.EvaluateAt("car-loan", monday)
	if err != nil {
		t.Fatalf("second evaluation failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical reports")
	}
}

func TestEvaluateUnknownAccount(t *testing.T) {
	if _, err := testTracker(&fakeLedger{}).Evaluate("boat"); err == nil {
		t.Error("expected a lookup failure for an unconfigured account")
	}
}

func TestEvaluatePropagatesLedgerErrors(t *testing.T) {
	upstream := errors.New("ynab is down")
	_, err := testTracker(&fakeLedger{err: upstream}).Evaluate("car-loan")
	if !errors.Is(err, upstream) {
		t.Errorf("expected the upstream error to propagate, got %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	ledger := &fakeLedger{}
	if err := testTracker(ledger).RecordPayment("car-loan", 20.00); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if len(ledger.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(ledger.writes))
	}
	write := ledger.writes[0]
	if write.milliunits != 20000 || write.accountID != "acct-abc" || write.payee != "AutoBank" {
		t.Errorf("unexpected write: %+v", write)
	}
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	ledger := &fakeLedger{}
	if err := testTracker(ledger).RecordPayment("car-loan", 0); err == nil {
		t.Error("expected an error for a zero payment")
	}
	if len(ledger.writes) != 0 {
		t.Error("no write should happen on validation failure")
	}
}

func TestRecordBlank(t *testing.T) {
	ledger := &fakeLedger{}
	if err := testTracker(ledger).RecordBlank("car-loan", "travelling this week"); err != nil {
		t.Fatalf("RecordBlank failed: %v", err)
	}
	write := ledger.writes[0]
	if write.milliunits != 0 || write.memo != "travelling this week" {
		t.Errorf("unexpected blank write: %+v", write)
	}
}

func TestRecordBlankRequiresReason(t *testing.T) {
	ledger := &fakeLedger{}
	tracker := testTracker(ledger)
	for _, reason := range []string{"", "   "} {
		if err := tracker.RecordBlank("car-loan", reason); err == nil {
			t.Errorf("expected rejection for reason %q", reason)
		}
	}
	if len(ledger.writes) != 0 {
		t.Error("rejected blanks must not reach the ledger")
	}
}

func TestRecordTransfer(t *testing.T) {
	ledger := &fakeLedger{}
	if err := testTracker(ledger).RecordTransfer("card", "car-loan", 50, "rebalance"); err != nil {
		t.Fatalf("RecordTransfer failed: %v", err)
	}
	if ledger.transfers != 1 {
		t.Errorf("expected one transfer, got %d", ledger.transfers)
	}
	if err := testTracker(ledger).RecordTransfer("card", "boat", 50, ""); err == nil {
		t.Error("expected a lookup failure for an unknown destination")
	}
}
