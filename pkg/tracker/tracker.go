package tracker

// Package tracker orchestrates one debt evaluation: it fetches the balance
// and transaction history from the ledger, reconciles the history and runs
// the schedule calculations. Every evaluation recomputes from scratch; the
// tracker holds no cache and no state beyond its collaborators.

import (
	"fmt"
	"strings"
	"time"

	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/charmbracelet/log"

	"github.com/yurifrl/paydown/pkg/config"
	"github.com/yurifrl/paydown/pkg/history"
	"github.com/yurifrl/paydown/pkg/money"
	"github.com/yurifrl/paydown/pkg/schedule"
)

// Ledger is the external collaborator the tracker reads from and writes to.
// *ynab.Client satisfies it; tests substitute a fake.
type Ledger interface {
	Balance(accountID string) (int64, error)
	Transactions(accountID string, since *time.Time) ([]*transaction.Transaction, error)
	CreateTransaction(accountID string, date time.Time, milliunits int64, payee, memo string) error
	CreateTransfer(fromID, toID string, date time.Time, milliunits int64, memo string) error
}

type Tracker struct {
	logger *log.Logger
	config *config.Config
	ledger Ledger
}

func New(logger *log.Logger, config *config.Config, ledger Ledger) *Tracker {
	return &Tracker{
		logger: logger,
		config: config,
		ledger: ledger,
	}
}

// DebtState is the derived view of one debt. It is recomputed on every
// evaluation and never persisted. PaymentsRemaining and the calendar days
// are only meaningful when the account has an active deadline.
type DebtState struct {
	OutstandingBalance        float64 `json:"outstanding_balance"`
	PaymentsRemaining         int     `json:"payments_remaining"`
	CalendarDaysUntilDeadline int     `json:"calendar_days_until_deadline"`
}

// Report bundles everything one evaluation produces for an account.
type Report struct {
	Name    string
	Account config.Account
	Today   time.Time
	State   DebtState
	Status  schedule.Status
	History []history.PaymentRecord

	// FinishDate and PaymentsLeft are only valid when Projected is true;
	// a non-positive payment amount makes the projection not applicable.
	FinishDate   time.Time
	PaymentsLeft int
	Projected    bool
}

// Evaluate runs a full evaluation for the named account, capturing "now"
// once so every calculation in the report agrees on what today is.
func (t *Tracker) Evaluate(name string) (*Report, error) {
	return t.EvaluateAt(name, time.Now())
}

// EvaluateAt is Evaluate with an explicit evaluation time, used by callers
// that need a deterministic today.
func (t *Tracker) EvaluateAt(name string, now time.Time) (*Report, error) {
	account, err := t.config.Account(name)
	if err != nil {
		return nil, err
	}
	today := history.Day(now)

	balance, err := t.ledger.Balance(account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", name, err)
	}

	txs, err := t.ledger.Transactions(account.AccountID, nil)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", name, err)
	}
	records := history.FromTransactions(txs)

	days := account.WeekdaySet()
	report := &Report{
		Name:    name,
		Account: account,
		Today:   today,
		State: DebtState{
			OutstandingBalance: money.ToDecimal(money.Abs(balance)),
		},
		Status:  schedule.StatusFor(today, days, records),
		History: records,
	}

	if account.Deadline.Active() {
		deadline, err := account.Deadline.When()
		if err != nil {
			return nil, err
		}
		report.State.PaymentsRemaining = schedule.PaymentsRemaining(today, deadline, days, records)
		report.State.CalendarDaysUntilDeadline = schedule.DaysUntil(today, deadline)
	}

	report.FinishDate, report.PaymentsLeft, report.Projected =
		schedule.ProjectFinish(today, report.State.OutstandingBalance, account.PaymentAmount)

	t.logger.Debug("evaluated account",
		"account", name,
		"balance", report.State.OutstandingBalance,
		"status", report.Status.String(),
		"remaining", report.State.PaymentsRemaining,
		"records", len(records))

	return report, nil
}

// RecordPayment writes a payment transaction dated today to the named
// account's ledger. The amount must be positive; min/max bounds from the
// config are informational and not enforced here.
func (t *Tracker) RecordPayment(name string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("payment amount must be positive, got %v", amount)
	}
	account, err := t.config.Account(name)
	if err != nil {
		return err
	}

	today := history.Day(time.Now())
	if err := t.ledger.CreateTransaction(account.AccountID, today, money.ToMilliunits(amount), account.Payee, ""); err != nil {
		return err
	}
	t.logger.Info("recorded payment", "account", name, "amount", amount)
	return nil
}

// RecordBlank writes a zero-amount acknowledgment for today, marking the
// scheduled day as handled without moving money. The reason is mandatory
// and rejected before any write is attempted.
func (t *Tracker) RecordBlank(name, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("blank payment requires a reason")
	}
	account, err := t.config.Account(name)
	if err != nil {
		return err
	}

	today := history.Day(time.Now())
	if err := t.ledger.CreateTransaction(account.AccountID, today, 0, account.Payee, reason); err != nil {
		return err
	}
	t.logger.Info("recorded blank payment", "account", name, "reason", reason)
	return nil
}

// RecordTransfer moves money between two tracked accounts, dated today.
func (t *Tracker) RecordTransfer(fromName, toName string, amount float64, memo string) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %v", amount)
	}
	from, err := t.config.Account(fromName)
	if err != nil {
		return err
	}
	to, err := t.config.Account(toName)
	if err != nil {
		return err
	}

	today := history.Day(time.Now())
	if err := t.ledger.CreateTransfer(from.AccountID, to.AccountID, today, money.ToMilliunits(amount), memo); err != nil {
		return err
	}
	t.logger.Info("recorded transfer", "from", fromName, "to", toName, "amount", amount)
	return nil
}
