package ynab

import (
	"fmt"
	"time"

	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
)

// Client wraps the YNAB API client with the narrow ledger surface the
// tracker needs: balance reads, transaction reads and fire-and-forget
// writes. It performs no retries; failures propagate to the caller.
type Client struct {
	client   ynab.ClientServicer
	budgetID string
}

func New(token, budgetID string) *Client {
	return &Client{
		client:   ynab.NewClient(token),
		budgetID: budgetID,
	}
}

// Balance returns the account balance in milliunits, signed as YNAB
// reports it (debt accounts are negative).
func (c *Client) Balance(accountID string) (int64, error) {
	account, err := c.client.Account().GetAccount(c.budgetID, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	return account.Balance, nil
}

// Transactions fetches the account's transactions, optionally limited to
// those on or after since.
func (c *Client) Transactions(accountID string, since *time.Time) ([]*transaction.Transaction, error) {
	var filter *transaction.Filter
	if since != nil {
		date, err := api.DateFromString(since.Format("2006-01-02"))
		if err != nil {
			return nil, err
		}
		filter = &transaction.Filter{Since: &date}
	}

	txs, err := c.client.Transaction().GetTransactionsByAccount(c.budgetID, accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for %s: %w", accountID, err)
	}
	return txs, nil
}

// CreateTransaction writes a single transaction for the given calendar
// date. Amount is in signed milliunits; a zero amount records a blank
// acknowledgment.
func (c *Client) CreateTransaction(accountID string, date time.Time, milliunits int64, payee, memo string) error {
	payload, err := buildPayload(accountID, date, milliunits, payee, memo, nil)
	if err != nil {
		return err
	}
	if _, err := c.client.Transaction().CreateTransactions(c.budgetID, []transaction.PayloadTransaction{payload}); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateTransfer records a transfer as a mirrored pair of transactions,
// outflow on the source account and inflow on the destination, linked by a
// shared import ID.
func (c *Client) CreateTransfer(fromID, toID string, date time.Time, milliunits int64, memo string) error {
	importID := fmt.Sprintf("paydown:%d", time.Now().UnixNano())

	out, err := buildPayload(fromID, date, -milliunits, "Transfer", memo, &importID)
	if err != nil {
		return err
	}
	in, err := buildPayload(toID, date, milliunits, "Transfer", memo, &importID)
	if err != nil {
		return err
	}

	if _, err := c.client.Transaction().CreateTransactions(c.budgetID, []transaction.PayloadTransaction{out, in}); err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

func buildPayload(accountID string, date time.Time, milliunits int64, payee, memo string, importID *string) (transaction.PayloadTransaction, error) {
	apiDate, err := api.DateFromString(date.Format("2006-01-02"))
	if err != nil {
		return transaction.PayloadTransaction{}, err
	}

	payload := transaction.PayloadTransaction{
		AccountID: accountID,
		Date:      apiDate,
		Amount:    milliunits,
		Cleared:   transaction.ClearingStatusCleared,
		Approved:  true,
		ImportID:  importID,
	}
	if payee != "" {
		payload.PayeeName = &payee
	}
	if memo != "" {
		payload.Memo = &memo
	}
	return payload, nil
}
