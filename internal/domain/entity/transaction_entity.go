package entity

import (
	"time"
)

// TransactionType tags a ledger line as money in or money out. The sign is
// carried here, not in Amount, which is always a non-negative magnitude.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry. UserID references exactly one owner,
// set at creation and never reassigned; every read and write of a transaction
// is scoped to that owner.
type Transaction struct {
	ID          string
	Description string
	Amount      float64
	Category    string
	Type        TransactionType
	Date        time.Time // calendar date; time-of-day is always midnight UTC
	UserID      string
	ReceiptURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
