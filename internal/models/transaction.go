package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDraw         = "draw"
	TransactionTypeRepayment    = "repayment"
	TransactionTypeStatusChange = "status_change"
)

// TransactionTypes lists every valid transaction type, used by filter validation.
var TransactionTypes = []string{
	TransactionTypeDraw,
	TransactionTypeRepayment,
	TransactionTypeStatusChange,
}

// Transaction is one entry in a credit line's append-only ledger. Amount is the
// signed effect on the balance: positive for draws, negative for repayments,
// zero for status changes. ResultingBalance snapshots the line's balance
// immediately after the entry was applied.
type Transaction struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	CreditLineID     string    `gorm:"not null;index" json:"credit_line_id"`
	Type             string    `gorm:"not null" json:"type"`
	Amount           float64   `gorm:"not null" json:"amount"`
	BorrowerID       string    `json:"borrower_id,omitempty"`
	ResultingBalance float64   `gorm:"not null" json:"resulting_balance"`
	Description      string    `json:"description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsValidTransactionType reports whether t is a known transaction type.
func IsValidTransactionType(t string) bool {
	for _, known := range TransactionTypes {
		if known == t {
			return true
		}
	}
	return false
}
