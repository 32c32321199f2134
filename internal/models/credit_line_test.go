package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	statuses := []string{
		CreditLineStatusPending,
		CreditLineStatusActive,
		CreditLineStatusSuspended,
		CreditLineStatusClosed,
	}

	allowed := map[string]map[string]bool{
		CreditLineStatusPending:   {CreditLineStatusActive: true},
		CreditLineStatusActive:    {CreditLineStatusSuspended: true, CreditLineStatusClosed: true},
		CreditLineStatusSuspended: {CreditLineStatusActive: true, CreditLineStatusClosed: true},
		CreditLineStatusClosed:    {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			line := &CreditLine{Status: from}
			assert.Equal(t, allowed[from][to], line.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestClosedIsTerminal(t *testing.T) {
	line := &CreditLine{Status: CreditLineStatusClosed}
	assert.True(t, line.IsClosed())
	for _, to := range []string{CreditLineStatusPending, CreditLineStatusActive, CreditLineStatusSuspended, CreditLineStatusClosed} {
		assert.False(t, line.CanTransitionTo(to))
	}
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, IsValidTransactionType(TransactionTypeDraw))
	assert.True(t, IsValidTransactionType(TransactionTypeRepayment))
	assert.True(t, IsValidTransactionType(TransactionTypeStatusChange))
	assert.False(t, IsValidTransactionType("chargeback"))
	assert.False(t, IsValidTransactionType(""))
}
