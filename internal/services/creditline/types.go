package creditline

import (
	"context"
	"time"

	"credline/internal/models"
)

// Config holds configuration for credit line operations.
type Config struct {
	// MaxCreditLimit caps both requested and risk-assessed limits.
	MaxCreditLimit    float64
	ProcessingTimeout time.Duration
}

// Cache defines the caching operations the service needs. It is satisfied by
// cache.CacheService.
type Cache interface {
	GetCreditLine(ctx context.Context, id string) (*models.CreditLine, error)
	CacheCreditLine(ctx context.Context, line *models.CreditLine) error
	InvalidateCreditLine(ctx context.Context, id string) error
}

// LedgerCheck is the result of verifying a line's cached balance against its
// transaction log.
type LedgerCheck struct {
	CreditLineID     string  `json:"credit_line_id"`
	CurrentBalance   float64 `json:"current_balance"`
	LedgerBalance    float64 `json:"ledger_balance"`
	TransactionCount int64   `json:"transaction_count"`
	Consistent       bool    `json:"consistent"`
}
