package repositories

import (
	"context"
	"errors"
	"time"

	"credline/internal/models"
)

var (
	ErrCreditLineNotFound  = errors.New("credit line not found")
	ErrInvalidCreditLine   = errors.New("invalid credit line data")
	ErrDuplicateCreditLine = errors.New("credit line already exists")
	ErrTransactionFailed   = errors.New("transaction failed")
)

// TransactionQuery narrows a ledger read. Zero values mean "no constraint"
// except Limit/Offset, which the caller is expected to have validated.
type TransactionQuery struct {
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// CreditLineRepository defines the data access contract for credit lines and
// their append-only transaction ledger.
type CreditLineRepository interface {
	// Credit line operations
	Create(line *models.CreditLine) error
	GetByID(id string) (*models.CreditLine, error)
	GetByWalletAddress(walletAddress string) ([]*models.CreditLine, error)
	GetAll() ([]*models.CreditLine, error)
	Update(line *models.CreditLine) error

	// Ledger operations
	CreateTransaction(tx *models.Transaction) error
	GetTransactions(ctx context.Context, creditLineID string, q TransactionQuery) ([]models.Transaction, int64, error)
	LatestTransaction(creditLineID string) (*models.Transaction, error)
	SumTransactionAmounts(ctx context.Context, creditLineID string) (float64, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction; any error rolls the whole unit back.
	ExecuteInTransaction(fn func(CreditLineRepository) error) error
}
