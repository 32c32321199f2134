package creditline

import (
	"context"

	"credline/internal/models"
)

// Service defines the credit line service interface.
type Service interface {
	// Lifecycle
	Create(ctx context.Context, walletAddress string, requestedLimit float64) (*models.CreditLine, error)
	ApplyRiskAssessment(ctx context.Context, id string) (*models.CreditLine, error)
	Suspend(ctx context.Context, id string) (*models.CreditLine, error)
	Resume(ctx context.Context, id string) (*models.CreditLine, error)
	Close(ctx context.Context, id string) (*models.CreditLine, error)

	// Balance operations
	Draw(ctx context.Context, id, borrowerID string, amount float64) (*models.CreditLine, error)
	Repay(ctx context.Context, id string, amount float64) (*models.CreditLine, error)

	// Reads
	Get(ctx context.Context, id string) (*models.CreditLine, error)
	List(ctx context.Context) ([]*models.CreditLine, error)
	VerifyLedger(ctx context.Context, id string) (*LedgerCheck, error)
}
