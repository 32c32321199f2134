// Package risk is the seam through which credit limit and interest data enter
// the system. It performs no business logic of its own: it calls an Evaluator
// and checks that what came back is usable.
package risk

import (
	"context"
	"fmt"

	"credline/internal/models"
)

// Service defines the risk adapter interface.
type Service interface {
	EvaluateWallet(ctx context.Context, walletAddress string) (*models.RiskAssessment, error)
}

// Evaluator is the external risk engine abstraction.
type Evaluator interface {
	Evaluate(ctx context.Context, walletAddress string) (*models.RiskAssessment, error)
}

type service struct {
	evaluator Evaluator
}

// NewService creates a new risk service around the given evaluator. A nil
// evaluator falls back to the built-in heuristic scorer.
func NewService(evaluator Evaluator) Service {
	if evaluator == nil {
		evaluator = NewHeuristicEvaluator()
	}
	return &service{evaluator: evaluator}
}

func (s *service) EvaluateWallet(ctx context.Context, walletAddress string) (*models.RiskAssessment, error) {
	assessment, err := s.evaluator.Evaluate(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	if err := validateAssessment(assessment, walletAddress); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	return assessment, nil
}

func validateAssessment(a *models.RiskAssessment, walletAddress string) error {
	if a == nil {
		return fmt.Errorf("evaluator returned no assessment")
	}
	if a.WalletAddress != walletAddress {
		return fmt.Errorf("assessment is for wallet %q, expected %q", a.WalletAddress, walletAddress)
	}
	if a.RiskScore < 0 || a.RiskScore > 1 {
		return fmt.Errorf("risk score %v out of range [0,1]", a.RiskScore)
	}
	if a.CreditLimit < 0 {
		return fmt.Errorf("negative credit limit %v", a.CreditLimit)
	}
	if a.InterestRateBps < 0 {
		return fmt.Errorf("negative interest rate %d bps", a.InterestRateBps)
	}
	return nil
}
