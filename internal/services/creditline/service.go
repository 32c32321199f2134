package creditline

import (
	"context"
	"fmt"
	"math"
	"time"

	"credline/internal/models"
	"credline/internal/repositories"
	"credline/internal/services/risk"
	"credline/internal/validation"
)

type service struct {
	repo    repositories.CreditLineRepository
	cache   Cache
	risk    risk.Service
	locks   *lockManager
	config  Config
	metrics MetricsCollector
}

// NewService creates a new credit line service.
func NewService(
	repo repositories.CreditLineRepository,
	cache Cache,
	riskService risk.Service,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if riskService == nil {
		panic("risk service is required")
	}

	if config.MaxCreditLimit <= 0 {
		config.MaxCreditLimit = DefaultMaxCreditLimit
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		risk:    riskService,
		locks:   newLockManager(),
		config:  config,
		metrics: metrics,
	}
}

func (s *service) Create(ctx context.Context, walletAddress string, requestedLimit float64) (*models.CreditLine, error) {
	if err := validation.ValidateWalletAddress(walletAddress); err != nil {
		return nil, ErrInvalidWalletAddress
	}
	if err := validation.ValidateAmount(requestedLimit); err != nil {
		return nil, ErrInvalidAmount
	}
	if requestedLimit > s.config.MaxCreditLimit {
		return nil, ErrInvalidAmount
	}

	line := &models.CreditLine{
		WalletAddress: walletAddress,
		CreditLimit:   requestedLimit,
		Status:        models.CreditLineStatusPending,
	}
	if err := s.repo.Create(line); err != nil {
		s.metrics.RecordError("create", "repository")
		return nil, fmt.Errorf("failed to create credit line: %w", err)
	}

	s.cache.CacheCreditLine(ctx, line)
	return line, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.CreditLine, error) {
	// Try cache first
	if line, err := s.cache.GetCreditLine(ctx, id); err == nil && line != nil {
		return line, nil
	}

	line, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrCreditLineNotFound {
			return nil, ErrCreditLineNotFound
		}
		return nil, fmt.Errorf("failed to get credit line: %w", err)
	}

	s.cache.CacheCreditLine(ctx, line)
	return line, nil
}

func (s *service) List(ctx context.Context) ([]*models.CreditLine, error) {
	lines, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list credit lines: %w", err)
	}
	return lines, nil
}

// Draw increases the line's outstanding balance. Validation order matters:
// existence, then amount, then status, then borrower identity, then limit.
func (s *service) Draw(ctx context.Context, id, borrowerID string, amount float64) (*models.CreditLine, error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperationDuration("draw", time.Since(started)) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	line, err := s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateAmount(amount); err != nil {
		s.metrics.RecordError("draw", "invalid_amount")
		return nil, ErrInvalidAmount
	}
	if line.Status != models.CreditLineStatusActive {
		s.metrics.RecordError("draw", "invalid_status")
		return nil, ErrInvalidStatus
	}
	if borrowerID != line.WalletAddress {
		s.metrics.RecordError("draw", "unauthorized")
		return nil, ErrUnauthorizedBorrower
	}
	if line.CurrentBalance+amount > line.CreditLimit+amountEpsilon {
		s.metrics.RecordError("draw", "over_limit")
		return nil, ErrOverLimit
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.CreditLineRepository) error {
		line.CurrentBalance += amount
		line.UpdatedAt = time.Now()
		if err := tx.Update(line); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeDraw,
			Amount:           amount,
			BorrowerID:       borrowerID,
			ResultingBalance: line.CurrentBalance,
			Description:      "Credit line draw",
		})
	})
	if err != nil {
		s.metrics.RecordError("draw", "repository")
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.cache.InvalidateCreditLine(ctx, id)
	s.metrics.RecordTransaction(models.TransactionTypeDraw, amount)
	return line, nil
}

// Repay decreases the line's outstanding balance. Repayment is permitted while
// the line is active or suspended. Overpayment is rejected, never clamped.
func (s *service) Repay(ctx context.Context, id string, amount float64) (*models.CreditLine, error) {
	started := time.Now()
	defer func() { s.metrics.RecordOperationDuration("repay", time.Since(started)) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	line, err := s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateAmount(amount); err != nil {
		s.metrics.RecordError("repay", "invalid_amount")
		return nil, ErrInvalidAmount
	}
	if line.Status != models.CreditLineStatusActive && line.Status != models.CreditLineStatusSuspended {
		s.metrics.RecordError("repay", "invalid_status")
		return nil, ErrInvalidStatus
	}
	if amount > line.CurrentBalance+amountEpsilon {
		s.metrics.RecordError("repay", "overpayment")
		return nil, ErrInvalidAmount
	}

	err = s.repo.ExecuteInTransaction(func(tx repositories.CreditLineRepository) error {
		line.CurrentBalance = roundBalance(line.CurrentBalance - amount)
		line.UpdatedAt = time.Now()
		if err := tx.Update(line); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeRepayment,
			Amount:           -amount,
			ResultingBalance: line.CurrentBalance,
			Description:      "Credit line repayment",
		})
	})
	if err != nil {
		s.metrics.RecordError("repay", "repository")
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.cache.InvalidateCreditLine(ctx, id)
	s.metrics.RecordTransaction(models.TransactionTypeRepayment, amount)
	return line, nil
}

func (s *service) Suspend(ctx context.Context, id string) (*models.CreditLine, error) {
	return s.transition(ctx, id, models.CreditLineStatusSuspended, models.CreditLineStatusActive)
}

func (s *service) Resume(ctx context.Context, id string) (*models.CreditLine, error) {
	return s.transition(ctx, id, models.CreditLineStatusActive, models.CreditLineStatusSuspended)
}

func (s *service) Close(ctx context.Context, id string) (*models.CreditLine, error) {
	return s.transition(ctx, id, models.CreditLineStatusClosed,
		models.CreditLineStatusActive, models.CreditLineStatusSuspended)
}

// ApplyRiskAssessment evaluates the line's wallet and activates a pending
// line with the assessed limit and rate. The evaluator call happens before
// the line's lock is taken; status is re-checked once the lock is held.
func (s *service) ApplyRiskAssessment(ctx context.Context, id string) (*models.CreditLine, error) {
	line, err := s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}
	if line.Status != models.CreditLineStatusPending {
		return nil, ErrInvalidTransition
	}

	assessment, err := s.risk.EvaluateWallet(ctx, line.WalletAddress)
	if err != nil {
		s.metrics.RecordError("apply_risk", "evaluation")
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	line, err = s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}
	if line.Status != models.CreditLineStatusPending {
		return nil, ErrInvalidTransition
	}

	limit := math.Min(assessment.CreditLimit, s.config.MaxCreditLimit)
	err = s.repo.ExecuteInTransaction(func(tx repositories.CreditLineRepository) error {
		line.CreditLimit = limit
		line.InterestRateBps = assessment.InterestRateBps
		line.RiskScore = assessment.RiskScore
		line.Status = models.CreditLineStatusActive
		line.UpdatedAt = time.Now()
		if err := tx.Update(line); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeStatusChange,
			Amount:           0,
			ResultingBalance: line.CurrentBalance,
			Description: fmt.Sprintf("Risk assessment applied, status changed from %s to %s",
				models.CreditLineStatusPending, models.CreditLineStatusActive),
		})
	})
	if err != nil {
		s.metrics.RecordError("apply_risk", "repository")
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.cache.InvalidateCreditLine(ctx, id)
	return line, nil
}

// VerifyLedger checks the line's denormalized balance against a fold over its
// transaction log and against the latest resulting balance snapshot.
func (s *service) VerifyLedger(ctx context.Context, id string) (*LedgerCheck, error) {
	line, err := s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}

	sum, err := s.repo.SumTransactionAmounts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fold transaction log: %w", err)
	}
	last, err := s.repo.LatestTransaction(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest transaction: %w", err)
	}
	_, count, err := s.repo.GetTransactions(ctx, id, repositories.TransactionQuery{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	consistent := amountsEqual(line.CurrentBalance, sum)
	if last == nil {
		consistent = consistent && amountsEqual(line.CurrentBalance, 0)
	} else {
		consistent = consistent && amountsEqual(line.CurrentBalance, last.ResultingBalance)
	}

	return &LedgerCheck{
		CreditLineID:     line.ID,
		CurrentBalance:   line.CurrentBalance,
		LedgerBalance:    sum,
		TransactionCount: count,
		Consistent:       consistent,
	}, nil
}

// transition moves the line to next if its current status is in from, and
// records a status_change transaction.
func (s *service) transition(ctx context.Context, id, next string, from ...string) (*models.CreditLine, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	line, err := s.loadForUpdate(id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, status := range from {
		if line.Status == status {
			allowed = true
			break
		}
	}
	if !allowed || !line.CanTransitionTo(next) {
		s.metrics.RecordError("transition", "invalid_transition")
		return nil, ErrInvalidTransition
	}

	prev := line.Status
	err = s.repo.ExecuteInTransaction(func(tx repositories.CreditLineRepository) error {
		line.Status = next
		line.UpdatedAt = time.Now()
		if err := tx.Update(line); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeStatusChange,
			Amount:           0,
			ResultingBalance: line.CurrentBalance,
			Description:      fmt.Sprintf("Status changed from %s to %s", prev, next),
		})
	})
	if err != nil {
		s.metrics.RecordError("transition", "repository")
		return nil, fmt.Errorf("%w: %w", ErrOperationFailed, err)
	}

	s.cache.InvalidateCreditLine(ctx, id)
	s.metrics.RecordTransaction(models.TransactionTypeStatusChange, 0)
	return line, nil
}

// loadForUpdate reads the authoritative row, bypassing the cache.
func (s *service) loadForUpdate(id string) (*models.CreditLine, error) {
	line, err := s.repo.GetByID(id)
	if err != nil {
		if err == repositories.ErrCreditLineNotFound {
			return nil, ErrCreditLineNotFound
		}
		return nil, fmt.Errorf("failed to get credit line: %w", err)
	}
	return line, nil
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < amountEpsilon
}

// roundBalance keeps repeated float64 arithmetic from leaving dust like
// 0.30000000000000004 on the stored balance.
func roundBalance(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
