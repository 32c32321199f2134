package repositories

import (
	"context"
	"fmt"

	"credline/internal/models"

	"gorm.io/gorm"
)

type creditLineRepository struct {
	db *gorm.DB
}

func NewCreditLineRepository(db *gorm.DB) CreditLineRepository {
	return &creditLineRepository{
		db: db,
	}
}

func (r *creditLineRepository) Create(line *models.CreditLine) error {
	result := r.db.Create(line)
	if result.Error != nil {
		return fmt.Errorf("failed to create credit line: %w", result.Error)
	}
	return nil
}

func (r *creditLineRepository) GetByID(id string) (*models.CreditLine, error) {
	var line models.CreditLine
	if err := r.db.Where("id = ?", id).First(&line).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCreditLineNotFound
		}
		return nil, fmt.Errorf("failed to get credit line: %w", err)
	}
	return &line, nil
}

func (r *creditLineRepository) GetByWalletAddress(walletAddress string) ([]*models.CreditLine, error) {
	var lines []*models.CreditLine
	err := r.db.Where("wallet_address = ?", walletAddress).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get credit lines by wallet: %w", err)
	}
	return lines, nil
}

func (r *creditLineRepository) GetAll() ([]*models.CreditLine, error) {
	var lines []*models.CreditLine
	if err := r.db.Order("created_at ASC, id ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list credit lines: %w", err)
	}
	return lines, nil
}

func (r *creditLineRepository) Update(line *models.CreditLine) error {
	result := r.db.Model(&models.CreditLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"credit_limit":      line.CreditLimit,
			"current_balance":   line.CurrentBalance,
			"interest_rate_bps": line.InterestRateBps,
			"risk_score":        line.RiskScore,
			"status":            line.Status,
			"updated_at":        line.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update credit line: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCreditLineNotFound
	}
	return nil
}

func (r *creditLineRepository) CreateTransaction(tx *models.Transaction) error {
	result := r.db.Create(tx)
	if result.Error != nil {
		return fmt.Errorf("failed to append transaction: %w", result.Error)
	}
	return nil
}

func (r *creditLineRepository) GetTransactions(ctx context.Context, creditLineID string, q TransactionQuery) ([]models.Transaction, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("credit_line_id = ?", creditLineID)

	if q.Type != "" {
		base = base.Where("type = ?", q.Type)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txs []models.Transaction
	err := base.Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, total, nil
}

func (r *creditLineRepository) LatestTransaction(creditLineID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.Where("credit_line_id = ?", creditLineID).
		Order("created_at DESC, id DESC").
		First(&tx).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}
	return &tx, nil
}

func (r *creditLineRepository) SumTransactionAmounts(ctx context.Context, creditLineID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("credit_line_id = ?", creditLineID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum transaction amounts: %w", err)
	}
	return total, nil
}

func (r *creditLineRepository) ExecuteInTransaction(fn func(CreditLineRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &creditLineRepository{db: tx}
		return fn(txRepo)
	})
}
