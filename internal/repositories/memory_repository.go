package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"credline/internal/models"
)

// memoryCreditLineRepository is an in-memory CreditLineRepository. It backs
// tests and local development without a database. ExecuteInTransaction holds
// the store lock for the whole callback, so a unit of work is observed
// atomically; it does not roll back on error, which callers avoid by
// validating before writing.
type memoryCreditLineRepository struct {
	mu       sync.RWMutex
	lines    map[string]*models.CreditLine
	order    []string
	txs      []models.Transaction
	nextTxID uint
}

func NewMemoryCreditLineRepository() CreditLineRepository {
	return &memoryCreditLineRepository{
		lines:    make(map[string]*models.CreditLine),
		nextTxID: 1,
	}
}

func (r *memoryCreditLineRepository) Create(line *models.CreditLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(line)
}

func (r *memoryCreditLineRepository) GetByID(id string) (*models.CreditLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(id)
}

func (r *memoryCreditLineRepository) GetByWalletAddress(walletAddress string) ([]*models.CreditLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByWalletLocked(walletAddress)
}

func (r *memoryCreditLineRepository) GetAll() ([]*models.CreditLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getAllLocked()
}

func (r *memoryCreditLineRepository) Update(line *models.CreditLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(line)
}

func (r *memoryCreditLineRepository) CreateTransaction(tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createTransactionLocked(tx)
}

func (r *memoryCreditLineRepository) GetTransactions(ctx context.Context, creditLineID string, q TransactionQuery) ([]models.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getTransactionsLocked(creditLineID, q)
}

func (r *memoryCreditLineRepository) LatestTransaction(creditLineID string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latestTransactionLocked(creditLineID)
}

func (r *memoryCreditLineRepository) SumTransactionAmounts(ctx context.Context, creditLineID string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sumTransactionAmountsLocked(creditLineID), nil
}

func (r *memoryCreditLineRepository) ExecuteInTransaction(fn func(CreditLineRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&memoryTxRepository{store: r})
}

// Unlocked variants, called with r.mu held.

func (r *memoryCreditLineRepository) createLocked(line *models.CreditLine) error {
	if line.ID == "" {
		if err := line.BeforeCreate(nil); err != nil {
			return err
		}
	}
	if _, exists := r.lines[line.ID]; exists {
		return ErrDuplicateCreditLine
	}
	now := time.Now()
	line.CreatedAt = now
	line.UpdatedAt = now

	stored := *line
	r.lines[line.ID] = &stored
	r.order = append(r.order, line.ID)
	return nil
}

func (r *memoryCreditLineRepository) getLocked(id string) (*models.CreditLine, error) {
	line, ok := r.lines[id]
	if !ok {
		return nil, ErrCreditLineNotFound
	}
	copied := *line
	return &copied, nil
}

func (r *memoryCreditLineRepository) getByWalletLocked(walletAddress string) ([]*models.CreditLine, error) {
	var lines []*models.CreditLine
	for _, id := range r.order {
		if line := r.lines[id]; line.WalletAddress == walletAddress {
			copied := *line
			lines = append(lines, &copied)
		}
	}
	return lines, nil
}

func (r *memoryCreditLineRepository) getAllLocked() ([]*models.CreditLine, error) {
	lines := make([]*models.CreditLine, 0, len(r.order))
	for _, id := range r.order {
		copied := *r.lines[id]
		lines = append(lines, &copied)
	}
	return lines, nil
}

func (r *memoryCreditLineRepository) updateLocked(line *models.CreditLine) error {
	stored, ok := r.lines[line.ID]
	if !ok {
		return ErrCreditLineNotFound
	}
	stored.CreditLimit = line.CreditLimit
	stored.CurrentBalance = line.CurrentBalance
	stored.InterestRateBps = line.InterestRateBps
	stored.RiskScore = line.RiskScore
	stored.Status = line.Status
	stored.UpdatedAt = line.UpdatedAt
	return nil
}

func (r *memoryCreditLineRepository) createTransactionLocked(tx *models.Transaction) error {
	tx.ID = r.nextTxID
	r.nextTxID++
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *memoryCreditLineRepository) getTransactionsLocked(creditLineID string, q TransactionQuery) ([]models.Transaction, int64, error) {
	var matched []models.Transaction
	for _, tx := range r.txs {
		if tx.CreditLineID != creditLineID {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if q.From != nil && tx.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && tx.CreatedAt.After(*q.To) {
			continue
		}
		matched = append(matched, tx)
	}

	// Reverse chronological, later insert wins timestamp ties
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.Transaction{}, total, nil
	}
	end := q.Offset + q.Limit
	if q.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func (r *memoryCreditLineRepository) latestTransactionLocked(creditLineID string) (*models.Transaction, error) {
	var latest *models.Transaction
	for i := range r.txs {
		tx := r.txs[i]
		if tx.CreditLineID != creditLineID {
			continue
		}
		if latest == nil || tx.CreatedAt.After(latest.CreatedAt) ||
			(tx.CreatedAt.Equal(latest.CreatedAt) && tx.ID > latest.ID) {
			copied := tx
			latest = &copied
		}
	}
	return latest, nil
}

func (r *memoryCreditLineRepository) sumTransactionAmountsLocked(creditLineID string) float64 {
	var total float64
	for _, tx := range r.txs {
		if tx.CreditLineID == creditLineID {
			total += tx.Amount
		}
	}
	return total
}

// memoryTxRepository is the repository view handed to ExecuteInTransaction
// callbacks. The store lock is already held, so it calls the unlocked
// variants directly.
type memoryTxRepository struct {
	store *memoryCreditLineRepository
}

func (t *memoryTxRepository) Create(line *models.CreditLine) error {
	return t.store.createLocked(line)
}

func (t *memoryTxRepository) GetByID(id string) (*models.CreditLine, error) {
	return t.store.getLocked(id)
}

func (t *memoryTxRepository) GetByWalletAddress(walletAddress string) ([]*models.CreditLine, error) {
	return t.store.getByWalletLocked(walletAddress)
}

func (t *memoryTxRepository) GetAll() ([]*models.CreditLine, error) {
	return t.store.getAllLocked()
}

func (t *memoryTxRepository) Update(line *models.CreditLine) error {
	return t.store.updateLocked(line)
}

func (t *memoryTxRepository) CreateTransaction(tx *models.Transaction) error {
	return t.store.createTransactionLocked(tx)
}

func (t *memoryTxRepository) GetTransactions(ctx context.Context, creditLineID string, q TransactionQuery) ([]models.Transaction, int64, error) {
	return t.store.getTransactionsLocked(creditLineID, q)
}

func (t *memoryTxRepository) LatestTransaction(creditLineID string) (*models.Transaction, error) {
	return t.store.latestTransactionLocked(creditLineID)
}

func (t *memoryTxRepository) SumTransactionAmounts(ctx context.Context, creditLineID string) (float64, error) {
	return t.store.sumTransactionAmountsLocked(creditLineID), nil
}

func (t *memoryTxRepository) ExecuteInTransaction(fn func(CreditLineRepository) error) error {
	return fn(t)
}
