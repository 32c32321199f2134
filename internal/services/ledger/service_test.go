package ledger

import (
	"context"
	"testing"
	"time"

	"credline/internal/models"
	"credline/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0x1111111111111111111111111111111111111111"

var baseTime = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// seedLine creates an active line with n ledger entries one minute apart,
// alternating draw/repayment with a status change every fifth entry.
func seedLine(t *testing.T, repo repositories.CreditLineRepository, n int) string {
	t.Helper()

	line := &models.CreditLine{
		WalletAddress: testWallet,
		CreditLimit:   10000,
		Status:        models.CreditLineStatusActive,
	}
	require.NoError(t, repo.Create(line))

	balance := 0.0
	for i := 0; i < n; i++ {
		tx := models.Transaction{
			CreditLineID: line.ID,
			CreatedAt:    baseTime.Add(time.Duration(i) * time.Minute),
		}
		switch {
		case i%5 == 4:
			tx.Type = models.TransactionTypeStatusChange
			tx.Amount = 0
		case i%2 == 0:
			tx.Type = models.TransactionTypeDraw
			tx.Amount = 100
			tx.BorrowerID = testWallet
			balance += 100
		default:
			tx.Type = models.TransactionTypeRepayment
			tx.Amount = -40
			balance -= 40
		}
		tx.ResultingBalance = balance
		require.NoError(t, repo.CreateTransaction(&tx))
	}
	return line.ID
}

func newTestService(t *testing.T, entries int) (Service, string) {
	t.Helper()
	repo := repositories.NewMemoryCreditLineRepository()
	id := seedLine(t, repo, entries)
	return NewService(repo), id
}

func TestQueryPagination(t *testing.T) {
	svc, id := newTestService(t, 25)

	page1, err := svc.Query(context.Background(), id, Filter{}, Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page1.TotalCount)
	require.Len(t, page1.Items, 10)

	page2, err := svc.Query(context.Background(), id, Filter{}, Page{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page2.TotalCount)
	require.Len(t, page2.Items, 10)

	// Reverse chronological: page 2 continues where page 1 ended.
	assert.True(t, page1.Items[9].CreatedAt.After(page2.Items[0].CreatedAt))
	for i := 1; i < len(page2.Items); i++ {
		assert.True(t, page2.Items[i-1].CreatedAt.After(page2.Items[i].CreatedAt))
	}

	page3, err := svc.Query(context.Background(), id, Filter{}, Page{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)

	empty, err := svc.Query(context.Background(), id, Filter{}, Page{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, int64(25), empty.TotalCount)
}

func TestQueryTimestampTiesBrokenByID(t *testing.T) {
	repo := repositories.NewMemoryCreditLineRepository()
	line := &models.CreditLine{
		WalletAddress: testWallet,
		CreditLimit:   1000,
		Status:        models.CreditLineStatusActive,
	}
	require.NoError(t, repo.Create(line))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeDraw,
			Amount:           10,
			BorrowerID:       testWallet,
			ResultingBalance: float64(10 * (i + 1)),
			CreatedAt:        baseTime,
		}))
	}

	svc := NewService(repo)
	result, err := svc.Query(context.Background(), line.ID, Filter{}, Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	// Later insert wins on equal timestamps.
	assert.Greater(t, result.Items[0].ID, result.Items[1].ID)
	assert.Greater(t, result.Items[1].ID, result.Items[2].ID)
}

func TestQueryTypeFilter(t *testing.T) {
	svc, id := newTestService(t, 25)

	result, err := svc.Query(context.Background(), id,
		Filter{Type: models.TransactionTypeStatusChange}, Page{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalCount)
	for _, tx := range result.Items {
		assert.Equal(t, models.TransactionTypeStatusChange, tx.Type)
	}
}

func TestQueryTimeRange(t *testing.T) {
	svc, id := newTestService(t, 25)

	from := baseTime.Add(5 * time.Minute).Format(time.RFC3339)
	to := baseTime.Add(9 * time.Minute).Format(time.RFC3339)

	result, err := svc.Query(context.Background(), id, Filter{From: from, To: to}, Page{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalCount)

	t.Run("inverted range is empty, not an error", func(t *testing.T) {
		result, err := svc.Query(context.Background(), id, Filter{From: to, To: from}, Page{Page: 1, Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, result.Items)
		assert.Zero(t, result.TotalCount)
	})
}

func TestQueryValidation(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		page    Page
		wantErr error
	}{
		{name: "unknown type", filter: Filter{Type: "chargeback"}, page: Page{Page: 1, Limit: 10}, wantErr: ErrInvalidFilter},
		{name: "bad from", filter: Filter{From: "yesterday"}, page: Page{Page: 1, Limit: 10}, wantErr: ErrInvalidFilter},
		{name: "bad to", filter: Filter{To: "2025-13-99"}, page: Page{Page: 1, Limit: 10}, wantErr: ErrInvalidFilter},
		{name: "zero page", page: Page{Page: 0, Limit: 10}, wantErr: ErrInvalidPagination},
		{name: "negative page", page: Page{Page: -2, Limit: 10}, wantErr: ErrInvalidPagination},
		{name: "zero limit", page: Page{Page: 1, Limit: 0}, wantErr: ErrInvalidPagination},
		{name: "limit too large", page: Page{Page: 1, Limit: 101}, wantErr: ErrInvalidPagination},
		{name: "limit at cap", page: Page{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, id := newTestService(t, 5)
			_, err := svc.Query(context.Background(), id, tt.filter, tt.page)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryUnknownLine(t *testing.T) {
	svc, _ := newTestService(t, 5)

	// Not-found wins even when the filter is also invalid.
	_, err := svc.Query(context.Background(), "missing", Filter{Type: "bogus"}, Page{Page: 0, Limit: 0})
	assert.ErrorIs(t, err, ErrCreditLineNotFound)
}
