package repositories

import (
	"context"
	"testing"

	"credline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryCreditLineRepository()

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrCreditLineNotFound)

	err = repo.Update(&models.CreditLine{ID: "missing"})
	assert.ErrorIs(t, err, ErrCreditLineNotFound)
}

func TestMemoryRepositoryCreationOrder(t *testing.T) {
	repo := NewMemoryCreditLineRepository()

	var ids []string
	for i := 0; i < 3; i++ {
		line := &models.CreditLine{
			WalletAddress: "0x1111111111111111111111111111111111111111",
			CreditLimit:   100,
			Status:        models.CreditLineStatusPending,
		}
		require.NoError(t, repo.Create(line))
		ids = append(ids, line.ID)
	}

	lines, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.Equal(t, ids[i], line.ID)
	}
}

func TestMemoryRepositoryAssignsIDs(t *testing.T) {
	repo := NewMemoryCreditLineRepository()

	line := &models.CreditLine{
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Status:        models.CreditLineStatusPending,
	}
	require.NoError(t, repo.Create(line))
	assert.NotEmpty(t, line.ID)

	tx1 := &models.Transaction{CreditLineID: line.ID, Type: models.TransactionTypeDraw, Amount: 10, ResultingBalance: 10}
	tx2 := &models.Transaction{CreditLineID: line.ID, Type: models.TransactionTypeDraw, Amount: 5, ResultingBalance: 15}
	require.NoError(t, repo.CreateTransaction(tx1))
	require.NoError(t, repo.CreateTransaction(tx2))
	assert.Greater(t, tx2.ID, tx1.ID, "transaction ids are monotonic")
}

func TestMemoryRepositoryExecuteInTransaction(t *testing.T) {
	repo := NewMemoryCreditLineRepository()

	line := &models.CreditLine{
		WalletAddress: "0x1111111111111111111111111111111111111111",
		CreditLimit:   100,
		Status:        models.CreditLineStatusActive,
	}
	require.NoError(t, repo.Create(line))

	err := repo.ExecuteInTransaction(func(tx CreditLineRepository) error {
		line.CurrentBalance = 40
		if err := tx.Update(line); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			CreditLineID:     line.ID,
			Type:             models.TransactionTypeDraw,
			Amount:           40,
			ResultingBalance: 40,
		})
	})
	require.NoError(t, err)

	got, err := repo.GetByID(line.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.CurrentBalance)

	sum, err := repo.SumTransactionAmounts(context.Background(), line.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, sum)
}
