// Package ledger answers filtered, paginated queries over a credit line's
// transaction history. It never mutates anything; writes to the ledger happen
// through the creditline service.
package ledger

import (
	"context"
	"fmt"
	"time"

	"credline/internal/models"
	"credline/internal/repositories"
)

// Pagination bounds
const (
	MinPageLimit = 1
	MaxPageLimit = 100
)

// Service defines the transaction query interface.
type Service interface {
	Query(ctx context.Context, creditLineID string, filter Filter, page Page) (*QueryResult, error)
}

type service struct {
	repo repositories.CreditLineRepository
}

// NewService creates a new transaction query service.
func NewService(repo repositories.CreditLineRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// Query returns one page of the line's history in reverse chronological
// order, ties on timestamp broken by transaction id so the later insert wins.
// An unknown line fails with ErrCreditLineNotFound regardless of how broken
// the filter is.
func (s *service) Query(ctx context.Context, creditLineID string, filter Filter, page Page) (*QueryResult, error) {
	if _, err := s.repo.GetByID(creditLineID); err != nil {
		if err == repositories.ErrCreditLineNotFound {
			return nil, ErrCreditLineNotFound
		}
		return nil, fmt.Errorf("failed to get credit line: %w", err)
	}

	q, err := buildQuery(filter, page)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.GetTransactions(ctx, creditLineID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return &QueryResult{
		Items:      items,
		TotalCount: total,
		Page:       page.Page,
		Limit:      page.Limit,
	}, nil
}

func buildQuery(filter Filter, page Page) (repositories.TransactionQuery, error) {
	var q repositories.TransactionQuery

	if filter.Type != "" {
		if !models.IsValidTransactionType(filter.Type) {
			return q, fmt.Errorf("%w: unknown type %q", ErrInvalidFilter, filter.Type)
		}
		q.Type = filter.Type
	}
	if filter.From != "" {
		from, err := time.Parse(time.RFC3339, filter.From)
		if err != nil {
			return q, fmt.Errorf("%w: bad from timestamp %q", ErrInvalidFilter, filter.From)
		}
		q.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(time.RFC3339, filter.To)
		if err != nil {
			return q, fmt.Errorf("%w: bad to timestamp %q", ErrInvalidFilter, filter.To)
		}
		q.To = &to
	}

	if page.Page < 1 {
		return q, fmt.Errorf("%w: page must be >= 1", ErrInvalidPagination)
	}
	if page.Limit < MinPageLimit || page.Limit > MaxPageLimit {
		return q, fmt.Errorf("%w: limit must be between %d and %d", ErrInvalidPagination, MinPageLimit, MaxPageLimit)
	}
	q.Limit = page.Limit
	q.Offset = (page.Page - 1) * page.Limit

	return q, nil
}
