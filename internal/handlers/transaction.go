package handlers

import (
	"credline/internal/services/ledger"
	"credline/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	ledger ledger.Service
}

func NewTransactionHandler(ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{
		ledger: ledgerService,
	}
}

// GetTransactions serves a credit line's transaction history, filtered by
// type and time range, most recent first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter := ledger.Filter{
		Type: c.Query("type"),
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	p := pagination.ParseFromRequest(c)

	result, err := h.ledger.Query(c.Context(), c.Params("id"), filter, ledger.Page{
		Page:  p.Page,
		Limit: p.Limit,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	p.Total = result.TotalCount
	return c.JSON(pagination.Response(p, result.Items))
}
