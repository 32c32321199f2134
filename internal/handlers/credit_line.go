// Package handlers maps HTTP requests onto the service layer and service
// errors onto transport status codes.
package handlers

import (
	"errors"

	"credline/internal/services/creditline"
	"credline/internal/services/ledger"
	"credline/internal/services/risk"
	"credline/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CreditLineHandler struct {
	service creditline.Service
}

func NewCreditLineHandler(service creditline.Service) *CreditLineHandler {
	return &CreditLineHandler{
		service: service,
	}
}

// mapServiceError translates service errors to HTTP responses. Every error
// kind has a deterministic status; anything unclassified is a 500.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, creditline.ErrCreditLineNotFound),
		errors.Is(err, ledger.ErrCreditLineNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, creditline.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, creditline.ErrInvalidStatus),
		errors.Is(err, creditline.ErrInvalidAmount),
		errors.Is(err, creditline.ErrOverLimit),
		errors.Is(err, creditline.ErrInvalidWalletAddress),
		errors.Is(err, ledger.ErrInvalidFilter),
		errors.Is(err, ledger.ErrInvalidPagination):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, creditline.ErrUnauthorizedBorrower):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, risk.ErrEvaluationFailed):
		return response.BadGateway(c, err.Error())
	default:
		return response.ServerError(c, "internal error")
	}
}

func (h *CreditLineHandler) ListCreditLines(c *fiber.Ctx) error {
	lines, err := h.service.List(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "credit lines", lines)
}

func (h *CreditLineHandler) GetCreditLine(c *fiber.Ctx) error {
	line, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "credit line", line)
}

func (h *CreditLineHandler) CreateCreditLine(c *fiber.Ctx) error {
	var input struct {
		WalletAddress  string  `json:"wallet_address"`
		RequestedLimit float64 `json:"requested_limit"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	line, err := h.service.Create(c.Context(), input.WalletAddress, input.RequestedLimit)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Created(c, "credit line created", line)
}

func (h *CreditLineHandler) Draw(c *fiber.Ctx) error {
	var input struct {
		BorrowerID string  `json:"borrower_id"`
		Amount     float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	line, err := h.service.Draw(c.Context(), c.Params("id"), input.BorrowerID, input.Amount)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "draw successful", line)
}

func (h *CreditLineHandler) Repay(c *fiber.Ctx) error {
	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	line, err := h.service.Repay(c.Context(), c.Params("id"), input.Amount)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "repayment successful", line)
}

func (h *CreditLineHandler) Suspend(c *fiber.Ctx) error {
	line, err := h.service.Suspend(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "credit line suspended", line)
}

func (h *CreditLineHandler) Resume(c *fiber.Ctx) error {
	line, err := h.service.Resume(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "credit line resumed", line)
}

func (h *CreditLineHandler) Close(c *fiber.Ctx) error {
	line, err := h.service.Close(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "credit line closed", line)
}

func (h *CreditLineHandler) ApplyRiskAssessment(c *fiber.Ctx) error {
	line, err := h.service.ApplyRiskAssessment(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "risk assessment applied", line)
}

func (h *CreditLineHandler) VerifyLedger(c *fiber.Ctx) error {
	check, err := h.service.VerifyLedger(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "ledger check", check)
}
