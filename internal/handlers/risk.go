package handlers

import (
	"credline/internal/services/risk"
	"credline/internal/utils/response"
	"credline/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type RiskHandler struct {
	risk risk.Service
}

func NewRiskHandler(riskService risk.Service) *RiskHandler {
	return &RiskHandler{
		risk: riskService,
	}
}

// EvaluateWallet runs a standalone risk evaluation for a wallet address
// without touching any credit line.
func (h *RiskHandler) EvaluateWallet(c *fiber.Ctx) error {
	var input struct {
		WalletAddress string `json:"wallet_address"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validation.ValidateWalletAddress(input.WalletAddress); err != nil {
		return response.BadRequest(c, err.Error())
	}

	assessment, err := h.risk.EvaluateWallet(c.Context(), input.WalletAddress)
	if err != nil {
		return mapServiceError(c, err)
	}
	return response.Success(c, "wallet evaluated", assessment)
}
