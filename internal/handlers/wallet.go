package handlers

import (
	apperrors "onramp/internal/errors"
	"onramp/internal/models"
	"onramp/internal/services/wallet"
	"onramp/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	service wallet.Service
}

func NewWalletHandler(s wallet.Service) *WalletHandler { return &WalletHandler{service: s} }

func (h *WalletHandler) Status(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	summary, err := h.service.Status(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, summary)
}

func (h *WalletHandler) Addresses(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	var filter *models.Chain
	if raw := c.Query("chain"); raw != "" {
		chain, err := models.ParseChain(raw)
		if err != nil {
			return utils.DomainError(c, apperrors.ErrUnsupportedChain)
		}
		filter = &chain
	}

	entries, err := h.service.Addresses(c.Context(), claims.UserID, filter)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"wallets": entries})
}

func (h *WalletHandler) DepositAddress(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	var req models.DepositAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	chain, err := models.ParseChain(req.Chain)
	if err != nil {
		return utils.DomainError(c, apperrors.ErrUnsupportedChain)
	}

	address, err := h.service.DepositAddress(c.Context(), claims.UserID, chain)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"chain":   chain,
		"address": address,
	})
}
