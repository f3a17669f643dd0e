package handlers

import (
	apperrors "onramp/internal/errors"
	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/services/wallet"
	"onramp/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	wallets wallet.Service
	users   repositories.UserRepository
}

func NewAdminHandler(wallets wallet.Service, users repositories.UserRepository) *AdminHandler {
	return &AdminHandler{wallets: wallets, users: users}
}

// CreateWallets triggers (or retries) the wallet fan-out for a user on an
// explicit chain set. Used by operators after a terminal provisioning failure.
func (h *AdminHandler) CreateWallets(c *fiber.Ctx) error {
	var req models.AdminCreateWalletsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return utils.BadRequest(c, "user_id is required")
	}
	if len(req.Chains) == 0 {
		return utils.BadRequest(c, "chains must not be empty")
	}

	chains, err := models.ParseChains(req.Chains)
	if err != nil {
		return utils.DomainError(c, apperrors.ErrUnsupportedChain)
	}

	if _, err := h.users.GetByID(req.UserID); err != nil {
		return utils.DomainError(c, apperrors.ErrUserNotFound)
	}

	if err := h.wallets.Provision(c.Context(), req.UserID, chains); err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Accepted(c, fiber.Map{
		"message": "wallet provisioning started",
		"userId":  req.UserID,
		"chains":  chains,
	})
}

// GetUser returns the full onboarding record for support tooling.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "id must be a valid uuid")
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.DomainError(c, apperrors.ErrUserNotFound)
	}
	return utils.Success(c, user)
}
