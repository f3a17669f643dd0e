package handlers

import (
	"onramp/internal/models"
	"onramp/internal/services/onboarding"
	"onramp/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OnboardingHandler struct {
	service onboarding.Service
}

func NewOnboardingHandler(s onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{service: s}
}

func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	var req models.OnboardingStartRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	resp, err := h.service.Start(c.Context(), &req)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Created(c, resp)
}

func (h *OnboardingHandler) Status(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	// Default to the caller's own record; an explicit user_id is honored
	// for admins only.
	targetID := claims.UserID
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return utils.BadRequest(c, "user_id must be a valid uuid")
		}
		if parsed != claims.UserID && claims.Role != "admin" {
			return utils.Forbidden(c, "cannot read another user's onboarding status")
		}
		targetID = parsed
	}

	resp, err := h.service.Status(c.Context(), targetID)
	if err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, resp)
}

func (h *OnboardingHandler) SubmitKYC(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	var req models.KYCSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	submission, err := h.service.SubmitKYC(c.Context(), claims.UserID, &req)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Accepted(c, fiber.Map{
		"submissionId": submission.ID,
		"providerRef":  submission.ProviderRef,
		"status":       submission.Status,
		"submittedAt":  submission.SubmittedAt,
	})
}

// Callback is the provider-facing decision endpoint. It is unauthenticated
// by bearer token; the provider reference is the correlation secret.
func (h *OnboardingHandler) Callback(c *fiber.Ctx) error {
	providerRef := c.Params("providerRef")

	var req models.KYCCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.service.HandleCallback(c.Context(), providerRef, &req); err != nil {
		return utils.DomainError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "callback processed"})
}
