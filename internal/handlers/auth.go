package handlers

import (
	"onramp/internal/models"
	"onramp/internal/services/auth"
	"onramp/internal/utils"
	"onramp/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(s auth.Service) *AuthHandler { return &AuthHandler{service: s} }

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.UserRegistration(&req)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	user, accessToken, err := h.service.Register(req.Email, req.Password, req.Phone)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"user":         user,
		"access_token": accessToken,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Login(&req)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	user, accessToken, refreshToken, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		return utils.DomainError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "unauthorized")
	}

	if err := h.service.Logout(claims.UserID); err != nil {
		return utils.InternalError(c, "failed to log out")
	}
	return utils.Success(c, fiber.Map{"message": "logged out"})
}
