package utils

import (
	"errors"

	"onramp/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsFromContext extracts the authenticated claims stored by the auth
// middleware.
func ClaimsFromContext(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, errors.New("missing claims in context")
	}
	return claims, nil
}
