package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionOnboardingRead  = "onboarding:read"
	PermissionOnboardingWrite = "onboarding:write"
	PermissionWalletRead      = "wallet:read"
	PermissionWalletWrite     = "wallet:write"
	PermissionFundingWrite    = "funding:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Scope        string    `json:"scope,omitempty"`
	Permissions  []string  `json:"permissions"`
	TokenVersion int       `json:"token_version"`
}

// Token scopes. An onboarding-scoped token can only drive the onboarding
// flow; it is not a general API credential.
const (
	ScopeFull       = "full"
	ScopeOnboarding = "onboarding"
)

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionOnboardingRead,
			PermissionOnboardingWrite,
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionFundingWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case "user":
		return []string{
			PermissionOnboardingRead,
			PermissionOnboardingWrite,
			PermissionWalletRead,
			PermissionFundingWrite,
		}
	default:
		return []string{}
	}
}

// OnboardingPermissions returns the permissions carried by an
// onboarding-scoped session token.
func OnboardingPermissions() []string {
	return []string{
		PermissionOnboardingRead,
		PermissionOnboardingWrite,
		PermissionWalletRead,
	}
}
