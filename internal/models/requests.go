package models

import "github.com/google/uuid"

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingStartRequest is the payload for POST /onboarding/start.
type OnboardingStartRequest struct {
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// KYCDocument is one document inside a KYC submission.
type KYCDocument struct {
	Type        string `json:"type"`
	FileURL     string `json:"fileUrl"`
	ContentType string `json:"contentType"`
}

// KYCSubmitRequest is the payload for POST /onboarding/kyc/submit.
type KYCSubmitRequest struct {
	DocumentType string        `json:"documentType"`
	Documents    []KYCDocument `json:"documents"`
	PersonalInfo JSON          `json:"personalInfo,omitempty"`
	Metadata     JSON          `json:"metadata,omitempty"`
}

// KYCCallbackRequest is the payload the external provider posts back.
type KYCCallbackRequest struct {
	Status      string `json:"status"`
	ProviderRef string `json:"providerReference"`
	Details     JSON   `json:"details,omitempty"`
}

// DepositAddressRequest is the payload for POST /funding/deposit-address.
type DepositAddressRequest struct {
	Chain string `json:"chain"`
}

// AdminCreateWalletsRequest is the payload for POST /admin/wallet/create.
type AdminCreateWalletsRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Chains []string  `json:"chains"`
}
