package onboarding

import (
	"onramp/internal/models"

	"github.com/google/uuid"
)

// Completed onboarding milestones, reported in this canonical order.
const (
	StepRegistration       = "registration"
	StepKYCSubmission      = "kyc_submission"
	StepKYCReview          = "kyc_review"
	StepWalletCreation     = "wallet_creation"
	StepOnboardingComplete = "onboarding_complete"
)

// Actions a status snapshot can require.
const (
	ActionSubmitKYC         = "submit_kyc"
	ActionResubmitKYC       = "resubmit_kyc"
	ActionAwaitKYCReview    = "await_kyc_review"
	ActionAwaitProvisioning = "await_wallet_provisioning"
	ActionRetryProvisioning = "retry_wallet_provisioning"
)

// Config holds onboarding service configuration.
type Config struct {
	// DefaultChains is the wallet fan-out set used after KYC approval.
	DefaultChains []models.Chain
}

func (c Config) withDefaults() Config {
	if len(c.DefaultChains) == 0 {
		c.DefaultChains = []models.Chain{models.ChainETH, models.ChainSOL, models.ChainAPTOS}
	}
	return c
}

// StartResponse is returned when a new onboarding record is opened.
type StartResponse struct {
	UserID           uuid.UUID               `json:"userId"`
	OnboardingStatus models.OnboardingStatus `json:"onboardingStatus"`
	NextStep         string                  `json:"nextStep"`
	SessionToken     string                  `json:"sessionToken"`
}

// StatusResponse is the aggregated onboarding snapshot. WalletStatus stays
// nil until wallet provisioning has been triggered at least once.
type StatusResponse struct {
	UserID           uuid.UUID                   `json:"userId"`
	OnboardingStatus models.OnboardingStatus     `json:"onboardingStatus"`
	KYCStatus        models.KYCStatus            `json:"kycStatus"`
	WalletStatus     *models.WalletStatusSummary `json:"walletStatus,omitempty"`
	CanProceed       bool                        `json:"canProceed"`
	CompletedSteps   []string                    `json:"completedSteps"`
	RequiredActions  []string                    `json:"requiredActions"`
}
