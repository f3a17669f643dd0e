package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OnboardingStatus tracks where a user sits in the onboarding lifecycle.
type OnboardingStatus string

const (
	OnboardingStatusStarted            OnboardingStatus = "started"
	OnboardingStatusKYCPending         OnboardingStatus = "kyc_pending"
	OnboardingStatusKYCFailed          OnboardingStatus = "kyc_failed"
	OnboardingStatusWalletProvisioning OnboardingStatus = "wallet_provisioning"
	OnboardingStatusCompleted          OnboardingStatus = "completed"
)

// KYCStatus tracks the verification outcome, orthogonally to onboarding.
type KYCStatus string

const (
	KYCStatusNotSubmitted KYCStatus = "not_submitted"
	KYCStatusPending      KYCStatus = "pending"
	KYCStatusApproved     KYCStatus = "approved"
	KYCStatusRejected     KYCStatus = "rejected"
)

// User is the onboarding record for one identity. Exactly one exists per
// case-normalized email; terminal states are retained, never deleted.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"not null" json:"-"`
	Phone              *string   `json:"phone,omitempty"`
	Role               string    `gorm:"default:'user'" json:"role"`
	TokenVersion       int       `gorm:"default:1" json:"-"`
	OnboardingStatus   OnboardingStatus `gorm:"default:'started'" json:"onboarding_status"`
	KYCStatus          KYCStatus        `gorm:"default:'not_submitted'" json:"kyc_status"`
	KYCProviderRef     *string          `json:"-"`
	KYCSubmittedAt     *time.Time       `json:"kyc_submitted_at,omitempty"`
	KYCApprovedAt      *time.Time       `json:"kyc_approved_at,omitempty"`
	KYCRejectionReason *string          `json:"kyc_rejection_reason,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CanSubmitKYC reports whether a new submission is allowed. Resubmission is
// permitted only before a first submission or after a rejection.
func (u *User) CanSubmitKYC() bool {
	return u.KYCStatus == KYCStatusNotSubmitted || u.KYCStatus == KYCStatusRejected
}
