package repositories

import (
	"errors"

	"onramp/internal/models"

	"github.com/google/uuid"
)

var ErrSubmissionNotFound = errors.New("kyc submission not found")

// KYCRepository defines the interface for KYC submission storage
type KYCRepository interface {
	// Create persists a new submission
	Create(submission *models.KYCSubmission) error

	// GetByProviderRef retrieves a submission by its provider reference
	GetByProviderRef(providerRef string) (*models.KYCSubmission, error)

	// GetPendingByUser retrieves the user's outstanding submission, if any
	GetPendingByUser(userID uuid.UUID) (*models.KYCSubmission, error)

	// GetLatestByUser retrieves the most recent submission for the user
	GetLatestByUser(userID uuid.UUID) (*models.KYCSubmission, error)

	// Update updates an existing submission
	Update(submission *models.KYCSubmission) error
}
