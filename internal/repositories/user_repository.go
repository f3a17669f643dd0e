package repositories

import (
	"errors"
	"time"

	"onramp/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by their case-normalized email address
	GetByEmail(email string) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// UpdateOnboardingStatus moves the onboarding record to a new phase
	UpdateOnboardingStatus(userID uuid.UUID, status models.OnboardingStatus) error

	// UpdateKYCStatus records a KYC decision on the user
	UpdateKYCStatus(userID uuid.UUID, status models.KYCStatus, approvedAt *time.Time, rejectionReason *string) error

	// IncrementTokenVersion increments the user's token version
	IncrementTokenVersion(userID uuid.UUID) error
}
