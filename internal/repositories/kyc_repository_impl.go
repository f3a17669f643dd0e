package repositories

import (
	"onramp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type kycRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new instance of KYCRepository
func NewKYCRepository(db *gorm.DB) KYCRepository {
	return &kycRepository{db: db}
}

func (r *kycRepository) Create(submission *models.KYCSubmission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}

func (r *kycRepository) GetByProviderRef(providerRef string) (*models.KYCSubmission, error) {
	var submission models.KYCSubmission
	err := r.db.Where("provider_ref = ?", providerRef).First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &submission, nil
}

func (r *kycRepository) GetPendingByUser(userID uuid.UUID) (*models.KYCSubmission, error) {
	var submission models.KYCSubmission
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SubmissionStatusPending).
		Order("submitted_at DESC").First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &submission, nil
}

func (r *kycRepository) GetLatestByUser(userID uuid.UUID) (*models.KYCSubmission, error) {
	var submission models.KYCSubmission
	err := r.db.Where("user_id = ?", userID).
		Order("submitted_at DESC").First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubmissionNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &submission, nil
}

func (r *kycRepository) Update(submission *models.KYCSubmission) error {
	if err := r.db.Save(submission).Error; err != nil {
		return ErrDatabaseOperation
	}
	return nil
}
