package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionStatus is the lifecycle of one KYC submission attempt.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// KYCSubmission records one submission attempt sent to the external
// verification provider. The provider reference is issued once, is globally
// unique, and is the only correlation handle the provider sends back.
type KYCSubmission struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ProviderRef  string           `gorm:"uniqueIndex;not null" json:"provider_ref"`
	DocumentType string           `gorm:"not null" json:"document_type"`
	Documents    JSONArray        `gorm:"type:jsonb" json:"documents"`
	PersonalInfo JSON             `gorm:"type:jsonb" json:"personal_info,omitempty"`
	Metadata     JSON             `gorm:"type:jsonb" json:"metadata,omitempty"`
	Details      JSON             `gorm:"type:jsonb" json:"details,omitempty"`
	Status       SubmissionStatus `gorm:"default:'pending'" json:"status"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	ReviewedAt   *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (s *KYCSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsTerminal reports whether the submission has been decided.
func (s *KYCSubmission) IsTerminal() bool {
	return s.Status == SubmissionStatusApproved || s.Status == SubmissionStatusRejected
}

// MarkReviewed applies a provider decision and stamps the review time.
func (s *KYCSubmission) MarkReviewed(status SubmissionStatus, details JSON) {
	now := time.Now()
	s.Status = status
	s.ReviewedAt = &now
	if details != nil {
		s.Details = details
	}
}
