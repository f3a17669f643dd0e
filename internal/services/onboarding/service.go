package onboarding

import (
	"context"
	"log"
	"strings"
	"time"

	apperrors "onramp/internal/errors"
	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/services/kycprovider"
	"onramp/internal/services/wallet"
	"onramp/internal/utils"
	"onramp/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service drives the onboarding state machine and its read side.
type Service interface {
	// Start opens an onboarding record for a new email and issues an
	// onboarding-scoped session token.
	Start(ctx context.Context, req *models.OnboardingStartRequest) (*StartResponse, error)

	// SubmitKYC accepts a verification submission. At most one submission
	// per user can be pending; resubmission is allowed only after rejection.
	SubmitKYC(ctx context.Context, userID uuid.UUID, req *models.KYCSubmitRequest) (*models.KYCSubmission, error)

	// HandleCallback applies a provider decision, idempotently.
	HandleCallback(ctx context.Context, providerRef string, req *models.KYCCallbackRequest) error

	// Status aggregates the onboarding snapshot for one user.
	Status(ctx context.Context, userID uuid.UUID) (*StatusResponse, error)
}

type service struct {
	users    repositories.UserRepository
	kyc      repositories.KYCRepository
	wallets  wallet.Service
	provider kycprovider.Provider
	config   Config
	locks    *keyedMutex
}

// NewService creates a new onboarding service.
func NewService(users repositories.UserRepository, kyc repositories.KYCRepository, wallets wallet.Service, provider kycprovider.Provider, config Config) Service {
	return &service{
		users:    users,
		kyc:      kyc,
		wallets:  wallets,
		provider: provider,
		config:   config.withDefaults(),
		locks:    newKeyedMutex(),
	}
}

func (s *service) Start(ctx context.Context, req *models.OnboardingStartRequest) (*StartResponse, error) {
	v := validation.New()
	v.OnboardingStart(req)
	if !v.Valid() {
		return nil, apperrors.Validation(v.First())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailInUse
	} else if err != repositories.ErrUserNotFound {
		return nil, err
	}

	// The record is opened without a credential; a throwaway hash keeps the
	// column satisfied until the user registers a password.
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:            email,
		Password:         string(placeholder),
		Phone:            req.Phone,
		Role:             "user",
		OnboardingStatus: models.OnboardingStatusStarted,
		KYCStatus:        models.KYCStatusNotSubmitted,
	}
	if err := s.users.Create(user); err != nil {
		if err == repositories.ErrEmailTaken {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	token, err := utils.GenerateOnboardingToken(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, err
	}

	return &StartResponse{
		UserID:           user.ID,
		OnboardingStatus: user.OnboardingStatus,
		NextStep:         ActionSubmitKYC,
		SessionToken:     token,
	}, nil
}

func (s *service) SubmitKYC(ctx context.Context, userID uuid.UUID, req *models.KYCSubmitRequest) (*models.KYCSubmission, error) {
	v := validation.New()
	v.KYCSubmission(req)
	if !v.Valid() {
		return nil, apperrors.Validation(v.First())
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.CanSubmitKYC() {
		if user.KYCStatus == models.KYCStatusApproved {
			return nil, ErrKYCAlreadyApproved
		}
		return nil, ErrKYCAlreadyPending
	}

	now := time.Now()
	providerRef := uuid.NewString()
	submission := &models.KYCSubmission{
		UserID:       userID,
		ProviderRef:  providerRef,
		DocumentType: req.DocumentType,
		Documents:    documentsToJSON(req.Documents),
		PersonalInfo: req.PersonalInfo,
		Metadata:     req.Metadata,
		Status:       models.SubmissionStatusPending,
		SubmittedAt:  now,
	}
	if err := s.kyc.Create(submission); err != nil {
		return nil, err
	}

	user.KYCStatus = models.KYCStatusPending
	user.KYCProviderRef = &providerRef
	user.KYCSubmittedAt = &now
	user.OnboardingStatus = models.OnboardingStatusKYCPending
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	// The provider is notified out of band; its acknowledgement never gates
	// the accepted response.
	go func() {
		if err := s.provider.Submit(context.Background(), providerRef, req); err != nil {
			log.Printf("KYC provider submission failed: ref=%s user=%s err=%v", providerRef, userID, err)
		}
	}()

	return submission, nil
}

func (s *service) HandleCallback(ctx context.Context, providerRef string, req *models.KYCCallbackRequest) error {
	// The reference usually arrives on the path; fold it into the payload
	// before validating.
	if req.ProviderRef == "" {
		req.ProviderRef = providerRef
	}

	v := validation.New()
	v.KYCCallback(req)
	if !v.Valid() {
		return ErrInvalidCallbackStatus
	}

	decision := models.SubmissionStatus(req.Status)

	submission, err := s.kyc.GetByProviderRef(providerRef)
	if err != nil {
		if err == repositories.ErrSubmissionNotFound {
			return ErrUnknownProviderRef
		}
		return err
	}

	s.locks.Lock(submission.UserID)
	defer s.locks.Unlock(submission.UserID)

	// Reload under the lock so a concurrent callback cannot race the
	// terminal check.
	submission, err = s.kyc.GetByProviderRef(providerRef)
	if err != nil {
		return err
	}

	if submission.IsTerminal() {
		if submission.Status == decision {
			return nil
		}
		return ErrCallbackConflict
	}

	submission.MarkReviewed(decision, req.Details)
	if err := s.kyc.Update(submission); err != nil {
		return err
	}

	user, err := s.users.GetByID(submission.UserID)
	if err != nil {
		return err
	}

	switch decision {
	case models.SubmissionStatusApproved:
		now := time.Now()
		user.KYCStatus = models.KYCStatusApproved
		user.KYCApprovedAt = &now
		user.KYCRejectionReason = nil
		user.OnboardingStatus = models.OnboardingStatusWalletProvisioning
		if err := s.users.Update(user); err != nil {
			return err
		}
		if err := s.wallets.Provision(ctx, user.ID, s.config.DefaultChains); err != nil {
			log.Printf("Wallet fan-out failed to start: user=%s err=%v", user.ID, err)
		}

	case models.SubmissionStatusRejected:
		user.KYCStatus = models.KYCStatusRejected
		user.KYCRejectionReason = rejectionReason(req.Details)
		user.OnboardingStatus = models.OnboardingStatusKYCFailed
		if err := s.users.Update(user); err != nil {
			return err
		}
	}

	return nil
}

// OnProvisioningSettled closes the onboarding record once the wallet fan-out
// has fully settled with at least one usable wallet.
func (s *service) OnProvisioningSettled(ctx context.Context, userID uuid.UUID, summary *models.WalletStatusSummary) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	user, err := s.users.GetByID(userID)
	if err != nil {
		log.Printf("Settlement for unknown user %s: %v", userID, err)
		return
	}
	if user.OnboardingStatus != models.OnboardingStatusWalletProvisioning {
		return
	}
	if summary == nil || summary.ReadyWallets == 0 {
		return
	}

	if err := s.users.UpdateOnboardingStatus(userID, models.OnboardingStatusCompleted); err != nil {
		log.Printf("Failed to complete onboarding for %s: %v", userID, err)
	}
}

func documentsToJSON(docs []models.KYCDocument) models.JSONArray {
	out := make(models.JSONArray, 0, len(docs))
	for _, d := range docs {
		out = append(out, map[string]interface{}{
			"type":        d.Type,
			"fileUrl":     d.FileURL,
			"contentType": d.ContentType,
		})
	}
	return out
}

func rejectionReason(details models.JSON) *string {
	if details == nil {
		return nil
	}
	if reason, ok := details["reason"].(string); ok && reason != "" {
		return &reason
	}
	return nil
}
