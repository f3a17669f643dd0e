package onboarding

import (
	"context"

	"onramp/internal/models"
	"onramp/internal/repositories"

	"github.com/google/uuid"
)

func (s *service) Status(ctx context.Context, userID uuid.UUID) (*StatusResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The wallet read side never blocks on in-flight provisioning; it only
	// reports recorded task state.
	summary, err := s.wallets.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summary != nil && summary.TotalWallets == 0 {
		summary = nil
	}

	actions := requiredActions(user, summary)
	return &StatusResponse{
		UserID:           user.ID,
		OnboardingStatus: user.OnboardingStatus,
		KYCStatus:        user.KYCStatus,
		WalletStatus:     summary,
		CanProceed:       canProceed(user, actions),
		CompletedSteps:   completedSteps(user, summary),
		RequiredActions:  actions,
	}, nil
}

// completedSteps reports reached milestones in canonical order.
func completedSteps(user *models.User, summary *models.WalletStatusSummary) []string {
	steps := []string{StepRegistration}

	if user.KYCStatus != models.KYCStatusNotSubmitted || user.KYCSubmittedAt != nil {
		steps = append(steps, StepKYCSubmission)
	}
	if user.KYCStatus == models.KYCStatusApproved {
		steps = append(steps, StepKYCReview)
	}
	if summary != nil && summary.ReadyWallets > 0 {
		steps = append(steps, StepWalletCreation)
	}
	if user.OnboardingStatus == models.OnboardingStatusCompleted {
		steps = append(steps, StepOnboardingComplete)
	}
	return steps
}

// requiredActions is a pure function of recorded state.
func requiredActions(user *models.User, summary *models.WalletStatusSummary) []string {
	switch user.KYCStatus {
	case models.KYCStatusNotSubmitted:
		return []string{ActionSubmitKYC}
	case models.KYCStatusPending:
		return []string{ActionAwaitKYCReview}
	case models.KYCStatusRejected:
		return []string{ActionResubmitKYC}
	}

	// Approved from here on.
	if user.OnboardingStatus == models.OnboardingStatusCompleted {
		return []string{}
	}
	if summary != nil && summary.FailedWallets > 0 && summary.PendingWallets == 0 {
		return []string{ActionRetryProvisioning}
	}
	return []string{ActionAwaitProvisioning}
}

// canProceed reports whether the next move is the user's own.
func canProceed(user *models.User, actions []string) bool {
	if user.OnboardingStatus == models.OnboardingStatusCompleted {
		return true
	}
	for _, action := range actions {
		if action == ActionAwaitKYCReview || action == ActionAwaitProvisioning {
			return false
		}
	}
	return true
}
