package onboarding

import (
	"context"
	"testing"

	"onramp/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFreshRecord(t *testing.T) {
	f := newFixture(t)
	userID := f.startUser(t, "ada@example.com")

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusStarted, resp.OnboardingStatus)
	assert.Equal(t, models.KYCStatusNotSubmitted, resp.KYCStatus)
	assert.Nil(t, resp.WalletStatus)
	assert.True(t, resp.CanProceed)
	assert.Equal(t, []string{StepRegistration}, resp.CompletedSteps)
	assert.Equal(t, []string{ActionSubmitKYC}, resp.RequiredActions)
}

func TestStatusWhileKYCPending(t *testing.T) {
	f := newFixture(t)
	userID, _ := f.submittedUser(t, "ada@example.com")

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusKYCPending, resp.OnboardingStatus)
	assert.False(t, resp.CanProceed)
	assert.Equal(t, []string{StepRegistration, StepKYCSubmission}, resp.CompletedSteps)
	assert.Equal(t, []string{ActionAwaitKYCReview}, resp.RequiredActions)
}

func TestStatusAfterRejection(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "rejected"}))

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusKYCFailed, resp.OnboardingStatus)
	assert.True(t, resp.CanProceed)
	assert.Equal(t, []string{ActionResubmitKYC}, resp.RequiredActions)
	assert.NotContains(t, resp.CompletedSteps, StepKYCReview)
}

func TestStatusWhileProvisioning(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	f.wallets.summary = &models.WalletStatusSummary{
		TotalWallets:   3,
		ReadyWallets:   1,
		PendingWallets: 2,
		WalletsByChain: map[string]models.WalletChainStatus{},
	}

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusWalletProvisioning, resp.OnboardingStatus)
	require.NotNil(t, resp.WalletStatus)
	assert.False(t, resp.CanProceed)
	assert.Equal(t, []string{ActionAwaitProvisioning}, resp.RequiredActions)
	assert.Contains(t, resp.CompletedSteps, StepKYCReview)
	assert.Contains(t, resp.CompletedSteps, StepWalletCreation)
}

func TestStatusAfterTerminalProvisioningFailure(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	f.wallets.summary = &models.WalletStatusSummary{
		TotalWallets:   3,
		FailedWallets:  3,
		WalletsByChain: map[string]models.WalletChainStatus{},
	}

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{ActionRetryProvisioning}, resp.RequiredActions)
	assert.True(t, resp.CanProceed)
}

func TestStatusCompleted(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	summary := &models.WalletStatusSummary{
		TotalWallets:   3,
		ReadyWallets:   3,
		WalletsByChain: map[string]models.WalletChainStatus{},
	}
	f.wallets.summary = summary

	notifier, ok := f.svc.(interface {
		OnProvisioningSettled(ctx context.Context, userID uuid.UUID, summary *models.WalletStatusSummary)
	})
	require.True(t, ok)
	notifier.OnProvisioningSettled(context.Background(), userID, summary)

	resp, err := f.svc.Status(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusCompleted, resp.OnboardingStatus)
	assert.True(t, resp.CanProceed)
	assert.Empty(t, resp.RequiredActions)
	assert.Equal(t, []string{
		StepRegistration,
		StepKYCSubmission,
		StepKYCReview,
		StepWalletCreation,
		StepOnboardingComplete,
	}, resp.CompletedSteps)
}

func TestSettlementWithoutReadyWalletsDoesNotComplete(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	notifier := f.svc.(interface {
		OnProvisioningSettled(ctx context.Context, userID uuid.UUID, summary *models.WalletStatusSummary)
	})
	notifier.OnProvisioningSettled(context.Background(), userID, &models.WalletStatusSummary{
		TotalWallets:  3,
		FailedWallets: 3,
	})

	user, err := f.users.GetByID(userID)
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingStatusWalletProvisioning, user.OnboardingStatus)
}

func TestStatusUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Status(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
