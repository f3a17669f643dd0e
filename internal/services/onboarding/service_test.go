package onboarding

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "onramp/internal/errors"
	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.TokenVersion == 0 {
		user.TokenVersion = 1
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) UpdateOnboardingStatus(userID uuid.UUID, status models.OnboardingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.OnboardingStatus = status
	return nil
}

func (r *memUserRepo) UpdateKYCStatus(userID uuid.UUID, status models.KYCStatus, approvedAt *time.Time, rejectionReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.KYCStatus = status
	u.KYCApprovedAt = approvedAt
	u.KYCRejectionReason = rejectionReason
	return nil
}

func (r *memUserRepo) IncrementTokenVersion(userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

// memKYCRepo is an in-memory KYCRepository for tests.
type memKYCRepo struct {
	mu          sync.Mutex
	submissions map[string]*models.KYCSubmission
}

func newMemKYCRepo() *memKYCRepo {
	return &memKYCRepo{submissions: make(map[string]*models.KYCSubmission)}
}

func (r *memKYCRepo) Create(submission *models.KYCSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	clone := *submission
	r.submissions[submission.ProviderRef] = &clone
	return nil
}

func (r *memKYCRepo) GetByProviderRef(providerRef string) (*models.KYCSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[providerRef]
	if !ok {
		return nil, repositories.ErrSubmissionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *memKYCRepo) GetPendingByUser(userID uuid.UUID) (*models.KYCSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.UserID == userID && s.Status == models.SubmissionStatusPending {
			clone := *s
			return &clone, nil
		}
	}
	return nil, repositories.ErrSubmissionNotFound
}

func (r *memKYCRepo) GetLatestByUser(userID uuid.UUID) (*models.KYCSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.KYCSubmission
	for _, s := range r.submissions {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.SubmittedAt.After(latest.SubmittedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, repositories.ErrSubmissionNotFound
	}
	clone := *latest
	return &clone, nil
}

func (r *memKYCRepo) Update(submission *models.KYCSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.submissions[submission.ProviderRef]; !ok {
		return repositories.ErrSubmissionNotFound
	}
	clone := *submission
	r.submissions[submission.ProviderRef] = &clone
	return nil
}

// fakeWalletService records fan-out requests and serves a canned summary.
type fakeWalletService struct {
	mu         sync.Mutex
	provisions [][]models.Chain
	summary    *models.WalletStatusSummary
}

func (f *fakeWalletService) Provision(_ context.Context, _ uuid.UUID, chains []models.Chain) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.provisions = append(f.provisions, chains)
	return nil
}

func (f *fakeWalletService) DepositAddress(context.Context, uuid.UUID, models.Chain) (string, error) {
	return "", wallet.ErrWalletNotReady
}

func (f *fakeWalletService) Status(context.Context, uuid.UUID) (*models.WalletStatusSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.summary == nil {
		return &models.WalletStatusSummary{}, nil
	}
	return f.summary, nil
}

func (f *fakeWalletService) Addresses(context.Context, uuid.UUID, *models.Chain) ([]wallet.AddressEntry, error) {
	return nil, nil
}

func (f *fakeWalletService) SetNotifier(wallet.SettlementNotifier) {}

func (f *fakeWalletService) provisionCalls() [][]models.Chain {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]models.Chain(nil), f.provisions...)
}

// recordingProvider captures out-of-band submissions.
type recordingProvider struct {
	refs chan string
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{refs: make(chan string, 8)}
}

func (p *recordingProvider) Submit(_ context.Context, providerRef string, _ *models.KYCSubmitRequest) error {
	p.refs <- providerRef
	return nil
}

type fixture struct {
	svc      Service
	users    *memUserRepo
	kyc      *memKYCRepo
	wallets  *fakeWalletService
	provider *recordingProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	users := newMemUserRepo()
	kyc := newMemKYCRepo()
	wallets := &fakeWalletService{}
	provider := newRecordingProvider()
	svc := NewService(users, kyc, wallets, provider, Config{})
	return &fixture{svc: svc, users: users, kyc: kyc, wallets: wallets, provider: provider}
}

func validSubmitRequest() *models.KYCSubmitRequest {
	return &models.KYCSubmitRequest{
		DocumentType: "passport",
		Documents: []models.KYCDocument{{
			Type:        "passport",
			FileURL:     "https://uploads.example.com/passport.jpg",
			ContentType: "image/jpeg",
		}},
		PersonalInfo: models.JSON{"firstName": "Ada", "lastName": "Lovelace"},
	}
}

func (f *fixture) startUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.Start(context.Background(), &models.OnboardingStartRequest{Email: email})
	require.NoError(t, err)
	return resp.UserID
}

func (f *fixture) submittedUser(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	userID := f.startUser(t, email)
	submission, err := f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
	require.NoError(t, err)
	return userID, submission.ProviderRef
}

func TestStartOpensRecordAndIssuesToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Start(context.Background(), &models.OnboardingStartRequest{Email: "Ada@Example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.Equal(t, models.OnboardingStatusStarted, resp.OnboardingStatus)
	assert.Equal(t, ActionSubmitKYC, resp.NextStep)
	assert.NotEmpty(t, resp.SessionToken)

	user, err := f.users.GetByID(resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.KYCStatusNotSubmitted, user.KYCStatus)
}

func TestStartConflictsOnExistingEmail(t *testing.T) {
	f := newFixture(t)
	f.startUser(t, "ada@example.com")

	_, err := f.svc.Start(context.Background(), &models.OnboardingStartRequest{Email: "ADA@example.com"})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestStartRejectsInvalidEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Start(context.Background(), &models.OnboardingStartRequest{Email: "not-an-email"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSubmitKYCMovesRecordToPending(t *testing.T) {
	f := newFixture(t)
	userID := f.startUser(t, "ada@example.com")

	submission, err := f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
	assert.NotEmpty(t, submission.ProviderRef)

	user, err := f.users.GetByID(userID)
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusPending, user.KYCStatus)
	assert.Equal(t, models.OnboardingStatusKYCPending, user.OnboardingStatus)

	select {
	case ref := <-f.provider.refs:
		assert.Equal(t, submission.ProviderRef, ref)
	case <-time.After(2 * time.Second):
		t.Fatal("provider was never notified")
	}
}

func TestSubmitKYCRejectsWhilePending(t *testing.T) {
	f := newFixture(t)
	userID, _ := f.submittedUser(t, "ada@example.com")

	_, err := f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
	assert.ErrorIs(t, err, ErrKYCAlreadyPending)
}

func TestSubmitKYCRejectsAfterApproval(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	_, err := f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
	assert.ErrorIs(t, err, ErrKYCAlreadyApproved)
}

func TestSubmitKYCUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SubmitKYC(context.Background(), uuid.New(), validSubmitRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSubmitKYCValidatesPayload(t *testing.T) {
	f := newFixture(t)
	userID := f.startUser(t, "ada@example.com")

	tests := []struct {
		name string
		req  *models.KYCSubmitRequest
	}{
		{"missing document type", &models.KYCSubmitRequest{
			Documents: validSubmitRequest().Documents,
		}},
		{"no documents", &models.KYCSubmitRequest{
			DocumentType: "passport",
		}},
		{"relative file url", &models.KYCSubmitRequest{
			DocumentType: "passport",
			Documents: []models.KYCDocument{{
				Type:        "passport",
				FileURL:     "uploads/passport.jpg",
				ContentType: "image/jpeg",
			}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitKYC(context.Background(), userID, tt.req)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestSubmitKYCSerializesConcurrentSubmissions(t *testing.T) {
	f := newFixture(t)
	userID := f.startUser(t, "ada@example.com")

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		if err == nil {
			succeeded++
		} else if err == ErrKYCAlreadyPending {
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
}

func TestCallbackApprovalTriggersWalletFanOut(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")

	err := f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"})
	require.NoError(t, err)

	user, err := f.users.GetByID(userID)
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusApproved, user.KYCStatus)
	assert.Equal(t, models.OnboardingStatusWalletProvisioning, user.OnboardingStatus)
	require.NotNil(t, user.KYCApprovedAt)

	calls := f.wallets.provisionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []models.Chain{models.ChainETH, models.ChainSOL, models.ChainAPTOS}, calls[0])
}

func TestCallbackIsIdempotentOnRepeatedOutcome(t *testing.T) {
	f := newFixture(t)
	_, ref := f.submittedUser(t, "ada@example.com")

	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	// The fan-out fired exactly once.
	assert.Len(t, f.wallets.provisionCalls(), 1)
}

func TestCallbackConflictingOutcomeLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")
	require.NoError(t, f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "approved"}))

	err := f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrCallbackConflict)

	user, err := f.users.GetByID(userID)
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusApproved, user.KYCStatus)

	submission, err := f.kyc.GetByProviderRef(ref)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, submission.Status)
}

func TestCallbackRejectionAllowsResubmission(t *testing.T) {
	f := newFixture(t)
	userID, ref := f.submittedUser(t, "ada@example.com")

	err := f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{
		Status:  "rejected",
		Details: models.JSON{"reason": "document unreadable"},
	})
	require.NoError(t, err)

	user, err := f.users.GetByID(userID)
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusRejected, user.KYCStatus)
	assert.Equal(t, models.OnboardingStatusKYCFailed, user.OnboardingStatus)
	require.NotNil(t, user.KYCRejectionReason)
	assert.Equal(t, "document unreadable", *user.KYCRejectionReason)

	// Rejection reopens the submission gate.
	_, err = f.svc.SubmitKYC(context.Background(), userID, validSubmitRequest())
	assert.NoError(t, err)
}

func TestCallbackUnknownProviderRef(t *testing.T) {
	f := newFixture(t)

	err := f.svc.HandleCallback(context.Background(), uuid.NewString(), &models.KYCCallbackRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrUnknownProviderRef)
}

func TestCallbackRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	_, ref := f.submittedUser(t, "ada@example.com")

	err := f.svc.HandleCallback(context.Background(), ref, &models.KYCCallbackRequest{Status: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidCallbackStatus)
}
