package wallet

import (
	"context"
	"log"
	"sync"
	"time"

	"onramp/internal/models"
	"onramp/internal/repositories"
	"onramp/internal/repositories/cache"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.WalletRepository
	backend Backend
	cache   *cache.CacheService
	config  Config
	metrics MetricsCollector

	notifierMu sync.RWMutex
	notifier   SettlementNotifier

	// inflight guards against duplicate concurrent provisioning of the
	// same (user, chain) pair.
	inflight sync.Map
}

// NewService creates a new wallet provisioning service.
func NewService(repo repositories.WalletRepository, backend Backend, cacheSvc *cache.CacheService, config Config, metrics MetricsCollector) Service {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		backend: backend,
		cache:   cacheSvc,
		config:  config.withDefaults(),
		metrics: metrics,
	}
}

func (s *service) SetNotifier(n SettlementNotifier) {
	s.notifierMu.Lock()
	s.notifier = n
	s.notifierMu.Unlock()
}

func (s *service) Provision(ctx context.Context, userID uuid.UUID, chains []models.Chain) error {
	// Validate the whole batch before creating anything; one bad chain
	// rejects the request atomically.
	seen := make(map[models.Chain]struct{}, len(chains))
	batch := make([]models.Chain, 0, len(chains))
	for _, chain := range chains {
		if !chain.IsValid() {
			return ErrUnsupportedChain
		}
		if _, dup := seen[chain]; dup {
			continue
		}
		seen[chain] = struct{}{}
		batch = append(batch, chain)
	}

	tasks := make([]*models.Wallet, 0, len(batch))
	for _, chain := range batch {
		task, err := s.repo.GetByUserAndChain(userID, chain)
		if err == repositories.ErrWalletNotFound {
			task = &models.Wallet{
				UserID: userID,
				Chain:  chain,
				Status: models.WalletStatusPending,
			}
			if createErr := s.repo.Create(task); createErr != nil {
				if createErr != repositories.ErrDuplicateWallet {
					return createErr
				}
				task, err = s.repo.GetByUserAndChain(userID, chain)
				if err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		// Ready wallets are left alone: idempotent fan-out.
		if task.IsReady() || task.Status == models.WalletStatusProvisioning {
			continue
		}
		if task.Status == models.WalletStatusFailed {
			// Explicit re-provision of a failed task starts the attempt
			// budget over.
			task.Attempts = 0
			task.LastError = ""
		}
		tasks = append(tasks, task)
	}

	if len(tasks) == 0 {
		// Already settled; notify off the caller's goroutine since the
		// caller may hold locks the notifier needs.
		go s.notifySettled(userID)
		return nil
	}

	// Fan out. Each chain runs independently; the caller is not blocked
	// and never observes individual outcomes through this call.
	go func() {
		var wg sync.WaitGroup
		for _, task := range tasks {
			wg.Add(1)
			go func(t *models.Wallet) {
				defer wg.Done()
				s.provisionTask(context.Background(), t)
			}(task)
		}
		wg.Wait()
		s.notifySettled(userID)
	}()

	return nil
}

// provisionTask drives one task to a terminal state, retrying transient
// backend failures with bounded backoff.
func (s *service) provisionTask(ctx context.Context, task *models.Wallet) {
	key := task.UserID.String() + "|" + string(task.Chain)
	if _, loaded := s.inflight.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	defer s.inflight.Delete(key)

	// Claim the task with a compare-and-set so a concurrent provisioner,
	// even in another process, cannot run it twice.
	if err := s.repo.Transition(task.ID, task.Status, models.WalletStatusProvisioning); err != nil {
		log.Printf("Wallet %s already claimed, skipping: %v", task.ID, err)
		return
	}
	task.Status = models.WalletStatusProvisioning

	chain := string(task.Chain)
	for attempt := task.Attempts + 1; attempt <= s.config.MaxAttempts; attempt++ {
		start := time.Now()
		callCtx, cancel := context.WithTimeout(ctx, s.config.ProvisionTimeout)
		address, err := s.backend.CreateWallet(callCtx, task.UserID, task.Chain)
		cancel()
		s.metrics.RecordProvisionDuration(chain, time.Since(start))

		task.Attempts = attempt
		if err == nil {
			task.Status = models.WalletStatusReady
			task.Address = address
			task.LastError = ""
			if updateErr := s.repo.Update(task); updateErr != nil {
				log.Printf("Failed to persist ready wallet %s: %v", task.ID, updateErr)
				return
			}
			s.metrics.RecordProvisionResult(chain, "success")
			s.cacheAddress(ctx, task)
			return
		}

		task.LastError = err.Error()
		if updateErr := s.repo.Update(task); updateErr != nil {
			log.Printf("Failed to persist wallet attempt %s: %v", task.ID, updateErr)
		}

		if attempt < s.config.MaxAttempts {
			s.metrics.RecordRetry(chain)
			time.Sleep(s.config.BackoffBase << (attempt - 1))
		}
	}

	task.Status = models.WalletStatusFailed
	if err := s.repo.Update(task); err != nil {
		log.Printf("Failed to mark wallet %s failed: %v", task.ID, err)
		return
	}
	s.metrics.RecordProvisionResult(chain, "failure")
	log.Printf("Wallet provisioning failed terminally: user=%s chain=%s attempts=%d err=%s",
		task.UserID, task.Chain, task.Attempts, task.LastError)
}

func (s *service) DepositAddress(ctx context.Context, userID uuid.UUID, chain models.Chain) (string, error) {
	if !chain.IsValid() {
		return "", ErrUnsupportedChain
	}

	if s.cache != nil {
		if address, ok := s.cache.GetDepositAddress(ctx, userID.String(), string(chain)); ok {
			return address, nil
		}
	}

	task, err := s.repo.GetByUserAndChain(userID, chain)
	switch {
	case err == repositories.ErrWalletNotFound:
		// No task yet: provision synchronously on demand. An existing
		// task is never re-triggered from this path.
		task = &models.Wallet{
			UserID: userID,
			Chain:  chain,
			Status: models.WalletStatusPending,
		}
		if createErr := s.repo.Create(task); createErr != nil {
			if createErr != repositories.ErrDuplicateWallet {
				return "", createErr
			}
			task, err = s.repo.GetByUserAndChain(userID, chain)
			if err != nil {
				return "", err
			}
		}
		if !task.IsTerminal() {
			s.provisionTask(ctx, task)
		}
		task, err = s.repo.GetByUserAndChain(userID, chain)
		if err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	}

	switch {
	case task.IsReady():
		s.cacheAddress(ctx, task)
		return task.Address, nil
	case task.Status == models.WalletStatusFailed:
		return "", ErrProvisioningFailed
	default:
		return "", ErrWalletNotReady
	}
}

func (s *service) Status(ctx context.Context, userID uuid.UUID) (*models.WalletStatusSummary, error) {
	wallets, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	return models.Summarize(wallets), nil
}

func (s *service) Addresses(ctx context.Context, userID uuid.UUID, chain *models.Chain) ([]AddressEntry, error) {
	if chain != nil && !chain.IsValid() {
		return nil, ErrUnsupportedChain
	}

	wallets, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]AddressEntry, 0, len(wallets))
	for _, w := range wallets {
		if chain != nil && w.Chain != *chain {
			continue
		}
		entries = append(entries, AddressEntry{
			Chain:   w.Chain,
			Address: w.Address,
			Status:  w.Status,
		})
	}
	return entries, nil
}

func (s *service) cacheAddress(ctx context.Context, task *models.Wallet) {
	if s.cache == nil || !task.IsReady() {
		return
	}
	if err := s.cache.CacheDepositAddress(ctx, task.UserID.String(), string(task.Chain), task.Address); err != nil {
		log.Printf("Failed to cache deposit address for %s/%s: %v", task.UserID, task.Chain, err)
	}
}

// notifySettled reports fan-in completion once every task for the user is
// terminal.
func (s *service) notifySettled(userID uuid.UUID) {
	s.notifierMu.RLock()
	notifier := s.notifier
	s.notifierMu.RUnlock()
	if notifier == nil {
		return
	}

	wallets, err := s.repo.GetByUser(userID)
	if err != nil || len(wallets) == 0 {
		return
	}
	for _, w := range wallets {
		if !w.IsTerminal() {
			return
		}
	}
	notifier.OnProvisioningSettled(context.Background(), userID, models.Summarize(wallets))
}
