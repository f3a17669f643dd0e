package repositories

import (
	"errors"

	"onramp/internal/models"

	"github.com/google/uuid"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists")
)

// WalletRepository defines the interface for wallet task storage.
// Each row is the provisioning task for one (user, chain) pair.
type WalletRepository interface {
	// Create persists a new provisioning task
	Create(wallet *models.Wallet) error

	// GetByUserAndChain retrieves the task for one (user, chain) pair
	GetByUserAndChain(userID uuid.UUID, chain models.Chain) (*models.Wallet, error)

	// GetByUser retrieves every task for the user
	GetByUser(userID uuid.UUID) ([]*models.Wallet, error)

	// Update updates an existing task
	Update(wallet *models.Wallet) error

	// Transition performs a compare-and-set status move; it fails without
	// effect if the task is no longer in the expected status
	Transition(walletID uuid.UUID, from, to models.WalletStatus) error
}
