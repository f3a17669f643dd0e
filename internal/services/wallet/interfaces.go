package wallet

import (
	"context"

	"onramp/internal/models"

	"github.com/google/uuid"
)

// Service defines the wallet provisioning and read-side operations.
type Service interface {
	// Provision fans out one task per chain; unsupported chains fail the
	// whole call before any task is created.
	Provision(ctx context.Context, userID uuid.UUID, chains []models.Chain) error

	// DepositAddress returns the address of a Ready wallet. If no task
	// exists for the chain it provisions synchronously on demand; a task
	// that exists but is not Ready is reported, not re-triggered.
	DepositAddress(ctx context.Context, userID uuid.UUID, chain models.Chain) (string, error)

	// Status aggregates every task for the user without blocking on
	// in-flight provisioning.
	Status(ctx context.Context, userID uuid.UUID) (*models.WalletStatusSummary, error)

	// Addresses lists wallets, optionally filtered to one chain.
	Addresses(ctx context.Context, userID uuid.UUID, chain *models.Chain) ([]AddressEntry, error)

	// SetNotifier wires the fan-in settlement callback.
	SetNotifier(n SettlementNotifier)
}

// Backend is the opaque chain capability: provision a wallet for chain C
// for user U. Key generation mechanics stay behind this seam.
type Backend interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, chain models.Chain) (address string, err error)
}
