package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletStatus is the lifecycle of one provisioning task.
type WalletStatus string

const (
	WalletStatusPending      WalletStatus = "pending"
	WalletStatusProvisioning WalletStatus = "provisioning"
	WalletStatusReady        WalletStatus = "ready"
	WalletStatusFailed       WalletStatus = "failed"
)

// Wallet is the provisioning task for one (user, chain) pair. At most one
// row exists per pair; re-provisioning a Ready wallet is a no-op.
type Wallet struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_chain" json:"user_id"`
	Chain     Chain        `gorm:"not null;uniqueIndex:idx_wallets_user_chain" json:"chain"`
	Status    WalletStatus `gorm:"default:'pending'" json:"status"`
	Address   string       `json:"address,omitempty"`
	Attempts  int          `gorm:"default:0" json:"attempts"`
	LastError string       `json:"last_error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// IsReady reports whether the wallet has a usable address.
func (w *Wallet) IsReady() bool {
	return w.Status == WalletStatusReady && w.Address != ""
}

// IsTerminal reports whether the task is done retrying.
func (w *Wallet) IsTerminal() bool {
	return w.Status == WalletStatusReady || w.Status == WalletStatusFailed
}

// WalletChainStatus is the externally visible state of one chain's task.
type WalletChainStatus struct {
	Chain   Chain        `json:"chain"`
	Status  WalletStatus `json:"status"`
	Address string       `json:"address,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// WalletStatusSummary aggregates every task for a user. It is computed at
// read time and never persisted.
type WalletStatusSummary struct {
	TotalWallets   int                          `json:"totalWallets"`
	ReadyWallets   int                          `json:"readyWallets"`
	PendingWallets int                          `json:"pendingWallets"`
	FailedWallets  int                          `json:"failedWallets"`
	WalletsByChain map[string]WalletChainStatus `json:"walletsByChain"`
}

// Summarize folds a task list into the aggregate view.
func Summarize(wallets []*Wallet) *WalletStatusSummary {
	summary := &WalletStatusSummary{
		WalletsByChain: make(map[string]WalletChainStatus, len(wallets)),
	}
	for _, w := range wallets {
		summary.TotalWallets++
		switch w.Status {
		case WalletStatusReady:
			summary.ReadyWallets++
		case WalletStatusFailed:
			summary.FailedWallets++
		default:
			summary.PendingWallets++
		}
		summary.WalletsByChain[string(w.Chain)] = WalletChainStatus{
			Chain:   w.Chain,
			Status:  w.Status,
			Address: w.Address,
			Error:   w.LastError,
		}
	}
	return summary
}
