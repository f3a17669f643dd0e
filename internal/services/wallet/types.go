package wallet

import (
	"context"
	"time"

	"onramp/internal/models"

	"github.com/google/uuid"
)

// Config holds configuration for wallet provisioning.
type Config struct {
	MaxAttempts      int
	BackoffBase      time.Duration
	ProvisionTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.ProvisionTimeout <= 0 {
		c.ProvisionTimeout = DefaultProvisionTimeout
	}
	return c
}

// AddressEntry is one row of the address listing.
type AddressEntry struct {
	Chain   models.Chain        `json:"chain"`
	Address string              `json:"address"`
	Status  models.WalletStatus `json:"status"`
}

// SettlementNotifier is told when every task of a provisioning batch has
// reached a terminal state. Wired after construction to avoid a dependency
// cycle with the onboarding service.
type SettlementNotifier interface {
	OnProvisioningSettled(ctx context.Context, userID uuid.UUID, summary *models.WalletStatusSummary)
}

// MetricsCollector defines the interface for collecting provisioning metrics
type MetricsCollector interface {
	RecordProvisionDuration(chain string, duration time.Duration)
	RecordProvisionResult(chain, result string)
	RecordRetry(chain string)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordProvisionDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordProvisionResult(string, string)         {}
func (n *NoopMetricsCollector) RecordRetry(string)                           {}
func (n *NoopMetricsCollector) RecordError(string, string)                   {}
