package wallet

import "time"

// Default configuration values
const (
	DefaultMaxAttempts      = 3
	DefaultBackoffBase      = 500 * time.Millisecond
	DefaultProvisionTimeout = 30 * time.Second
)
