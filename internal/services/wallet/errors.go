package wallet

import apperrors "onramp/internal/errors"

// Service errors, shared with the transport layer through the domain
// error taxonomy.
var (
	ErrUnsupportedChain   = apperrors.ErrUnsupportedChain
	ErrWalletNotReady     = apperrors.ErrWalletNotReady
	ErrWalletNotFound     = apperrors.ErrWalletNotFound
	ErrProvisioningFailed = apperrors.ErrProvisioningFailed
)
