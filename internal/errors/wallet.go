package errors

var (
	ErrUnsupportedChain = &DomainError{
		Kind:    KindUnsupportedChain,
		Code:    "UNSUPPORTED_CHAIN",
		Message: "chain is not in the supported set",
	}
	ErrWalletNotReady = &DomainError{
		Kind:    KindConflict,
		Code:    "WALLET_NOT_READY",
		Message: "wallet provisioning has not finished for this chain",
	}
	ErrWalletNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "WALLET_NOT_FOUND",
		Message: "no wallet exists for this chain",
	}
	ErrProvisioningFailed = &DomainError{
		Kind:    KindProvisioning,
		Code:    "PROVISIONING_FAILED",
		Message: "wallet provisioning exhausted its retry budget",
	}
)
