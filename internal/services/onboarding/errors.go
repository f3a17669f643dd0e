package onboarding

import apperrors "onramp/internal/errors"

var (
	ErrEmailInUse            = apperrors.ErrEmailInUse
	ErrUserNotFound          = apperrors.ErrUserNotFound
	ErrKYCAlreadyPending     = apperrors.ErrKYCAlreadyPending
	ErrKYCAlreadyApproved    = apperrors.ErrKYCAlreadyApproved
	ErrUnknownProviderRef    = apperrors.ErrUnknownProviderRef
	ErrCallbackConflict      = apperrors.ErrCallbackConflict
	ErrInvalidCallbackStatus = apperrors.ErrInvalidCallbackStatus
)
