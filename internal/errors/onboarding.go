package errors

var (
	ErrEmailInUse = &DomainError{
		Kind:    KindConflict,
		Code:    "EMAIL_IN_USE",
		Message: "an account already exists for this email",
	}
	ErrUserNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrKYCAlreadyPending = &DomainError{
		Kind:    KindConflict,
		Code:    "KYC_ALREADY_PENDING",
		Message: "a KYC submission is already pending review",
	}
	ErrKYCAlreadyApproved = &DomainError{
		Kind:    KindConflict,
		Code:    "KYC_ALREADY_APPROVED",
		Message: "KYC is already approved",
	}
	ErrUnknownProviderRef = &DomainError{
		Kind:    KindNotFound,
		Code:    "UNKNOWN_PROVIDER_REF",
		Message: "no submission matches the provider reference",
	}
	ErrCallbackConflict = &DomainError{
		Kind:    KindConflict,
		Code:    "CALLBACK_CONFLICT",
		Message: "callback outcome conflicts with a recorded decision",
	}
	ErrInvalidCallbackStatus = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_CALLBACK_STATUS",
		Message: "callback status must be approved or rejected",
	}
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
	}
)
