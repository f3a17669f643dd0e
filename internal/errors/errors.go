// Package errors defines the domain error taxonomy shared by services and
// handlers. Every error carries a kind that maps to exactly one HTTP status.
package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a domain error for transport mapping.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindUnsupportedChain Kind = "unsupported_chain"
	KindProvisioning     Kind = "provisioning"
	KindInternal         Kind = "internal"
)

// DomainError is a typed application error.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// New builds a DomainError.
func New(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// Validation builds a validation-kind error with the given message.
func Validation(message string) *DomainError {
	return New(KindValidation, "VALIDATION_FAILED", message)
}

// KindOf extracts the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to its contractual status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindUnsupportedChain:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
