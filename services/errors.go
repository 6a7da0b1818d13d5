package services

import (
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithDetail returns a copy of the error with the detail attached. Copying
// keeps the package-level sentinels immutable under concurrent requests.
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{
		Type:    e.Type,
		Message: e.Message,
		Err:     e.Err,
		Details: details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Domain error variables

var (
	// Not found errors
	ErrDocumentNotFound = NewDomainError(ErrorTypeNotFound, "document not found", nil)
	ErrUserNotFound     = NewDomainError(ErrorTypeNotFound, "user not found", nil)
	ErrRoleNotFound     = NewDomainError(ErrorTypeNotFound, "role not found", nil)

	// Validation errors
	ErrInvalidInput       = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrInvalidAccessLevel = NewDomainError(ErrorTypeValidation, "invalid access level", nil)
	ErrInvalidPagination  = NewDomainError(ErrorTypeValidation, "invalid pagination parameters", nil)

	// Authorization errors. Ownership violations deliberately map to
	// unauthorized rather than forbidden, matching the API contract.
	ErrDocumentViewDenied = NewDomainError(ErrorTypeUnauthorized, "you cannot view this document", nil)
	ErrNotDocumentOwner   = NewDomainError(ErrorTypeUnauthorized, "only the document owner may perform this action", nil)

	// Permission errors
	ErrAdminRequired = NewDomainError(ErrorTypeForbidden, "admin role required", nil)
)
