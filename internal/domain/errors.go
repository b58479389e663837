package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Message == "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %v", e.Code, e.Err)
		}
		return fmt.Sprintf("[%s]", e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a class sentinel (no message) sharing this error's code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Code == e.Code
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNetworkError reports a failed vendor round trip: connection, timeout or non-2xx status.
func NewNetworkError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeNetwork, message, err)
}

// NewParseError reports a vendor body that arrived but could not be decoded as text.
func NewParseError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeParse, message, err)
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNetwork       = "NETWORK_ERROR"
	ErrCodeParse         = "PARSE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Class sentinels, matched by code through errors.Is.
var (
	ErrValidation = &DomainError{Code: ErrCodeValidation}
	ErrNetwork    = &DomainError{Code: ErrCodeNetwork}
	ErrParse      = &DomainError{Code: ErrCodeParse}
)

// Validation errors
var (
	ErrEmptyKeyword = NewDomainError(ErrCodeValidation, "keyword is required")
)
