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
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
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

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDataNotFound     = "DATA_NOT_FOUND"
	ErrCodeModelUnavailable = "MODEL_UNAVAILABLE"
	ErrCodeServiceError     = "SERVICE_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Availability errors. ErrModelUnavailable disables the retrieval path only;
// FAQ and booking flows keep working without embeddings.
var (
	ErrModelUnavailable   = NewDomainError(ErrCodeModelUnavailable, "embedding model unavailable")
	ErrServiceUnavailable = NewDomainError(ErrCodeServiceError, "generation service unavailable")
)

// Data source errors. Missing data files are fatal at startup.
var (
	ErrKnowledgeFileNotFound    = NewDomainError(ErrCodeDataNotFound, "knowledge base file not found")
	ErrFAQFileNotFound          = NewDomainError(ErrCodeDataNotFound, "faq file not found")
	ErrAppointmentsFileNotFound = NewDomainError(ErrCodeDataNotFound, "appointments file not found")
)

// Not found errors, recovered locally with a "no match" reply.
var (
	ErrFAQNotFound  = NewDomainError(ErrCodeNotFound, "no matching faq entry")
	ErrSlotNotFound = NewDomainError(ErrCodeNotFound, "appointment slot not found")
)

// Operation errors
var (
	ErrSlotUnavailable = NewDomainError(ErrCodeInvalidOperation, "appointment slot is no longer available")
)
