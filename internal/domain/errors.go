package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by knowledge base lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// ErrorType classifies domain errors.
type ErrorType string

const (
	ErrorTypeLookupMiss      ErrorType = "lookup_miss"
	ErrorTypeProvider        ErrorType = "provider"
	ErrorTypeMalformedOutput ErrorType = "malformed_output"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeStorage         ErrorType = "storage"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func LookupMiss(message string) *DomainError {
	return NewError(ErrorTypeLookupMiss, message, ErrNotFound)
}

func ProviderError(message string, err error) *DomainError {
	return NewError(ErrorTypeProvider, message, err)
}

func MalformedOutputError(message string, err error) *DomainError {
	return NewError(ErrorTypeMalformedOutput, message, err)
}

func ValidationError(message string, err error) *DomainError {
	return NewError(ErrorTypeValidation, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func StorageError(message string, err error) *DomainError {
	return NewError(ErrorTypeStorage, message, err)
}

// IsType reports whether err wraps a DomainError of the given type.
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Type == errType
	}
	return false
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsType(err, ErrorTypeLookupMiss)
}
