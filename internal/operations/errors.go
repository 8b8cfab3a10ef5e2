package operations

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeExecution    ErrorType = "execution"
	ErrorTypeCancellation ErrorType = "cancellation"
	ErrorTypeFatal        ErrorType = "fatal"
	ErrorTypeNotFound     ErrorType = "not_found"
)

// OperationError represents a section or run level error
type OperationError struct {
	Type    ErrorType              `json:"type"`
	Section string                 `json:"section,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Section != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Section, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(section, message string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeValidation,
		Section: section,
		Message: message,
	}
}

// NewNotFoundError reports an unknown section ID
func NewNotFoundError(section string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeNotFound,
		Section: section,
		Message: "section not registered",
	}
}

// NewExecutionError creates a new execution error
func NewExecutionError(section string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeExecution,
		Section: section,
		Message: "section execution failed",
		Cause:   cause,
	}
}

// NewCancellationError creates a new cancellation error
func NewCancellationError(section string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeCancellation,
		Section: section,
		Message: "run was cancelled",
	}
}

// NewFatalError creates a new fatal error
func NewFatalError(message string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeFatal,
		Message: message,
		Cause:   cause,
	}
}

// GetErrorType returns the type of the error
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ""
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Type
	}
	return ErrorTypeExecution
}

// WrapError wraps an error with section context
func WrapError(err error, section string) *OperationError {
	if err == nil {
		return nil
	}

	var opErr *OperationError
	if errors.As(err, &opErr) {
		if opErr.Section == "" {
			opErr.Section = section
		}
		return opErr
	}
	return NewExecutionError(section, err)
}

// ErrorList represents multiple errors
type ErrorList struct {
	Errors []*OperationError `json:"errors"`
}

// Error implements the error interface
func (e *ErrorList) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("multiple errors: %d sections failed", len(e.Errors))
}

// Add adds an error to the list
func (e *ErrorList) Add(err *OperationError) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors
func (e *ErrorList) HasErrors() bool {
	return len(e.Errors) > 0
}

// GetBySection returns errors for a specific section
func (e *ErrorList) GetBySection(section string) []*OperationError {
	var out []*OperationError
	for _, err := range e.Errors {
		if err.Section == section {
			out = append(out, err)
		}
	}
	return out
}
