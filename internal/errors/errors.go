// Package errors provides structured error types for the Tessera index core.
// All errors include a category, code, and message for consistent handling
// across components.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by system component.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategorySchema     ErrorCategory = "SCHEMA"
	ErrCategoryCatalog    ErrorCategory = "CATALOG"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes. INVALID_REQUEST is a user-facing rejection of a
	// structurally disallowed index definition.
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidTarget  = "INVALID_TARGET"

	// Schema codes
	CodeInvalidTableName = "INVALID_TABLE_NAME"
	CodeDuplicateColumn  = "DUPLICATE_COLUMN"
	CodeUnknownColumn    = "UNKNOWN_COLUMN"
	CodeInvalidSchema    = "INVALID_SCHEMA"

	// Catalog codes
	CodeSaveFailed = "SAVE_FAILED"
	CodeLoadFailed = "LOAD_FAILED"
	CodeNotFound   = "NOT_FOUND"

	// Internal codes. UNEXPECTED marks contract violations that should be
	// unreachable given upstream dispatch.
	CodeUnexpected = "UNEXPECTED"
)

// TesseraError is the structured error type used throughout the system.
type TesseraError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error returns a formatted error string.
func (e *TesseraError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *TesseraError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *TesseraError) Is(target error) bool {
	var t *TesseraError
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new TesseraError.
func New(category ErrorCategory, code, message string) *TesseraError {
	return &TesseraError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Newf creates a new TesseraError with a formatted message.
func Newf(category ErrorCategory, code, format string, args ...interface{}) *TesseraError {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap creates a new TesseraError wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *TesseraError {
	return &TesseraError{
		Category: category,
		Code:     code,
		Message:  message,
		Cause:    cause,
	}
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not a TesseraError.
func GetCategory(err error) ErrorCategory {
	var te *TesseraError
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a TesseraError.
func GetCode(err error) string {
	var te *TesseraError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

// Convenience constructors for common errors.

func NewValidationError(code, message string) *TesseraError {
	return New(ErrCategoryValidation, code, message)
}

func NewSchemaError(code, message string) *TesseraError {
	return New(ErrCategorySchema, code, message)
}

func NewCatalogError(code, message string, cause error) *TesseraError {
	return Wrap(ErrCategoryCatalog, code, message, cause)
}

func NewInternalError(message string) *TesseraError {
	return New(ErrCategoryInternal, CodeUnexpected, message)
}
