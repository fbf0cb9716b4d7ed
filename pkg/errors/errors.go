package errors

import (
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// Input errors - a malformed call argument: unreadable document, empty
	// catalogue, invalid rack configuration. Aborts the call.
	ErrorTypeInput ErrorType = "INPUT"

	// Configuration errors - a rule violation discovered while building the
	// rack model, e.g. a classic-serial rack with no DP module in slot 1.
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// Shortfall errors - one or more points could not be placed. Not fatal;
	// carried alongside a successful assignment map.
	ErrorTypeShortfall ErrorType = "SHORTFALL"

	// Validation errors - a rule violation found in a post-assignment sheet.
	// Collected in a batch, never raised mid-traversal.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// IO errors - caused by file system operations in the ambient shell
	ErrorTypeIO ErrorType = "IO"

	// Internal errors - caused by programming errors or unexpected conditions
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// ErrorCode represents specific error codes for programmatic handling
type ErrorCode string

const (
	// Input Error Codes
	CodeDocumentUnreadable ErrorCode = "E001"
	CodeNoTables           ErrorCode = "E002"
	CodeAmbiguousRow       ErrorCode = "E003"
	CodeEmptyCatalogue     ErrorCode = "E004"
	CodeInvalidRack        ErrorCode = "E005"
	CodeMissingRequired    ErrorCode = "E006"
	CodeInvalidInput       ErrorCode = "E007"
	CodeInvalidFormat      ErrorCode = "E008"

	// Configuration Error Codes
	CodeMissingDPMaster   ErrorCode = "E101"
	CodeMisplacedCPU      ErrorCode = "E102"
	CodeMultipleCPU       ErrorCode = "E103"
	CodeUnresolvedModule  ErrorCode = "E104"
	CodeDuplicateRackSlot ErrorCode = "E105"
	CodeMissingConfig     ErrorCode = "E106"
	CodeInvalidConfig     ErrorCode = "E107"

	// Shortfall Error Codes
	CodeNoFreeChannel ErrorCode = "E201"

	// Validation Error Codes
	CodeConsistency       ErrorCode = "E301"
	CodeReservedNotEmpty  ErrorCode = "E302"
	CodeMissingOnSheet    ErrorCode = "E303"
	CodeInvalidValueSet   ErrorCode = "E304"
	CodeNotNumeric        ErrorCode = "E305"
	CodeMultipleSetpoints ErrorCode = "E306"
	CodeSetpointOnBool    ErrorCode = "E307"
	CodeDuplicateHMIName  ErrorCode = "E308"

	// IO Error Codes
	CodeFileNotFound     ErrorCode = "E401"
	CodePermissionDenied ErrorCode = "E402"
	CodeReadFailed       ErrorCode = "E403"
	CodeWriteFailed      ErrorCode = "E404"
	CodeCreateFailed     ErrorCode = "E405"

	// Internal Error Codes
	CodeUnexpected      ErrorCode = "E901"
	CodeNotImplemented  ErrorCode = "E902"
	CodeAssertionFailed ErrorCode = "E903"
)

// AssignError represents a structured error with context
type AssignError struct {
	Type        ErrorType              `json:"type"`
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Cause       error                  `json:"cause,omitempty"`
	File        string                 `json:"file,omitempty"`
	Line        int                    `json:"line,omitempty"`
	Function    string                 `json:"function,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *AssignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Type, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error wrapping
func (e *AssignError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *AssignError) Is(target error) bool {
	if t, ok := target.(*AssignError); ok {
		return e.Code == t.Code && e.Type == t.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *AssignError) WithContext(key string, value interface{}) *AssignError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds detailed information to the error
func (e *AssignError) WithDetails(details string) *AssignError {
	e.Details = details
	return e
}

// WithCause wraps another error as the cause
func (e *AssignError) WithCause(cause error) *AssignError {
	e.Cause = cause
	return e
}

// IsRecoverable returns whether the error is recoverable
func (e *AssignError) IsRecoverable() bool {
	return e.Recoverable
}

// GetType returns the error type
func (e *AssignError) GetType() ErrorType {
	return e.Type
}

// GetCode returns the error code
func (e *AssignError) GetCode() ErrorCode {
	return e.Code
}

// GetContext returns the error context
func (e *AssignError) GetContext() map[string]interface{} {
	return e.Context
}

// NewError creates a new AssignError with caller information
func NewError(errorType ErrorType, code ErrorCode, message string) *AssignError {
	err := &AssignError{
		Type:        errorType,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: isRecoverableByDefault(errorType),
	}

	// Capture caller information
	if pc, file, line, ok := runtime.Caller(1); ok {
		err.File = file
		err.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			err.Function = fn.Name()
		}
	}

	return err
}

// isRecoverableByDefault determines if an error type is recoverable by default
func isRecoverableByDefault(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeShortfall, ErrorTypeValidation:
		return true
	case ErrorTypeInput, ErrorTypeConfiguration, ErrorTypeIO:
		return false
	case ErrorTypeInternal:
		return false
	default:
		return false
	}
}

// Convenience functions for common error types

// NewInputError creates a new input error
func NewInputError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeInput, code, message)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeConfiguration, code, message)
}

// NewShortfallError creates a new shortfall error
func NewShortfallError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeShortfall, code, message)
}

// NewValidationError creates a new validation error
func NewValidationError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeValidation, code, message)
}

// NewIOError creates a new IO error
func NewIOError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeIO, code, message)
}

// NewInternalError creates a new internal error
func NewInternalError(code ErrorCode, message string) *AssignError {
	return NewError(ErrorTypeInternal, code, message)
}

// Wrap wraps an existing error with AssignError context
func Wrap(err error, errorType ErrorType, code ErrorCode, message string) *AssignError {
	wrapped := NewError(errorType, code, message)
	wrapped.Cause = err
	return wrapped
}

// WrapInput wraps an error as an input error
func WrapInput(err error, code ErrorCode, message string) *AssignError {
	return Wrap(err, ErrorTypeInput, code, message)
}

// WrapIO wraps an error as an IO error
func WrapIO(err error, code ErrorCode, message string) *AssignError {
	return Wrap(err, ErrorTypeIO, code, message)
}

// WrapValidation wraps an error as a validation error
func WrapValidation(err error, code ErrorCode, message string) *AssignError {
	return Wrap(err, ErrorTypeValidation, code, message)
}

// WrapConfiguration wraps an error as a configuration error
func WrapConfiguration(err error, code ErrorCode, message string) *AssignError {
	return Wrap(err, ErrorTypeConfiguration, code, message)
}

// Helper functions for error checking

// IsInputError checks if an error is an input error
func IsInputError(err error) bool {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Type == ErrorTypeInput
	}
	return false
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Type == ErrorTypeConfiguration
	}
	return false
}

// IsShortfallError checks if an error is a shortfall error
func IsShortfallError(err error) bool {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Type == ErrorTypeShortfall
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Type == ErrorTypeValidation
	}
	return false
}

// IsRecoverable checks if an error is recoverable
func IsRecoverable(err error) bool {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Recoverable
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Code
	}
	return ""
}

// GetErrorType extracts the error type from an error
func GetErrorType(err error) ErrorType {
	if aerr, ok := err.(*AssignError); ok {
		return aerr.Type
	}
	return ""
}
