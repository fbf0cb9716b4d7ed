package errors_test

import (
	"errors"
	"testing"

	aerrors "chassign/pkg/errors"
)

func TestNewError(t *testing.T) {
	err := aerrors.NewError(aerrors.ErrorTypeInput, aerrors.CodeInvalidInput, "test message")

	if err.GetType() != aerrors.ErrorTypeInput {
		t.Errorf("Expected type %s, got %s", aerrors.ErrorTypeInput, err.GetType())
	}

	if err.GetCode() != aerrors.CodeInvalidInput {
		t.Errorf("Expected code %s, got %s", aerrors.CodeInvalidInput, err.GetCode())
	}

	if err.Error() != "[INPUT:E007] test message" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}

	if err.File == "" || err.Line == 0 {
		t.Error("Caller information not captured")
	}
}

func TestErrorWithDetails(t *testing.T) {
	err := aerrors.NewInputError(aerrors.CodeInvalidInput, "test message").
		WithDetails("additional details")

	expected := "[INPUT:E007] test message: additional details"
	if err.Error() != expected {
		t.Errorf("Expected %s, got %s", expected, err.Error())
	}
}

func TestErrorWithContext(t *testing.T) {
	err := aerrors.NewInputError(aerrors.CodeInvalidInput, "test message").
		WithContext("file", "sheet.xlsx").
		WithContext("row", 42)

	context := err.GetContext()
	if context["file"] != "sheet.xlsx" {
		t.Errorf("Expected file context 'sheet.xlsx', got %v", context["file"])
	}

	if context["row"] != 42 {
		t.Errorf("Expected row context 42, got %v", context["row"])
	}
}

func TestErrorWithCause(t *testing.T) {
	originalErr := errors.New("original error")
	err := aerrors.NewInputError(aerrors.CodeInvalidInput, "wrapped error").
		WithCause(originalErr)

	if err.Unwrap() != originalErr {
		t.Error("Cause not properly wrapped")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	testCases := []struct {
		name         string
		constructor  func() *aerrors.AssignError
		expectedType aerrors.ErrorType
	}{
		{"InputError", func() *aerrors.AssignError { return aerrors.NewInputError(aerrors.CodeInvalidInput, "test") }, aerrors.ErrorTypeInput},
		{"ConfigurationError", func() *aerrors.AssignError {
			return aerrors.NewConfigurationError(aerrors.CodeMissingConfig, "test")
		}, aerrors.ErrorTypeConfiguration},
		{"ShortfallError", func() *aerrors.AssignError {
			return aerrors.NewShortfallError(aerrors.CodeNoFreeChannel, "test")
		}, aerrors.ErrorTypeShortfall},
		{"ValidationError", func() *aerrors.AssignError { return aerrors.NewValidationError(aerrors.CodeConsistency, "test") }, aerrors.ErrorTypeValidation},
		{"IOError", func() *aerrors.AssignError { return aerrors.NewIOError(aerrors.CodeReadFailed, "test") }, aerrors.ErrorTypeIO},
		{"InternalError", func() *aerrors.AssignError { return aerrors.NewInternalError(aerrors.CodeUnexpected, "test") }, aerrors.ErrorTypeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.constructor()
			if err.GetType() != tc.expectedType {
				t.Errorf("Expected type %s, got %s", tc.expectedType, err.GetType())
			}
		})
	}
}

func TestWrapFunctions(t *testing.T) {
	originalErr := errors.New("original error")

	testCases := []struct {
		name         string
		wrapper      func() *aerrors.AssignError
		expectedType aerrors.ErrorType
	}{
		{"WrapInput", func() *aerrors.AssignError {
			return aerrors.WrapInput(originalErr, aerrors.CodeInvalidInput, "wrapped")
		}, aerrors.ErrorTypeInput},
		{"WrapConfiguration", func() *aerrors.AssignError {
			return aerrors.WrapConfiguration(originalErr, aerrors.CodeMissingConfig, "wrapped")
		}, aerrors.ErrorTypeConfiguration},
		{"WrapValidation", func() *aerrors.AssignError {
			return aerrors.WrapValidation(originalErr, aerrors.CodeConsistency, "wrapped")
		}, aerrors.ErrorTypeValidation},
		{"WrapIO", func() *aerrors.AssignError {
			return aerrors.WrapIO(originalErr, aerrors.CodeReadFailed, "wrapped")
		}, aerrors.ErrorTypeIO},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.wrapper()
			if err.GetType() != tc.expectedType {
				t.Errorf("Expected type %s, got %s", tc.expectedType, err.GetType())
			}
			if err.Unwrap() != originalErr {
				t.Error("Original error not properly wrapped")
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	inputErr := aerrors.NewInputError(aerrors.CodeInvalidInput, "input error")
	ioErr := aerrors.NewIOError(aerrors.CodeFileNotFound, "io error")
	validationErr := aerrors.NewValidationError(aerrors.CodeConsistency, "validation error")
	regularErr := errors.New("regular error")

	if !aerrors.IsInputError(inputErr) {
		t.Error("IsInputError should return true for input error")
	}
	if aerrors.IsInputError(ioErr) {
		t.Error("IsInputError should return false for io error")
	}
	if aerrors.IsInputError(regularErr) {
		t.Error("IsInputError should return false for regular error")
	}

	if !aerrors.IsValidationError(validationErr) {
		t.Error("IsValidationError should return true for validation error")
	}
	if aerrors.IsValidationError(inputErr) {
		t.Error("IsValidationError should return false for input error")
	}
}

func TestRecoverability(t *testing.T) {
	shortfallErr := aerrors.NewShortfallError(aerrors.CodeNoFreeChannel, "shortfall error")
	validationErr := aerrors.NewValidationError(aerrors.CodeConsistency, "validation error")

	inputErr := aerrors.NewInputError(aerrors.CodeInvalidInput, "input error")
	configErr := aerrors.NewConfigurationError(aerrors.CodeMissingConfig, "config error")
	internalErr := aerrors.NewInternalError(aerrors.CodeUnexpected, "internal error")
	ioErr := aerrors.NewIOError(aerrors.CodeReadFailed, "io error")

	recoverableErrors := []*aerrors.AssignError{shortfallErr, validationErr}
	nonRecoverableErrors := []*aerrors.AssignError{inputErr, configErr, internalErr, ioErr}

	for _, err := range recoverableErrors {
		if !err.IsRecoverable() {
			t.Errorf("Error %s should be recoverable", err.GetType())
		}
		if !aerrors.IsRecoverable(err) {
			t.Errorf("IsRecoverable should return true for %s", err.GetType())
		}
	}

	for _, err := range nonRecoverableErrors {
		if err.IsRecoverable() {
			t.Errorf("Error %s should not be recoverable", err.GetType())
		}
		if aerrors.IsRecoverable(err) {
			t.Errorf("IsRecoverable should return false for %s", err.GetType())
		}
	}
}

func TestErrorIs(t *testing.T) {
	err1 := aerrors.NewInputError(aerrors.CodeInvalidInput, "error 1")
	err2 := aerrors.NewInputError(aerrors.CodeInvalidInput, "error 2")
	err3 := aerrors.NewInputError(aerrors.CodeMissingRequired, "error 3")

	if !errors.Is(err1, err2) {
		t.Error("Errors with same type and code should be equal")
	}

	if errors.Is(err1, err3) {
		t.Error("Errors with different codes should not be equal")
	}
}

func TestGetErrorInfo(t *testing.T) {
	err := aerrors.NewInputError(aerrors.CodeInvalidInput, "test error")

	if aerrors.GetErrorCode(err) != aerrors.CodeInvalidInput {
		t.Errorf("Expected code %s, got %s", aerrors.CodeInvalidInput, aerrors.GetErrorCode(err))
	}

	if aerrors.GetErrorType(err) != aerrors.ErrorTypeInput {
		t.Errorf("Expected type %s, got %s", aerrors.ErrorTypeInput, aerrors.GetErrorType(err))
	}

	regularErr := errors.New("regular error")
	if aerrors.GetErrorCode(regularErr) != "" {
		t.Error("GetErrorCode should return empty string for regular error")
	}

	if aerrors.GetErrorType(regularErr) != "" {
		t.Error("GetErrorType should return empty string for regular error")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []aerrors.ErrorCode{
		aerrors.CodeDocumentUnreadable,
		aerrors.CodeNoTables,
		aerrors.CodeAmbiguousRow,
		aerrors.CodeEmptyCatalogue,
		aerrors.CodeInvalidRack,
		aerrors.CodeMissingRequired,
		aerrors.CodeInvalidInput,
		aerrors.CodeInvalidFormat,
		aerrors.CodeMissingDPMaster,
		aerrors.CodeMisplacedCPU,
		aerrors.CodeMultipleCPU,
		aerrors.CodeUnresolvedModule,
		aerrors.CodeDuplicateRackSlot,
		aerrors.CodeMissingConfig,
		aerrors.CodeInvalidConfig,
		aerrors.CodeNoFreeChannel,
		aerrors.CodeConsistency,
		aerrors.CodeReservedNotEmpty,
		aerrors.CodeMissingOnSheet,
		aerrors.CodeInvalidValueSet,
		aerrors.CodeNotNumeric,
		aerrors.CodeMultipleSetpoints,
		aerrors.CodeSetpointOnBool,
		aerrors.CodeDuplicateHMIName,
		aerrors.CodeFileNotFound,
		aerrors.CodePermissionDenied,
		aerrors.CodeReadFailed,
		aerrors.CodeWriteFailed,
		aerrors.CodeCreateFailed,
		aerrors.CodeUnexpected,
		aerrors.CodeNotImplemented,
		aerrors.CodeAssertionFailed,
	}

	seen := make(map[aerrors.ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true

		if len(string(code)) != 4 || string(code)[0] != 'E' {
			t.Errorf("Invalid error code format: %s", code)
		}
	}
}
