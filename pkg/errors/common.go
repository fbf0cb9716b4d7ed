package errors

import (
	"fmt"
	"os"
)

// Common error scenarios with pre-defined messages and context

// File and IO related errors

// ErrFileNotFound creates a file not found error
func ErrFileNotFound(filepath string) *AssignError {
	return NewIOError(CodeFileNotFound, "file not found").
		WithContext("filepath", filepath).
		WithDetails(fmt.Sprintf("The file '%s' does not exist or is not accessible", filepath))
}

// ErrFilePermissionDenied creates a permission denied error
func ErrFilePermissionDenied(filepath string) *AssignError {
	return NewIOError(CodePermissionDenied, "permission denied").
		WithContext("filepath", filepath).
		WithDetails(fmt.Sprintf("Insufficient permissions to access '%s'", filepath))
}

// ErrFileReadFailed creates a file read error
func ErrFileReadFailed(filepath string, cause error) *AssignError {
	return NewIOError(CodeReadFailed, "failed to read file").
		WithContext("filepath", filepath).
		WithCause(cause).
		WithDetails(fmt.Sprintf("Unable to read from file '%s'", filepath))
}

// ErrFileWriteFailed creates a file write error
func ErrFileWriteFailed(filepath string, cause error) *AssignError {
	return NewIOError(CodeWriteFailed, "failed to write file").
		WithContext("filepath", filepath).
		WithCause(cause).
		WithDetails(fmt.Sprintf("Unable to write to file '%s'", filepath))
}

// ErrDirectoryCreateFailed creates a directory creation error
func ErrDirectoryCreateFailed(dirpath string, cause error) *AssignError {
	return NewIOError(CodeCreateFailed, "failed to create directory").
		WithContext("directory", dirpath).
		WithCause(cause).
		WithDetails(fmt.Sprintf("Unable to create directory '%s'", dirpath))
}

// Input related errors

// ErrDocumentUnreadable creates a document-unreadable error
func ErrDocumentUnreadable(filepath string, cause error) *AssignError {
	return NewInputError(CodeDocumentUnreadable, "document could not be read").
		WithContext("filepath", filepath).
		WithCause(cause).
		WithDetails(fmt.Sprintf("Document '%s' is not a recognized tabular format", filepath))
}

// ErrNoTables creates a no-tabular-region-found error
func ErrNoTables(filepath string) *AssignError {
	return NewInputError(CodeNoTables, "no tabular region found").
		WithContext("filepath", filepath).
		WithDetails(fmt.Sprintf("Document '%s' contains no recognizable table of points", filepath))
}

// ErrEmptyCatalogue creates an empty-catalogue error
func ErrEmptyCatalogue() *AssignError {
	return NewInputError(CodeEmptyCatalogue, "module catalogue is empty").
		WithDetails("no module definitions were loaded; assignment cannot resolve channel widths")
}

// ErrInvalidRack creates an invalid rack configuration error
func ErrInvalidRack(reason string) *AssignError {
	return NewInputError(CodeInvalidRack, "invalid rack configuration").
		WithDetails(reason)
}

// Configuration related errors

// ErrMissingRequiredField creates a missing required field error
func ErrMissingRequiredField(fieldName string) *AssignError {
	return NewInputError(CodeMissingRequired, "missing required field").
		WithContext("field", fieldName).
		WithDetails(fmt.Sprintf("Required field '%s' is missing or empty", fieldName))
}

// ErrInvalidConfiguration creates an invalid configuration error
func ErrInvalidConfiguration(configType string, reason string) *AssignError {
	err := NewConfigurationError(CodeInvalidConfig, "invalid configuration").
		WithContext("config_type", configType)

	if reason != "" {
		err = err.WithDetails(fmt.Sprintf("Configuration '%s' is invalid: %s", configType, reason))
	} else {
		err = err.WithDetails(fmt.Sprintf("Configuration '%s' contains invalid settings", configType))
	}

	return err
}

// ErrMissingConfiguration creates a missing configuration error
func ErrMissingConfiguration(configType string) *AssignError {
	return NewConfigurationError(CodeMissingConfig, "missing configuration").
		WithContext("config_type", configType).
		WithDetails(fmt.Sprintf("Required configuration '%s' is not provided", configType))
}

// ErrMissingDPMaster creates an error for a classic-serial rack with no DP module
func ErrMissingDPMaster(rackID int) *AssignError {
	return NewConfigurationError(CodeMissingDPMaster, "rack has no DP master module").
		WithContext("rack_id", rackID).
		WithDetails(fmt.Sprintf("rack %d requires a DP master in its reserved slot", rackID))
}

// ErrMalformedConfig creates a malformed configuration error
func ErrMalformedConfig(filepath string, configType string, cause error) *AssignError {
	return NewConfigurationError(CodeInvalidConfig, "malformed configuration file").
		WithContext("filepath", filepath).
		WithContext("config_type", configType).
		WithCause(cause).
		WithDetails(fmt.Sprintf("%s configuration file '%s' is not in valid format", configType, filepath))
}

// ErrUnsupportedFormat creates an unsupported format error
func ErrUnsupportedFormat(format string, supportedFormats []string) *AssignError {
	err := NewInputError(CodeInvalidFormat, "unsupported file format").
		WithContext("format", format).
		WithContext("supported_formats", supportedFormats)

	if len(supportedFormats) > 0 {
		err = err.WithDetails(fmt.Sprintf("Format '%s' is not supported. Supported formats: %v", format, supportedFormats))
	} else {
		err = err.WithDetails(fmt.Sprintf("Format '%s' is not supported", format))
	}

	return err
}

// Input errors

// ErrInvalidInput creates an invalid input error
func ErrInvalidInput(inputName string, value interface{}, reason string) *AssignError {
	err := NewInputError(CodeInvalidInput, "invalid input").
		WithContext("input_name", inputName).
		WithContext("value", value)

	if reason != "" {
		err = err.WithDetails(fmt.Sprintf("Input '%s' with value '%v' is invalid: %s", inputName, value, reason))
	} else {
		err = err.WithDetails(fmt.Sprintf("Input '%s' with value '%v' is not valid", inputName, value))
	}

	return err
}

// ErrInvalidFormat creates an invalid format error
func ErrInvalidFormat(inputName string, value string, expectedFormat string) *AssignError {
	return NewInputError(CodeInvalidFormat, "invalid format").
		WithContext("input_name", inputName).
		WithContext("value", value).
		WithContext("expected_format", expectedFormat).
		WithDetails(fmt.Sprintf("Input '%s' with value '%s' does not match expected format: %s", inputName, value, expectedFormat))
}

// Shortfall errors

// ErrNoFreeChannel creates a shortfall error for a point with no available channel
func ErrNoFreeChannel(pointTag string, kind string) *AssignError {
	return NewShortfallError(CodeNoFreeChannel, "no available channel").
		WithContext("point", pointTag).
		WithContext("kind", kind).
		WithDetails(fmt.Sprintf("no free %s channel remains for point '%s'", kind, pointTag))
}

// Internal errors

// ErrUnexpected creates an unexpected error (should be used sparingly)
func ErrUnexpected(operation string, cause error) *AssignError {
	return NewInternalError(CodeUnexpected, "unexpected error").
		WithContext("operation", operation).
		WithCause(cause).
		WithDetails(fmt.Sprintf("An unexpected error occurred during '%s'", operation))
}

// ErrNotImplemented creates a not implemented error
func ErrNotImplemented(feature string) *AssignError {
	return NewInternalError(CodeNotImplemented, "feature not implemented").
		WithContext("feature", feature).
		WithDetails(fmt.Sprintf("Feature '%s' is not yet implemented", feature))
}

// Helper functions for common checks

// CheckFileExists checks if a file exists and returns appropriate error
func CheckFileExists(filepath string) error {
	if filepath == "" {
		return ErrMissingRequiredField("filepath")
	}

	info, err := os.Stat(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrFileNotFound(filepath)
		}
		if os.IsPermission(err) {
			return ErrFilePermissionDenied(filepath)
		}
		return WrapIO(err, CodeFileNotFound, "failed to access file").
			WithContext("filepath", filepath)
	}

	if info.IsDir() {
		return ErrInvalidInput("filepath", filepath, "expected file but got directory")
	}

	return nil
}

// CheckDirectoryExists checks if a directory exists and returns appropriate error
func CheckDirectoryExists(dirpath string) error {
	if dirpath == "" {
		return ErrMissingRequiredField("directory")
	}

	info, err := os.Stat(dirpath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewIOError(CodeFileNotFound, "directory not found").
				WithContext("directory", dirpath).
				WithDetails(fmt.Sprintf("Directory '%s' does not exist", dirpath))
		}
		if os.IsPermission(err) {
			return ErrFilePermissionDenied(dirpath)
		}
		return WrapIO(err, CodeFileNotFound, "failed to access directory").
			WithContext("directory", dirpath)
	}

	if !info.IsDir() {
		return ErrInvalidInput("directory", dirpath, "expected directory but got file")
	}

	return nil
}

// CheckRequiredString checks if a string field is provided
func CheckRequiredString(fieldName string, value string) error {
	if value == "" {
		return ErrMissingRequiredField(fieldName)
	}
	return nil
}

// CheckRequiredField checks if a field is not nil
func CheckRequiredField(fieldName string, value interface{}) error {
	if value == nil {
		return ErrMissingRequiredField(fieldName)
	}
	return nil
}

// CheckRequiredPointer checks if a pointer field is not nil (for struct pointers)
func CheckRequiredPointer(fieldName string, value interface{}) error {
	if value == nil {
		return ErrMissingRequiredField(fieldName)
	}
	return nil
}
