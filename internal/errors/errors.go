package errors

import (
	"errors"
	"fmt"
	"net"
)

// Standard application errors
var (
	ErrEmptyInput   = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON  = errors.New("invalid JSON format")
	ErrMultipleJSON = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrTooDeep      = errors.New("JSON document is nested too deeply")
	ErrFileNotFound = errors.New("file not found")
	ErrMissingEnv   = errors.New("required environment variable is not set")
	ErrHTTPStatus   = errors.New("unexpected HTTP status")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeParsing       ErrorType = "parsing"
	ErrorTypeTransport     ErrorType = "transport"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewConfigurationError creates a new error related to missing or invalid configuration
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading the query document
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewTransportError creates a new error for a failed request to url
func NewTransportError(url string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("error accessing %s", url),
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsFatal reports whether err must stop the program. Input errors other than
// a missing query file are reported and skipped.
func IsFatal(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Type == ErrorTypeInput {
		return errors.Is(err, ErrFileNotFound)
	}
	return err != nil
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeConfiguration:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Response parsing error: %s", appErr.Message)
		case ErrorTypeTransport:
			msg := fmt.Sprintf("Transport error: %s", appErr.Message)
			if appErr.Err != nil {
				msg = fmt.Sprintf("%s: %v", msg, appErr.Err)
			}
			var dnsErr *net.DNSError
			if errors.As(appErr.Err, &dnsErr) {
				msg += "\nCheck your network connection and the API endpoint URL."
			}
			return msg
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The API returned an empty response."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The API returned invalid JSON."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The GraphQL query file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrMissingEnv) {
		return "Error: You must provide environment variables REPORT_RESULTS_API_ENDPOINT and REPORT_RESULTS_API_KEY."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
