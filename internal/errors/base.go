package errors

import (
	"fmt"
)

// DocSiteError is the base error type for all application errors
type DocSiteError struct {
	Message  string        // Human-readable error message
	Context  *ErrorContext // Where and why it failed
	Cause    error         // Underlying error (for wrapping)
	ExitCode ExitCode      // Exit code for CLI
}

// Error returns the error message with cause if present
func (e *DocSiteError) Error() string {
	msg := e.Message
	if e.Context != nil && e.Context.Location() != "" {
		msg = e.Context.Location() + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *DocSiteError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns a user-friendly error message with context
func (e *DocSiteError) GetUserMessage() string {
	msg := fmt.Sprintf("ERROR: %s", e.Message)

	if e.Cause != nil {
		msg += fmt.Sprintf("\nCause: %v", e.Cause)
	}

	if e.Context != nil {
		msg += e.Context.Format()
	}

	return msg
}

// NewError creates a new DocSiteError with the given message and exit code
func NewError(message string, exitCode ExitCode) *DocSiteError {
	return &DocSiteError{
		Message:  message,
		ExitCode: exitCode,
	}
}

// WrapError wraps an existing error with additional context
func WrapError(cause error, message string, exitCode ExitCode) *DocSiteError {
	return &DocSiteError{
		Message:  message,
		Cause:    cause,
		ExitCode: exitCode,
	}
}

// WrapErrorWithContext wraps an error with full context
func WrapErrorWithContext(cause error, message string, exitCode ExitCode, context *ErrorContext) *DocSiteError {
	return &DocSiteError{
		Message:  message,
		Context:  context,
		Cause:    cause,
		ExitCode: exitCode,
	}
}

// ExitCodeOf returns the exit code carried by the first DocSiteError in the
// chain, or ExitGeneralError.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var docErr interface{ exitCode() ExitCode }
	if As(err, &docErr) {
		return docErr.exitCode()
	}
	return ExitGeneralError
}

func (e *DocSiteError) exitCode() ExitCode {
	return e.ExitCode
}
