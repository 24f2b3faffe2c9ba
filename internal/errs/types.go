package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type ValidationError struct {
	ErrorMessage
}

// ConfigurationError means the service cannot serve the request until an
// operator fixes its settings. Hint tells them what to change.
type ConfigurationError struct {
	ErrorMessage
	Hint string
}

func (e *ConfigurationError) Error() string {
	if e.Hint == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Hint)
}

// ExternalServiceError wraps a failed call to an upstream dependency.
// StatusCode is zero when no HTTP response was received.
type ExternalServiceError struct {
	ErrorMessage
	Service    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewConfigurationError(message, hint string) *ConfigurationError {
	return &ConfigurationError{
		ErrorMessage: ErrorMessage{Message: message},
		Hint:         hint,
	}
}

// NewUpstreamStatusError reports a non-success HTTP status from service.
// 429 and 503 are treated as transient.
func NewUpstreamStatusError(service string, status int) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s request failed with status %d", service, status)},
		Service:      service,
		StatusCode:   status,
		Transient:    status == 429 || status == 503,
	}
}

// NewUpstreamError reports a call to service that failed before a status
// was available.
func NewUpstreamError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s request failed: %v", service, err)},
		Service:      service,
		Err:          err,
	}
}
