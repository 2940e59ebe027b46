package helpers

import (
	"fmt"
	"sync"

	"widget-backend/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type WidgetBackendError struct {
	Message string
	Cause   error
}

func (e *WidgetBackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WidgetBackendError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks
type ConfigurationError struct{ WidgetBackendError }
type NetworkError struct{ WidgetBackendError }
type DataSourceError struct{ WidgetBackendError }

// ValidationError rejects caller input before any upstream call. Handlers
// answer it with 400.
type ValidationError struct{ WidgetBackendError }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{WidgetBackendError{Message: fmt.Sprintf(format, args...)}}
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{WidgetBackendError{Message: fmt.Sprintf(format, args...)}}
}

func NewDataSourceError(message string, cause error) *DataSourceError {
	return &DataSourceError{WidgetBackendError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

// UpstreamStatusError is a non-2xx answer from an upstream API.
type UpstreamStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API request failed: %d, %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API request failed: %d", e.StatusCode)
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger     *logger.Logger
	errorCount int
	mu         sync.Mutex
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: log}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errorCount
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.mu.Lock()
	e.errorCount = 0
	e.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Handle logs err with its context and counts it. Nil errors are ignored.
func (e *ErrorHandler) Handle(err error, context string) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.errorCount++
	e.mu.Unlock()
	e.Logger.Error("Error in %s: %v", context, err)
}
