package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Registry Error Constructors ---

// DuplicateRegistration creates a new AppError for a key registered twice in the same scope.
// kind is "service" or "module".
func DuplicateRegistration(kind, key, module string) *AppError {
	details := map[string]any{"kind": kind, "key": key}
	if module != "" {
		details["module"] = module
	}
	return &AppError{
		Code: ErrCodeDuplicateRegistration, Message: fmt.Sprintf("%s %s is already registered", kind, key),
		Details: details,
	}
}

// InvalidRegistration creates a new AppError for a registration that can never be resolved.
func InvalidRegistration(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidRegistration, Message: fmt.Sprintf("cannot register %s: %s", key, reason),
		Details: map[string]any{"key": key},
	}
}

// InvalidProducer creates a new AppError for a producer of unsupported shape.
func InvalidProducer(producer, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidProducer, Message: fmt.Sprintf("invalid producer %s: %s", producer, reason),
		Details: map[string]any{"producer": producer},
	}
}

// InvalidArgs creates a new AppError for producer arguments that do not fit the producer.
func InvalidArgs(target string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgs, Message: fmt.Sprintf("arguments do not match %s", target),
		Details: map[string]any{"target": target}, Cause: cause,
	}
}

// ProducerFailed creates a new AppError for a producer that failed to build its service.
func ProducerFailed(key, module string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeProducerFailed, Message: fmt.Sprintf("producer for %s failed", key),
		Details: map[string]any{"key": key, "module": module}, Cause: cause,
	}
}

// ServiceNotFound creates a new AppError for a key with no registration in the module.
func ServiceNotFound(key, module string) *AppError {
	return &AppError{
		Code: ErrCodeServiceNotFound, Message: fmt.Sprintf("no service registered for %s in %s", key, module),
		Details: map[string]any{"key": key, "module": module},
	}
}

// DependencyCycle creates a new AppError for a resolution chain that reaches
// a service already being produced. chain lists the services from the outermost.
func DependencyCycle(chain []string) *AppError {
	return &AppError{
		Code: ErrCodeDependencyCycle, Message: "dependency cycle: " + strings.Join(chain, " -> "),
		Details: map[string]any{"chain": chain},
	}
}

// InvalidConfig creates a new AppError for configuration that failed validation.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}
