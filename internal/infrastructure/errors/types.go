package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode represents different types of store errors
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotFound
	ErrCodeDuplicate
	ErrCodeConstraint
	ErrCodeConnection
	ErrCodeTransaction
	ErrCodeTimeout
	ErrCodeValidation
	ErrCodePermission
	ErrCodeDiskSpace
	ErrCodeCorruption
	ErrCodeInternal
	ErrCodeBusy
	ErrCodeSchema
)

// String returns a string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeDuplicate:
		return "DUPLICATE"
	case ErrCodeConstraint:
		return "CONSTRAINT"
	case ErrCodeConnection:
		return "CONNECTION"
	case ErrCodeTransaction:
		return "TRANSACTION"
	case ErrCodeTimeout:
		return "TIMEOUT"
	case ErrCodeValidation:
		return "VALIDATION"
	case ErrCodePermission:
		return "PERMISSION"
	case ErrCodeDiskSpace:
		return "DISK_SPACE"
	case ErrCodeCorruption:
		return "CORRUPTION"
	case ErrCodeInternal:
		return "INTERNAL"
	case ErrCodeBusy:
		return "BUSY"
	case ErrCodeSchema:
		return "SCHEMA"
	default:
		return "UNKNOWN"
	}
}

// StoreError represents a persistence error with classification,
// context and retry information
type StoreError struct {
	Op        string            // operation name
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Retryable bool              // whether the error is retryable
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *StoreError) Error() string {
	if e == nil {
		return "store error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	if e.Retryable {
		parts = append(parts, "retryable=true")
	}

	// Append context in deterministic order
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "store error" + contextStr
}

func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements error matching for errors.Is
func (e *StoreError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*StoreError); ok {
		return e.Code == t.Code
	}
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// IsRetryable returns whether the error is retryable
func (e *StoreError) IsRetryable() bool {
	if e == nil {
		return false
	}
	return e.Retryable
}

// GetCode returns the error code as a string (for the logging interface)
func (e *StoreError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for the logging interface)
func (e *StoreError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for the logging interface)
func (e *StoreError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// WithContext adds a context key/value pair to the error and returns
// the same instance for chaining
func (e *StoreError) WithContext(key, value string) *StoreError {
	if e == nil {
		return nil
	}
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// NewStoreError creates a new store error with the given parameters
func NewStoreError(op string, err error, code ErrorCode) *StoreError {
	return &StoreError{
		Op:        op,
		Err:       err,
		Code:      code,
		Retryable: isRetryableError(code, err),
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewStoreErrorWithContext creates a new store error with additional context
func NewStoreErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *StoreError {
	storeErr := NewStoreError(op, err, code)
	if context != nil {
		// Clone the context map to avoid external mutation and data races
		storeErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			storeErr.Context[k] = v
		}
	}
	return storeErr
}

// isRetryableError determines if an error is retryable based on its code
func isRetryableError(code ErrorCode, err error) bool {
	switch code {
	case ErrCodeConnection, ErrCodeTimeout, ErrCodeTransaction, ErrCodeBusy:
		return true
	case ErrCodeNotFound, ErrCodeDuplicate, ErrCodeConstraint, ErrCodeValidation,
		ErrCodePermission, ErrCodeCorruption, ErrCodeInternal, ErrCodeSchema, ErrCodeDiskSpace:
		// Disk space errors require external intervention (cleanup,
		// more storage) and are not retryable.
		return false
	default:
		// For unknown errors, check the underlying error message
		if err != nil {
			errStr := strings.ToLower(err.Error())
			return strings.Contains(errStr, "temporary") ||
				strings.Contains(errStr, "retry") ||
				strings.Contains(errStr, "busy") ||
				strings.Contains(errStr, "locked") ||
				strings.Contains(errStr, "deadlock")
		}
		return false
	}
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == ErrCodeNotFound
	}
	return false
}

// IsDuplicate checks if the error is a "duplicate" error
func IsDuplicate(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == ErrCodeDuplicate
	}
	return false
}

// IsConstraint checks if the error is a "constraint violation" error
func IsConstraint(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == ErrCodeConstraint
	}
	return false
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == ErrCodeValidation
	}
	return false
}

// IsRetryable checks if the error is retryable
func IsRetryable(err error) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Retryable
	}
	return false
}
