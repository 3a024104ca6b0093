package errors

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// ClassifyError classifies database errors into store error codes
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	// Driver-specific type assertions give the most accurate classification
	if code := classifySQLiteError(err); code != ErrCodeUnknown {
		return code
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		return ErrCodeTimeout
	}

	// Fall back to string-based classification
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "unique constraint"):
		return ErrCodeDuplicate
	case strings.Contains(errStr, "foreign key constraint"):
		return ErrCodeConstraint
	case strings.Contains(errStr, "check constraint"):
		return ErrCodeConstraint
	case strings.Contains(errStr, "not null constraint"):
		return ErrCodeConstraint
	case strings.Contains(errStr, "database is locked"):
		return ErrCodeBusy
	case strings.Contains(errStr, "database disk image is malformed"):
		return ErrCodeCorruption
	case strings.Contains(errStr, "no such table"):
		return ErrCodeSchema
	case strings.Contains(errStr, "no such column"):
		return ErrCodeSchema
	case strings.Contains(errStr, "permission denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "disk full"):
		return ErrCodeDiskSpace
	case strings.Contains(errStr, "no space left"):
		return ErrCodeDiskSpace
	case strings.Contains(errStr, "timeout"):
		return ErrCodeTimeout
	case strings.Contains(errStr, "deadlock"):
		return ErrCodeTransaction
	default:
		return ErrCodeUnknown
	}
}

// WrapDatabaseError wraps a database error with store error context
func WrapDatabaseError(op string, err error) error {
	if err == nil {
		return nil
	}

	return NewStoreError(op, err, ClassifyError(err))
}

// WrapDatabaseErrorWithContext wraps a database error with store error
// context and additional context fields
func WrapDatabaseErrorWithContext(op string, err error, contextMap map[string]string) error {
	if err == nil {
		return nil
	}

	return NewStoreErrorWithContext(op, err, ClassifyError(err), contextMap)
}

// HandleNotFound creates a standardized not found error
func HandleNotFound(op string, resource string, identifier string) error {
	return NewStoreErrorWithContext(op, sql.ErrNoRows, ErrCodeNotFound, map[string]string{
		"resource":   resource,
		"identifier": identifier,
	})
}

// HandleValidationError creates a standardized validation error
func HandleValidationError(op string, field string, value string, reason string) error {
	return NewStoreErrorWithContext(op, errors.New("validation failed"), ErrCodeValidation, map[string]string{
		"field":  field,
		"value":  value,
		"reason": reason,
	})
}

// HandleConnectionError creates a standardized connection error
func HandleConnectionError(op string, details string) error {
	return NewStoreErrorWithContext(op, errors.New("connection error"), ErrCodeConnection, map[string]string{
		"details": details,
	})
}
