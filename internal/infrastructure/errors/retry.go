package errors

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// RetryLogger defines the interface for logging retry operations
type RetryLogger interface {
	Printf(format string, v ...interface{})
}

// RetryConfig holds configuration for retry logic
type RetryConfig struct {
	MaxAttempts     int           // Maximum number of attempts
	InitialDelay    time.Duration // Initial delay between retries
	MaxDelay        time.Duration // Maximum delay between retries
	BackoffFactor   float64       // Exponential backoff factor
	Jitter          bool          // Whether to add jitter to delays
	RetryableErrors []ErrorCode   // Specific error codes to retry
}

var retryLogger RetryLogger

// DefaultRetryConfig returns a retry configuration with sensible defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
		RetryableErrors: []ErrorCode{
			ErrCodeConnection,
			ErrCodeTimeout,
			ErrCodeTransaction,
			ErrCodeBusy,
		},
	}
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func() error

// SetRetryLogger sets the package-level logger for retry operations
func SetRetryLogger(logger RetryLogger) {
	retryLogger = logger
}

func logRetryMessage(format string, v ...interface{}) {
	if retryLogger != nil {
		retryLogger.Printf(format, v...)
	}
}

// WithRetry executes an operation with retry logic
func WithRetry(ctx context.Context, config *RetryConfig, operation RetryableOperation) error {
	return WithRetryContext(ctx, config, operation, "")
}

// WithRetryContext executes an operation with retry logic, naming the
// operation in retry log messages and wrapped errors
func WithRetryContext(ctx context.Context, config *RetryConfig, operation RetryableOperation, operationName string) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 0 && operationName != "" {
				logRetryMessage("Store operation '%s' succeeded after %d attempts", operationName, attempt+1)
			}
			return nil
		}

		lastErr = err

		if !shouldRetry(err, config) {
			if operationName != "" {
				logRetryMessage("Store operation '%s' failed with non-retryable error: %v", operationName, err)
			}
			return err
		}

		// Don't sleep after the last attempt
		if attempt == config.MaxAttempts-1 {
			break
		}

		delay := calculateDelay(attempt, config)

		if operationName != "" {
			logRetryMessage("Store operation '%s' failed (attempt %d/%d), retrying in %v: %v",
				operationName, attempt+1, config.MaxAttempts, delay, err)
		} else {
			logRetryMessage("Store operation failed (attempt %d/%d), retrying in %v: %v",
				attempt+1, config.MaxAttempts, delay, err)
		}

		// Wait before retrying, respecting context cancellation
		select {
		case <-ctx.Done():
			if operationName != "" {
				return fmt.Errorf("operation '%s' cancelled during retry: %w", operationName, ctx.Err())
			}
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	if operationName != "" {
		return fmt.Errorf("operation '%s' failed after %d attempts: %w", operationName, config.MaxAttempts, lastErr)
	}
	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxAttempts, lastErr)
}

// shouldRetry determines if an error should be retried based on configuration
func shouldRetry(err error, config *RetryConfig) bool {
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		return false // Only retry classified store errors
	}

	if !storeErr.IsRetryable() {
		return false
	}

	return slices.Contains(config.RetryableErrors, storeErr.Code)
}

// calculateDelay calculates the delay for the next retry attempt
func calculateDelay(attempt int, config *RetryConfig) time.Duration {
	multiplier := 1.0
	for i := 0; i < attempt; i++ {
		multiplier *= config.BackoffFactor
	}

	delay := time.Duration(float64(config.InitialDelay) * multiplier)

	// Add up to 25% jitter before applying the max delay limit
	if config.Jitter && delay > 0 {
		jitterAmount := time.Duration(float64(delay) * 0.25)
		if jitterAmount > 0 {
			delay += time.Duration(time.Now().UnixNano() % int64(jitterAmount))
		}
	}

	delay = min(delay, config.MaxDelay)

	return delay
}
