package retry

import (
	"context"
	"errors"
	"time"

	"workflowhr/internal/shared/apperror"

	"gorm.io/gorm"
)

// Do runs fn up to attempts times with a fixed backoff. Not-found and
// context errors are returned as-is; any other error that survives the
// retries is surfaced as SERVICE_UNAVAILABLE so callers can tell a transient
// store failure from a validation problem.
func Do(ctx context.Context, attempts int, backoff time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, gorm.ErrRecordNotFound) || ctx.Err() != nil {
			return lastErr
		}

		var appErr *apperror.AppError
		if errors.As(lastErr, &appErr) {
			return lastErr
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return apperror.Wrap(
		lastErr,
		apperror.CodeServiceUnavailable,
		apperror.ErrServiceUnavailable.Message,
		apperror.ErrServiceUnavailable.HTTPStatus,
	)
}
