package retry

import (
	"context"
	"time"
)

// Do runs op until it succeeds, retryable reports false, the policy is
// exhausted, or ctx is done. It returns the number of attempts made and the
// last error.
func Do(ctx context.Context, policy Policy, retryable func(error) bool, op func(context.Context) error) (int, error) {
	return DoNotify(ctx, policy, retryable, op, nil)
}

// DoNotify is Do with a callback invoked before every wait.
func DoNotify(
	ctx context.Context,
	policy Policy,
	retryable func(error) bool,
	op func(context.Context) error,
	onRetry func(attempt int, delay time.Duration, err error),
) (int, error) {
	var err error
	max := policy.Attempts()

	for attempt := 1; attempt <= max; attempt++ {
		if err = op(ctx); err == nil {
			return attempt, nil
		}
		if attempt == max || (retryable != nil && !retryable(err)) {
			return attempt, err
		}

		delay := policy.Delay(attempt)
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
		if waitErr := Sleep(ctx, delay); waitErr != nil {
			return attempt, err
		}
	}
	return max, err
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
