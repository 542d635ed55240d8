package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// ErrTimeout is returned when a check is still not ready at the deadline.
var ErrTimeout = errors.New("timed out waiting for readiness")

// Check reports whether the awaited resource is ready. A non-nil error is
// treated as not ready.
type Check func(ctx context.Context) (bool, error)

// UntilReady runs check immediately, then every interval, until it returns
// true or timeout elapses. The deadline is measured from the call, not from
// a fixed iteration count.
func UntilReady(ctx context.Context, check Check, timeout, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", interval)
	}

	var lastErr error
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		ready, err := check(ctx)
		if err != nil {
			lastErr = err
			return false, nil
		}
		return ready, nil
	})
	if err == nil {
		return nil
	}

	// The caller's context ended first; that is not a readiness timeout.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if wait.Interrupted(err) {
		if lastErr != nil {
			return fmt.Errorf("%w after %v (last error: %v)", ErrTimeout, timeout, lastErr)
		}
		return fmt.Errorf("%w after %v", ErrTimeout, timeout)
	}
	return err
}
