package contact

import (
	"context"
	"errors"
	"time"
)

// DefaultDelay is the simulated delivery time of DelaySubmitter.
const DefaultDelay = 1500 * time.Millisecond

// DelaySubmitter accepts every submission after a fixed delay.
type DelaySubmitter struct {
	Delay time.Duration
}

// Submit waits for the delay or until ctx is done.
func (d DelaySubmitter) Submit(ctx context.Context, _ Submission) error {
	delay := d.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Multi delivers to every submitter in order and joins their errors.
// Later submitters still run when an earlier one fails.
type Multi []Submitter

func (m Multi) Submit(ctx context.Context, s Submission) error {
	var errs []error
	for _, sub := range m {
		if err := sub.Submit(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
