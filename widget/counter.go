package widget

import "time"

// Counter counts up linearly from 0 to Target over Duration.
type Counter struct {
	Target   int
	Duration time.Duration
}

// At returns the displayed value after elapsed time.
func (c Counter) At(elapsed time.Duration) int {
	switch {
	case c.Duration <= 0 || elapsed >= c.Duration:
		return c.Target
	case elapsed <= 0:
		return 0
	}
	return int(float64(c.Target) * float64(elapsed) / float64(c.Duration))
}

// Done reports whether the counter reached its target. A counter without
// a positive Duration is done immediately.
func (c Counter) Done(elapsed time.Duration) bool {
	return c.Duration <= 0 || elapsed >= c.Duration
}
